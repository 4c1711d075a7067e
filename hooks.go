package inlinehtml

import (
	"context"
	"fmt"
)

// TemplateRenderedFunc handles one rendered template.
type TemplateRenderedFunc func(ctx context.Context, event TemplateRenderEvent) error

type tap struct {
	name string
	fn   TemplateRenderedFunc
}

// Hooks dispatches template render events to named taps, in the order the
// taps were registered. It is meant for a single-threaded build loop and does
// no locking.
type Hooks struct {
	taps []tap
}

// NewHooks creates an empty Hooks.
func NewHooks() *Hooks {
	return &Hooks{}
}

// Tap registers fn under name. Nil functions are ignored.
func (h *Hooks) Tap(name string, fn TemplateRenderedFunc) {
	if fn == nil {
		return
	}
	h.taps = append(h.taps, tap{name: name, fn: fn})
}

// Taps returns the registered tap names in call order.
func (h *Hooks) Taps() []string {
	names := make([]string, len(h.taps))
	for i, t := range h.taps {
		names[i] = t.name
	}
	return names
}

// Emit calls every tap with event. The first failing tap stops emission;
// its error is wrapped with ErrHookFailed and the tap name.
func (h *Hooks) Emit(ctx context.Context, event TemplateRenderEvent) error {
	for _, t := range h.taps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := t.fn(ctx, event); err != nil {
			return fmt.Errorf("%w: %s: %s: %w", ErrHookFailed, t.name, event.OutputName, err)
		}
	}
	return nil
}
