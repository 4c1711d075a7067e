package main

import (
	"context"
	"sync"
	"time"

	"github.com/alnah/go-inlinehtml/internal/render"
	"github.com/alnah/go-inlinehtml/internal/templates"
)

// TemplateSource reads template sources by name.
type TemplateSource interface {
	Load(name string) ([]byte, error)
}

// Compile-time interface implementation check.
var _ TemplateSource = (*templates.Loader)(nil)

// RenderResult holds the outcome of rendering one template.
type RenderResult struct {
	Template   templates.Template
	OutputName string
	HTML       string
	Err        error
	Duration   time.Duration
}

// renderBatch renders templates concurrently with at most workers goroutines.
// Results keep the order of tmpls so events are emitted deterministically.
func renderBatch(ctx context.Context, src TemplateSource, r render.Renderer, tmpls []templates.Template, workers int) []RenderResult {
	if len(tmpls) == 0 {
		return nil
	}

	concurrency := min(max(workers, 1), len(tmpls))

	results := make([]RenderResult, len(tmpls))
	var wg sync.WaitGroup
	jobs := make(chan int, len(tmpls))

	for range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if err := ctx.Err(); err != nil {
					results[idx] = RenderResult{Template: tmpls[idx], Err: err}
					continue
				}
				results[idx] = renderOne(ctx, src, r, tmpls[idx])
			}
		}()
	}

	for i := range tmpls {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// renderOne loads and renders a single template.
func renderOne(ctx context.Context, src TemplateSource, r render.Renderer, t templates.Template) RenderResult {
	start := time.Now()
	result := RenderResult{
		Template:   t,
		OutputName: render.OutputName(t.Name),
	}

	content, err := src.Load(t.Name)
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	html, err := r.Render(ctx, t.Name, content)
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	result.HTML = html
	result.Duration = time.Since(start)
	return result
}

// ResultSummary holds the count of succeeded and failed renders.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed renders.
func countResults(results []RenderResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}
