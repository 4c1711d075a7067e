package pipeline

import (
	"cmp"
	"slices"
)

// Substitute replaces occ's span in text with html escaped for occ.Mode.
//
// Returns false when the marker names a different output, when its target is
// empty, or when its span does not fit text. None of these are errors: a marker
// for another template is expected whenever a build renders several.
func Substitute(occ Occurrence, name, html, text string) (string, bool) {
	if !matches(occ, name, len(text)) {
		return "", false
	}
	return text[:occ.Start] + Escape(html, occ.Mode) + text[occ.End:], true
}

// SubstituteAll replaces every occurrence naming name and returns the new
// text with the number of replacements.
//
// Occurrences are applied from the end of the text backwards, so offsets
// computed against the original text stay valid after each splice. They must
// not overlap, which Scan guarantees.
func SubstituteAll(text string, occs []Occurrence, name, html string) (string, int) {
	ordered := slices.Clone(occs)
	slices.SortFunc(ordered, func(a, b Occurrence) int {
		return cmp.Compare(b.Start, a.Start)
	})

	escaped := make(map[OutputMode]string, 2)
	count := 0
	for _, occ := range ordered {
		if !matches(occ, name, len(text)) {
			continue
		}
		value, ok := escaped[occ.Mode]
		if !ok {
			value = Escape(html, occ.Mode)
			escaped[occ.Mode] = value
		}
		text = text[:occ.Start] + value + text[occ.End:]
		count++
	}
	return text, count
}

func matches(occ Occurrence, name string, textLen int) bool {
	if occ.Target == "" || occ.Target != name {
		return false
	}
	return occ.Start >= 0 && occ.Start <= occ.End && occ.End <= textLen
}
