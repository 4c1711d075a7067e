package pipeline

import (
	"cmp"
	"iter"
	"slices"
)

// Occurrence is one marker found in a text.
// Offsets are byte offsets into the text that was scanned; End is exclusive.
type Occurrence struct {
	Start  int
	End    int
	Target string     // output name referenced by the marker, may be empty
	Syntax string     // name of the syntax that matched
	Mode   OutputMode // escaping applied on substitution
}

// Scan returns the markers in text, left to right.
//
// Syntaxes are tried in order. A match overlapping a span already claimed by
// an earlier syntax is dropped, so `\"/* InlineHTML: a */\"` is reported once,
// as escaped, rather than also as quoted and bare.
//
// The sequence does no work until it is ranged over and may be ranged over
// any number of times.
func Scan(text string, syntaxes []Syntax) iter.Seq[Occurrence] {
	return func(yield func(Occurrence) bool) {
		for _, occ := range findOccurrences(text, syntaxes) {
			if !yield(occ) {
				return
			}
		}
	}
}

// ScanAll collects Scan into a slice. Returns nil when text has no markers.
func ScanAll(text string, syntaxes []Syntax) []Occurrence {
	return findOccurrences(text, syntaxes)
}

func findOccurrences(text string, syntaxes []Syntax) []Occurrence {
	var found []Occurrence
	for _, s := range syntaxes {
		if s.Pattern == nil {
			continue
		}
		for _, loc := range s.Pattern.FindAllStringSubmatchIndex(text, -1) {
			occ := Occurrence{
				Start:  loc[0],
				End:    loc[1],
				Syntax: s.Name,
				Mode:   s.Mode,
			}
			if len(loc) >= 4 && loc[2] >= 0 {
				occ.Target = text[loc[2]:loc[3]]
			}
			if overlapsAny(found, occ) {
				continue
			}
			found = append(found, occ)
		}
	}

	slices.SortFunc(found, func(a, b Occurrence) int {
		return cmp.Compare(a.Start, b.Start)
	})
	return found
}

// overlapsAny reports whether occ shares at least one byte with a claimed span.
func overlapsAny(claimed []Occurrence, occ Occurrence) bool {
	for _, c := range claimed {
		if occ.Start < c.End && c.Start < occ.End {
			return true
		}
	}
	return false
}
