// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package highlight

import (
	"unicode"
	"unicode/utf8"
)

// span is a matched keyword occurrence as byte offsets into the original
// page text, end exclusive. Text mark lookup is keyed by byte offset, so
// spans must be valid byte ranges even when multi-byte characters precede
// the match.
type span struct {
	start int
	end   int
}

// folded is a normalized view of page text: case-folded, dehyphenated, with
// whitespace runs collapsed to single spaces. starts and ends map every
// normalized rune back to the byte range of its source character in the
// original text, so matches found in the normalized view can be projected
// onto text marks.
type folded struct {
	runes  []rune
	starts []int
	ends   []int
}

// isHyphen reports whether r is a hyphen or a typographic relative that
// appears in hyphenated line breaks.
func isHyphen(r rune) bool {
	switch r {
	case '-', '­', '‐', '‑':
		return true
	}
	return false
}

func isLineBreak(r rune) bool {
	return r == '\n' || r == '\r' || r == '\v' || r == '\f'
}

// foldText normalizes page text for matching:
//
//   - a hyphen directly before a line break is removed together with the
//     break, joining the split word ("Fail-\nSafe" folds to "failsafe");
//   - remaining hyphens are dropped so hyphenated and solid spellings of a
//     word compare equal;
//   - any other whitespace run folds to a single space;
//   - everything is lowercased.
func foldText(text string) folded {
	src := []rune(text)

	// pos[k] is the byte offset where source rune k starts; pos[len(src)]
	// is len(text).
	pos := make([]int, len(src)+1)
	for i, r := range src {
		pos[i+1] = pos[i] + utf8.RuneLen(r)
	}

	f := folded{
		runes:  make([]rune, 0, len(src)),
		starts: make([]int, 0, len(src)),
		ends:   make([]int, 0, len(src)),
	}

	for i := 0; i < len(src); {
		r := src[i]

		if isHyphen(r) {
			j := i + 1
			for j < len(src) && isLineBreak(src[j]) {
				j++
			}
			if j > i+1 {
				// Hyphenated line break: swallow hyphen and break.
				i = j
				continue
			}
			i++
			continue
		}

		if unicode.IsSpace(r) {
			for i < len(src) && unicode.IsSpace(src[i]) {
				i++
			}
			if n := len(f.runes); n > 0 && f.runes[n-1] != ' ' {
				f.runes = append(f.runes, ' ')
				f.starts = append(f.starts, pos[i-1])
				f.ends = append(f.ends, pos[i])
			}
			continue
		}

		f.runes = append(f.runes, unicode.ToLower(r))
		f.starts = append(f.starts, pos[i])
		f.ends = append(f.ends, pos[i+1])
		i++
	}

	// A trailing space never starts or ends a keyword match.
	if n := len(f.runes); n > 0 && f.runes[n-1] == ' ' {
		f.runes = f.runes[:n-1]
		f.starts = f.starts[:n-1]
		f.ends = f.ends[:n-1]
	}
	return f
}

// foldKeyword normalizes a keyword the same way as page text and trims
// surrounding spaces. An empty result means the keyword cannot match.
func foldKeyword(kw string) []rune {
	f := foldText(kw)
	runes := f.runes
	for len(runes) > 0 && runes[0] == ' ' {
		runes = runes[1:]
	}
	for len(runes) > 0 && runes[len(runes)-1] == ' ' {
		runes = runes[:len(runes)-1]
	}
	return runes
}

// indexRunes returns the first index >= from where needle occurs in hay,
// or -1 if absent.
func indexRunes(hay, needle []rune, from int) int {
	for i := from; i+len(needle) <= len(hay); i++ {
		match := true
		for j, r := range needle {
			if hay[i+j] != r {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

// searchText finds every case-insensitive, hyphenation-tolerant occurrence
// of kw in text, returning byte spans over the original text. Overlapping
// occurrences of the same keyword are not double-counted: the scan resumes
// after each match.
func searchText(text, kw string) []span {
	needle := foldKeyword(kw)
	if len(needle) == 0 {
		return nil
	}
	f := foldText(text)

	var spans []span
	for from := 0; ; {
		i := indexRunes(f.runes, needle, from)
		if i < 0 {
			return spans
		}
		spans = append(spans, span{
			start: f.starts[i],
			end:   f.ends[i+len(needle)-1],
		})
		from = i + len(needle)
	}
}
