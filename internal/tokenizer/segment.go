package tokenizer

import (
	"sort"
	"strings"
)

// tokenSegment is one segmentation result: a literal text run, or a
// matched special token carrying only its id.
type tokenSegment struct {
	text    string
	id      int32
	special bool
}

// specialSet holds the registered special tokens, ordered for
// longest-match scanning: longer tokens first, equal lengths
// lexicographically. The configuration format leaves the equal-length tie
// undefined; the lexicographic rule makes it deterministic here.
type specialSet struct {
	ids     map[string]int32
	ordered []string
}

func newSpecialSet() *specialSet {
	return &specialSet{ids: make(map[string]int32)}
}

func (s *specialSet) add(token string, id int32) {
	if _, dup := s.ids[token]; dup {
		return
	}
	s.ids[token] = id
	s.ordered = append(s.ordered, token)
}

// finalize must be called once after the last add and before segment.
func (s *specialSet) finalize() {
	sort.Slice(s.ordered, func(i, j int) bool {
		a, b := s.ordered[i], s.ordered[j]
		if len(a) != len(b) {
			return len(a) > len(b)
		}
		return a < b
	})
}

// segment splits text into alternating literal and special segments. At
// each byte position the longest special token matching there wins; on no
// match the position joins the current literal run. Linear in
// len(text) × number of specials, which is fine for the small special
// sets real configurations carry.
func (s *specialSet) segment(text string) []tokenSegment {
	if len(s.ordered) == 0 {
		if text == "" {
			return nil
		}
		return []tokenSegment{{text: text}}
	}

	var segs []tokenSegment
	start, pos := 0, 0
	for pos < len(text) {
		tok, ok := s.matchAt(text[pos:])
		if !ok {
			pos++
			continue
		}
		if pos > start {
			segs = append(segs, tokenSegment{text: text[start:pos]})
		}
		segs = append(segs, tokenSegment{id: s.ids[tok], special: true})
		pos += len(tok)
		start = pos
	}
	if pos > start {
		segs = append(segs, tokenSegment{text: text[start:pos]})
	}
	return segs
}

// matchAt returns the winning special token prefixing rest, if any.
// ordered is sorted longest-first, so the first hit is the longest.
func (s *specialSet) matchAt(rest string) (string, bool) {
	for _, tok := range s.ordered {
		if strings.HasPrefix(rest, tok) {
			return tok, true
		}
	}
	return "", false
}
