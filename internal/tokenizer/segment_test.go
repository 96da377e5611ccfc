package tokenizer

import (
	"reflect"
	"testing"
)

func buildSpecialSet(specials map[string]int32) *specialSet {
	s := newSpecialSet()
	for tok, id := range specials {
		s.add(tok, id)
	}
	s.finalize()
	return s
}

func TestSegment(t *testing.T) {
	set := buildSpecialSet(map[string]int32{
		"<|endoftext|>": 100,
		"<|pad|>":       101,
	})

	tests := []struct {
		name string
		text string
		want []tokenSegment
	}{
		{
			name: "no specials in text",
			text: "plain text",
			want: []tokenSegment{{text: "plain text"}},
		},
		{
			name: "special only",
			text: "<|endoftext|>",
			want: []tokenSegment{{id: 100, special: true}},
		},
		{
			name: "literal then special",
			text: "hello<|endoftext|>",
			want: []tokenSegment{{text: "hello"}, {id: 100, special: true}},
		},
		{
			name: "special then trailing literal",
			text: "<|pad|>tail",
			want: []tokenSegment{{id: 101, special: true}, {text: "tail"}},
		},
		{
			name: "adjacent specials with partial lookalike between",
			text: "你好<|endoftext|><<|endoftext|>",
			want: []tokenSegment{
				{text: "你好"},
				{id: 100, special: true},
				{text: "<"},
				{id: 100, special: true},
			},
		},
		{
			name: "empty text",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := set.segment(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("segment(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}

func TestSegmentLongestMatchWins(t *testing.T) {
	set := buildSpecialSet(map[string]int32{
		"<|a|>":  1,
		"<|a|>b": 2,
	})

	got := set.segment("<|a|>b")
	want := []tokenSegment{{id: 2, special: true}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("segment = %+v, want the longer token %+v", got, want)
	}

	// The shorter token still matches when the longer cannot.
	got = set.segment("<|a|>c")
	want = []tokenSegment{{id: 1, special: true}, {text: "c"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("segment = %+v, want %+v", got, want)
	}
}

func TestSegmentEqualLengthTieIsLexicographic(t *testing.T) {
	set := newSpecialSet()
	set.add("ab", 1)
	set.add("ab", 1) // duplicate add is a no-op
	set.finalize()
	if len(set.ordered) != 1 {
		t.Fatalf("duplicate add changed the candidate list: %v", set.ordered)
	}

	ordering := buildSpecialSet(map[string]int32{"zz": 1, "aa": 2, "mmm": 3})
	want := []string{"mmm", "aa", "zz"}
	if !reflect.DeepEqual(ordering.ordered, want) {
		t.Errorf("candidate order = %v, want %v (length desc, then lexicographic)", ordering.ordered, want)
	}
}

func TestSegmentNoSpecialsRegistered(t *testing.T) {
	set := newSpecialSet()
	set.finalize()

	got := set.segment("any text <|endoftext|>")
	want := []tokenSegment{{text: "any text <|endoftext|>"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("segment = %+v, want the whole text as one literal", got)
	}

	if set.segment("") != nil {
		t.Error("segment of empty text should be nil")
	}
}
