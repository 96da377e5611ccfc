package tokenizer

import (
	"fmt"

	"github.com/dlclark/regexp2"

	"github.com/example/go-bbpe/internal/model"
)

// stage is one pre-tokenization step. Apart from the optional ByteLevel
// prefix space, splitting never alters bytes: concatenating the returned
// chunks in order reproduces the input.
type stage interface {
	split(text string) []string
	fmt.Stringer
}

// byteLevelStage emits the input as a single chunk, optionally prefixed
// with one space.
type byteLevelStage struct {
	addPrefixSpace bool
}

func (s byteLevelStage) split(text string) []string {
	if s.addPrefixSpace {
		return []string{" " + text}
	}
	return []string{text}
}

func (s byteLevelStage) String() string {
	return fmt.Sprintf("ByteLevel(add_prefix_space=%t)", s.addPrefixSpace)
}

// patternStage splits the input around every match of its pattern: the
// span before each match becomes a chunk, then the match itself, and text
// after the last match becomes a final chunk.
type patternStage struct {
	re      *regexp2.Regexp
	pattern string
}

func (s patternStage) split(text string) []string {
	// The pattern engine reports rune offsets, so scan over runes.
	runes := []rune(text)

	var chunks []string
	offset := 0
	m, err := s.re.FindRunesMatch(runes)
	for err == nil && m != nil {
		// A zero-length match is skipped; FindNextMatch guarantees forward
		// progress past it.
		if m.Length > 0 {
			if m.Index > offset {
				chunks = append(chunks, string(runes[offset:m.Index]))
			}
			chunks = append(chunks, m.String())
			offset = m.Index + m.Length
		}
		m, err = s.re.FindNextMatch(m)
	}

	if offset < len(runes) {
		chunks = append(chunks, string(runes[offset:]))
	}
	if len(chunks) == 0 {
		// Never matched: the whole input is one chunk.
		return []string{text}
	}
	return chunks
}

func (s patternStage) String() string {
	return fmt.Sprintf("Split(%q)", s.pattern)
}

// pretokenize fans one literal segment through the stage chain. The first
// stage consumes the segment as a single chunk; every later stage runs
// over each chunk the previous stage produced, with left-to-right order
// preserved throughout. Zero stages pass the segment through unchanged.
func pretokenize(stages []stage, text string) []string {
	chunks := []string{text}
	for _, st := range stages {
		next := make([]string, 0, len(chunks))
		for _, c := range chunks {
			next = append(next, st.split(c)...)
		}
		chunks = next
	}
	return chunks
}

// newStages builds the stage chain from the configuration: either a single
// stage descriptor or a Sequence of them. A missing descriptor or one with
// an empty type yields an empty chain.
func newStages(cfg *model.PreTokenizer) ([]stage, error) {
	if cfg == nil || cfg.Type == "" {
		return nil, nil
	}

	if cfg.Type == "Sequence" {
		stages := make([]stage, 0, len(cfg.PreTokenizers))
		for i := range cfg.PreTokenizers {
			st, err := newStage(&cfg.PreTokenizers[i])
			if err != nil {
				return nil, err
			}
			stages = append(stages, st)
		}
		return stages, nil
	}

	st, err := newStage(cfg)
	if err != nil {
		return nil, err
	}
	return []stage{st}, nil
}

func newStage(cfg *model.PreTokenizer) (stage, error) {
	switch cfg.Type {
	case "ByteLevel":
		return byteLevelStage{addPrefixSpace: cfg.AddPrefixSpace}, nil
	case "Split":
		if cfg.Pattern == nil || cfg.Pattern.Regex == "" {
			return nil, fmt.Errorf("%w: Split stage has no pattern", ErrInvalidInput)
		}
		re, err := regexp2.Compile(cfg.Pattern.Regex, regexp2.RE2)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrPatternCompile, cfg.Pattern.Regex, err)
		}
		return patternStage{re: re, pattern: cfg.Pattern.Regex}, nil
	default:
		return nil, fmt.Errorf("%w: pre_tokenizer type %q", ErrUnsupportedType, cfg.Type)
	}
}
