// Package model loads tokenizer.json configuration files into a parsed
// tree the tokenizer core consumes. It covers the subset of the format a
// byte-level BPE tokenizer needs: the vocabulary, the ordered merge list,
// the pre-tokenizer chain, the optional normalizer, and added tokens.
package model

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// File is a parsed tokenizer.json configuration tree.
type File struct {
	Model        Model         `json:"model"`
	Normalizer   *Normalizer   `json:"normalizer"`
	PreTokenizer *PreTokenizer `json:"pre_tokenizer"`
	AddedTokens  []AddedToken  `json:"added_tokens"`
}

// Model holds the trained vocabulary and merge list.
type Model struct {
	Type   string           `json:"type"`
	Vocab  map[string]int32 `json:"vocab"`
	Merges []MergePair      `json:"merges"`
}

// MergePair is one training-order merge rule. The format encodes merges
// either as a single "left right" string or as a two-element array.
// Records that fit neither encoding decode to the zero value and are later
// skipped by the merge-table builder, so one malformed entry does not fail
// the whole load.
type MergePair struct {
	Left  string
	Right string
}

func (m *MergePair) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		// Split on the first space; tokens to the right may contain more.
		if i := strings.IndexByte(s, ' '); i >= 0 {
			m.Left, m.Right = s[:i], s[i+1:]
		}
		return nil
	}

	var pair []string
	if err := json.Unmarshal(data, &pair); err == nil && len(pair) == 2 {
		m.Left, m.Right = pair[0], pair[1]
	}
	return nil
}

// PreTokenizer describes one pre-tokenization stage, or a Sequence of them.
type PreTokenizer struct {
	Type           string         `json:"type"`
	AddPrefixSpace bool           `json:"add_prefix_space"`
	Pattern        *Pattern       `json:"pattern"`
	PreTokenizers  []PreTokenizer `json:"pretokenizers"`
}

// Pattern holds a Split stage's regular expression.
type Pattern struct {
	Regex string `json:"Regex"`
}

// Normalizer describes a text normalization step, or a Sequence of them.
type Normalizer struct {
	Type        string       `json:"type"`
	Normalizers []Normalizer `json:"normalizers"`
}

// AddedToken is a token layered on top of the base vocabulary, possibly
// extending the id space.
type AddedToken struct {
	ID      int32  `json:"id"`
	Content string `json:"content"`
	Special bool   `json:"special"`
}

// Parse decodes tokenizer.json content.
func Parse(data []byte) (*File, error) {
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse tokenizer config: %w", err)
	}
	return &f, nil
}

// Load reads and parses a tokenizer.json file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tokenizer config %q: %w", path, err)
	}
	return Parse(data)
}
