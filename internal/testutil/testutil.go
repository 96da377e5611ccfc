// Package testutil provides shared tokenizer fixtures for tests that need a
// working vocabulary without committing a full-size tokenizer.json.
//
// The fixture covers the whole byte alphabet plus a handful of merges, so
// encode and decode exercise realistic paths while staying readable in
// failure output.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/example/go-bbpe/internal/model"
	"github.com/example/go-bbpe/internal/tokenizer"
)

// FixtureFile returns a small parsed tokenizer config: all 256 byte symbols,
// merges that build "hell" and "Ġw", and an <|endoftext|> special token.
func FixtureFile() *model.File {
	vocab := make(map[string]int32, 262)
	for id, sym := range tokenizer.ByteAlphabet() {
		vocab[sym] = int32(id)
	}
	vocab["he"] = 256
	vocab["ll"] = 257
	vocab["hell"] = 258
	vocab["Ġw"] = 259

	return &model.File{
		Model: model.Model{
			Type:  "BPE",
			Vocab: vocab,
			Merges: []model.MergePair{
				{Left: "h", Right: "e"},
				{Left: "l", Right: "l"},
				{Left: "he", Right: "ll"},
				{Left: "Ġ", Right: "w"},
			},
		},
		PreTokenizer: &model.PreTokenizer{
			Type: "Sequence",
			PreTokenizers: []model.PreTokenizer{
				{Type: "Split", Pattern: &model.Pattern{Regex: ` ?\p{L}+| ?\p{N}+| ?[^\s\p{L}\p{N}]+|\s+`}},
				{Type: "ByteLevel"},
			},
		},
		AddedTokens: []model.AddedToken{
			{ID: 300, Content: "<|endoftext|>", Special: true},
		},
	}
}

// NewTokenizer builds a tokenizer from the fixture config.
func NewTokenizer(tb testing.TB) *tokenizer.Tokenizer {
	tb.Helper()

	tok, err := tokenizer.New(FixtureFile())
	if err != nil {
		tb.Fatalf("build fixture tokenizer: %v", err)
	}
	return tok
}

// WriteTokenizerJSON serializes the fixture config to dir/tokenizer.json and
// returns the path. The written file round trips through model.Load.
func WriteTokenizerJSON(tb testing.TB, dir string) string {
	tb.Helper()

	f := FixtureFile()

	merges := make([]string, len(f.Model.Merges))
	for i, m := range f.Model.Merges {
		merges[i] = m.Left + " " + m.Right
	}

	stages := make([]map[string]any, len(f.PreTokenizer.PreTokenizers))
	for i, st := range f.PreTokenizer.PreTokenizers {
		stage := map[string]any{"type": st.Type}
		if st.Pattern != nil {
			stage["pattern"] = map[string]string{"Regex": st.Pattern.Regex}
		}
		stages[i] = stage
	}

	added := make([]map[string]any, len(f.AddedTokens))
	for i, at := range f.AddedTokens {
		added[i] = map[string]any{"id": at.ID, "content": at.Content, "special": at.Special}
	}

	data, err := json.Marshal(map[string]any{
		"model": map[string]any{
			"type":   f.Model.Type,
			"vocab":  f.Model.Vocab,
			"merges": merges,
		},
		"pre_tokenizer": map[string]any{
			"type":          f.PreTokenizer.Type,
			"pretokenizers": stages,
		},
		"added_tokens": added,
	})
	if err != nil {
		tb.Fatalf("marshal fixture config: %v", err)
	}

	path := filepath.Join(dir, "tokenizer.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		tb.Fatalf("write fixture config: %v", err)
	}
	return path
}
