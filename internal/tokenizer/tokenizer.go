// Package tokenizer implements a byte-level BPE tokenizer matching the
// inference-time behavior of the tokenizer.json configuration format:
// special-token segmentation, an optional normalizer chain, a
// pre-tokenization pipeline, greedy pairwise merging, and the exact
// inverse decoder.
//
// A Tokenizer is immutable after New and safe for concurrent use by any
// number of goroutines.
package tokenizer

import (
	"fmt"

	"github.com/example/go-bbpe/internal/model"
)

// Tokenizer converts UTF-8 text to token ids and back.
type Tokenizer struct {
	vocab    *vocabulary
	merges   *mergeTable
	stages   []stage
	specials *specialSet
	norm     normalizer

	// byteID seeds encoding: the vocabulary id of each raw byte's alphabet
	// symbol, or -1 when the byte is not representable.
	byteID [256]int32
}

// Special is a registered special token.
type Special struct {
	Content string
	ID      int32
}

// New builds a Tokenizer from a parsed configuration tree.
func New(file *model.File) (*Tokenizer, error) {
	if file == nil {
		return nil, fmt.Errorf("%w: nil configuration", ErrInvalidInput)
	}

	vocab, err := newVocabulary(file.Model.Vocab)
	if err != nil {
		return nil, err
	}

	t := &Tokenizer{
		vocab:    vocab,
		merges:   newMergeTable(vocab, file.Model.Merges),
		specials: newSpecialSet(),
	}

	t.stages, err = newStages(file.PreTokenizer)
	if err != nil {
		return nil, err
	}
	t.norm, err = newNormalizer(file.Normalizer)
	if err != nil {
		return nil, err
	}

	// Added tokens may extend the id space past the base vocabulary. A
	// token is registered for special segmentation only when its id slot is
	// still vacant; entries colliding with base-vocabulary ids are ignored.
	for _, at := range file.AddedTokens {
		if at.Content == "" || at.ID < 0 {
			continue
		}
		vocab.extend(at.ID)
		if _, taken := vocab.tokenOf(at.ID); taken {
			continue
		}
		vocab.assign(at.Content, at.ID)
		t.specials.add(at.Content, at.ID)
	}
	t.specials.finalize()

	// Seed ids per byte: the byte's alphabet symbol, falling back to the
	// raw single-byte string for vocabularies that store bytes verbatim.
	for b := 0; b < 256; b++ {
		id, ok := vocab.idOf(string(byteToRune[b]))
		if !ok {
			id, ok = vocab.idOf(string([]byte{byte(b)}))
		}
		if !ok {
			id = -1
		}
		t.byteID[b] = id
	}

	return t, nil
}

// VocabSize returns the id-space size: the maximum assigned id plus one,
// including gaps introduced by added tokens.
func (t *Tokenizer) VocabSize() int32 {
	return t.vocab.size()
}

// MergeCount returns the number of usable merge rules.
func (t *Tokenizer) MergeCount() int {
	return t.merges.count
}

// Specials returns the registered special tokens in segmentation
// precedence order.
func (t *Tokenizer) Specials() []Special {
	out := make([]Special, len(t.specials.ordered))
	for i, tok := range t.specials.ordered {
		out[i] = Special{Content: tok, ID: t.specials.ids[tok]}
	}
	return out
}

// Stages returns a description of each pre-tokenization stage in order.
func (t *Tokenizer) Stages() []string {
	out := make([]string, len(t.stages))
	for i, st := range t.stages {
		out[i] = st.String()
	}
	return out
}
