package tokenizer

// vocabulary is the bidirectional token-string ↔ id index. Base ids are
// dense from 0 to the configured maximum; added tokens may extend the id
// space with gaps. Absent slots hold the empty string, which never
// collides with a real entry because byte-level BPE tokens are at least
// one codepoint long.
type vocabulary struct {
	ids    map[string]int32
	tokens []string
}

func newVocabulary(vocab map[string]int32) (*vocabulary, error) {
	if len(vocab) == 0 {
		return nil, ErrVocabMissing
	}

	maxID := int32(-1)
	for _, id := range vocab {
		if id > maxID {
			maxID = id
		}
	}

	v := &vocabulary{
		ids:    make(map[string]int32, len(vocab)),
		tokens: make([]string, maxID+1),
	}
	for tok, id := range vocab {
		v.ids[tok] = id
		if id >= 0 {
			v.tokens[id] = tok
		}
	}
	return v, nil
}

func (v *vocabulary) idOf(token string) (int32, bool) {
	id, ok := v.ids[token]
	return id, ok
}

func (v *vocabulary) tokenOf(id int32) (string, bool) {
	if id < 0 || int(id) >= len(v.tokens) || v.tokens[id] == "" {
		return "", false
	}
	return v.tokens[id], true
}

// size is the id-space size: max id + 1 across base and added tokens.
func (v *vocabulary) size() int32 {
	return int32(len(v.tokens))
}

// extend grows the id space so id is addressable; slots between the old
// and new maximum stay absent.
func (v *vocabulary) extend(id int32) {
	if n := int(id) + 1 - len(v.tokens); n > 0 {
		v.tokens = append(v.tokens, make([]string, n)...)
	}
}

// assign binds an added token's string to an id slot. Added tokens are
// resolvable by id for decoding but are deliberately kept out of the
// string→id index: they must never participate in BPE merging.
func (v *vocabulary) assign(token string, id int32) {
	v.tokens[id] = token
}
