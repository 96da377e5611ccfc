package tokenizer

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Decode maps token ids back to text. Codepoints inside the byte-level
// alphabet fold back to their raw byte; anything else (special tokens and
// other added tokens were never byte-mapped) is emitted as its UTF-8
// encoding unchanged. An empty id slice is rejected, and any unknown id
// fails the whole call with no partial output.
func (t *Tokenizer) Decode(ids []int32) (string, error) {
	if len(ids) == 0 {
		return "", fmt.Errorf("%w: id sequence is empty", ErrInvalidInput)
	}

	// First pass: validate every id and compute the output size.
	total := 0
	for _, id := range ids {
		tok, ok := t.vocab.tokenOf(id)
		if !ok {
			return "", fmt.Errorf("%w: id %d", ErrTokenNotFound, id)
		}
		n, err := decodedSize(tok)
		if err != nil {
			return "", err
		}
		total += n
	}

	// Second pass: fill a pre-sized buffer.
	var sb strings.Builder
	sb.Grow(total)
	for _, id := range ids {
		tok, _ := t.vocab.tokenOf(id)
		writeDecoded(&sb, tok)
	}
	return sb.String(), nil
}

func decodedSize(tok string) (int, error) {
	n := 0
	for i := 0; i < len(tok); {
		r, size := utf8.DecodeRuneInString(tok[i:])
		if r == utf8.RuneError && size == 1 {
			return 0, fmt.Errorf("%w: token contains malformed UTF-8", ErrInvalidInput)
		}
		if _, ok := runeToByte[r]; ok {
			n++
		} else {
			n += size
		}
		i += size
	}
	return n, nil
}

// writeDecoded assumes tok passed decodedSize validation.
func writeDecoded(sb *strings.Builder, tok string) {
	for i := 0; i < len(tok); {
		r, size := utf8.DecodeRuneInString(tok[i:])
		if b, ok := runeToByte[r]; ok {
			sb.WriteByte(b)
		} else {
			sb.WriteString(tok[i : i+size])
		}
		i += size
	}
}
