package tokenizer

import (
	"fmt"
	"math"
)

// Encode converts text into token ids: special-token segmentation, then
// per-segment normalization and pre-tokenization, then greedy byte-level
// BPE merging within each chunk. Empty input yields an empty sequence. On
// error no ids are returned and the tokenizer remains usable.
func (t *Tokenizer) Encode(text string) ([]int32, error) {
	ids := []int32{}
	for _, seg := range t.specials.segment(text) {
		if seg.special {
			ids = append(ids, seg.id)
			continue
		}

		literal := seg.text
		if t.norm != nil {
			literal = t.norm.normalize(literal)
		}

		for _, chunk := range pretokenize(t.stages, literal) {
			var err error
			ids, err = t.encodeChunk(chunk, ids)
			if err != nil {
				return nil, err
			}
		}
	}
	return ids, nil
}

// encodeChunk seeds one chunk as per-byte token ids, then repeatedly
// applies the lowest-priority applicable merge until none remain,
// appending the result to acc. The scan-and-compact loop is quadratic in
// the chunk length, which pre-tokenization keeps small.
func (t *Tokenizer) encodeChunk(chunk string, acc []int32) ([]int32, error) {
	if chunk == "" {
		return acc, nil
	}

	ids := make([]int32, len(chunk))
	for i := 0; i < len(chunk); i++ {
		id := t.byteID[chunk[i]]
		if id < 0 {
			return nil, fmt.Errorf("%w: no vocabulary entry for byte 0x%02X", ErrTokenNotFound, chunk[i])
		}
		ids[i] = id
	}

	for len(ids) > 1 {
		best := -1
		var bestID int32
		bestPriority := int32(math.MaxInt32)
		for i := 0; i+1 < len(ids); i++ {
			if newID, prio, ok := t.merges.lookup(ids[i], ids[i+1]); ok && prio < bestPriority {
				best, bestID, bestPriority = i, newID, prio
			}
		}
		if best < 0 {
			break
		}

		// Replace the pair in place and close the gap. The sequence shrinks
		// by one per merge, so the loop terminates.
		ids[best] = bestID
		ids = append(ids[:best+1], ids[best+2:]...)
	}

	return append(acc, ids...), nil
}
