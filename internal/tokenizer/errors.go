package tokenizer

import "errors"

// ErrVocabMissing is returned by New when the configuration has no
// vocabulary or the vocabulary is empty.
var ErrVocabMissing = errors.New("vocabulary is missing or empty")

// ErrPatternCompile is returned by New when a Split stage's regular
// expression fails to compile.
var ErrPatternCompile = errors.New("split pattern failed to compile")

// ErrUnsupportedType is returned by New for pre-tokenizer or normalizer
// types this implementation does not handle.
var ErrUnsupportedType = errors.New("unsupported configuration type")

// ErrTokenNotFound is returned when a byte has no vocabulary entry during
// encoding, or an id has no associated token during decoding. The
// tokenizer remains usable for further calls.
var ErrTokenNotFound = errors.New("token not found")

// ErrInvalidInput is returned for empty or malformed arguments.
var ErrInvalidInput = errors.New("invalid input")
