package tokenizer

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/example/go-bbpe/internal/model"
)

// normalizer rewrites one literal segment before pre-tokenization.
// Special tokens are segmented out first and never pass through here, so a
// Lowercase normalizer cannot fold a control marker away.
type normalizer interface {
	normalize(text string) string
}

type formNormalizer struct {
	form norm.Form
}

func (n formNormalizer) normalize(text string) string {
	return n.form.String(text)
}

type lowercaseNormalizer struct{}

func (lowercaseNormalizer) normalize(text string) string {
	return strings.ToLower(text)
}

type chainNormalizer struct {
	steps []normalizer
}

func (n chainNormalizer) normalize(text string) string {
	for _, step := range n.steps {
		text = step.normalize(text)
	}
	return text
}

// newNormalizer builds the optional normalizer chain. A nil descriptor or
// empty type means no normalization.
func newNormalizer(cfg *model.Normalizer) (normalizer, error) {
	if cfg == nil || cfg.Type == "" {
		return nil, nil
	}

	switch cfg.Type {
	case "NFC":
		return formNormalizer{norm.NFC}, nil
	case "NFD":
		return formNormalizer{norm.NFD}, nil
	case "NFKC":
		return formNormalizer{norm.NFKC}, nil
	case "NFKD":
		return formNormalizer{norm.NFKD}, nil
	case "Lowercase":
		return lowercaseNormalizer{}, nil
	case "Sequence":
		steps := make([]normalizer, 0, len(cfg.Normalizers))
		for i := range cfg.Normalizers {
			step, err := newNormalizer(&cfg.Normalizers[i])
			if err != nil {
				return nil, err
			}
			if step != nil {
				steps = append(steps, step)
			}
		}
		return chainNormalizer{steps: steps}, nil
	default:
		return nil, fmt.Errorf("%w: normalizer type %q", ErrUnsupportedType, cfg.Type)
	}
}
