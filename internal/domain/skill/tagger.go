package skill

import (
	"context"
	"errors"
)

var (
	ErrTaggerInit          = errors.New("entity tagger initialization failed")
	ErrTaggerLimitExceeded = errors.New("input exceeds entity tagger limits")
	ErrTaggerFailure       = errors.New("entity tagger failed")
)

// Tagger labels spans of text with entity categories.
// Implementations must be safe for concurrent use.
type Tagger interface {
	Tag(ctx context.Context, text string) ([]TaggedSpan, error)
}
