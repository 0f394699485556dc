package skill

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"aspiro/internal/domain/skill"
)

const cacheKeyPrefix = "skills:extract:"

// ResultCache stores extraction results. Implementations may silently
// drop writes when their backend is unavailable.
type ResultCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

// CacheKey identifies the result of extracting category from text. The text
// is hashed verbatim because the tagger sees it verbatim.
func CacheKey(category skill.Category, text string) string {
	h := sha256.New()
	h.Write([]byte(category))
	h.Write([]byte{0})
	h.Write([]byte(text))
	return cacheKeyPrefix + hex.EncodeToString(h.Sum(nil))
}
