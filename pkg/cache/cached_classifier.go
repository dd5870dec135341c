package cache

import (
	"context"

	"golang.org/x/sync/singleflight"

	"github.com/modshield/modshield/pkg/moderation"
)

// CachedClassifier decorates a classifier with the verdict cache and
// collapses concurrent classifications of the same text into a single
// remote call. Errors are never cached.
type CachedClassifier struct {
	name  string
	inner moderation.Classifier
	cache *VerdictCache
	group singleflight.Group
}

func NewCachedClassifier(name string, inner moderation.Classifier, cache *VerdictCache) *CachedClassifier {
	return &CachedClassifier{
		name:  name,
		inner: inner,
		cache: cache,
	}
}

func (c *CachedClassifier) Classify(ctx context.Context, text string) (moderation.Verdict, error) {
	key := Key(c.name, text)
	if verdict, ok := c.cache.Get(ctx, key); ok {
		return verdict, nil
	}

	result, err, _ := c.group.Do(key, func() (interface{}, error) {
		verdict, err := c.inner.Classify(ctx, text)
		if err != nil {
			return nil, err
		}
		c.cache.Set(ctx, key, verdict)
		return verdict, nil
	})
	if err != nil {
		return moderation.NoHit(), err
	}

	verdict, ok := result.(moderation.Verdict)
	if !ok {
		return moderation.NoHit(), nil
	}
	return verdict, nil
}
