package moderation

import "context"

// The pipeline depends on three capabilities, injected at construction.
// Exactly one concrete backend exists per capability at a time.

// Classifier scores a text and reports the first category at or above its
// configured threshold.
type Classifier interface {
	Classify(ctx context.Context, text string) (Verdict, error)
}

// Arbiter gives a binary harmfulness call: true means safe.
type Arbiter interface {
	Judge(ctx context.Context, text string) (bool, error)
}

// BlocklistWriter appends a flagged text to a named exclusion list.
// Category may be empty. The remote store owns idempotence.
type BlocklistWriter interface {
	Upsert(ctx context.Context, listName, text, category string) error
}
