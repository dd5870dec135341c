package moderation

import (
	"context"
	"fmt"

	"github.com/modshield/modshield/pkg/infra/contentsafety"
	"github.com/modshield/modshield/pkg/infra/metrics"
)

// BlocklistUpserter is the slice of the content-safety client the exclusion
// list writer needs.
type BlocklistUpserter interface {
	AddOrUpdateItems(ctx context.Context, name string, items []contentsafety.BlocklistItem) (*contentsafety.AddOrUpdateItemsResponse, error)
}

// ExclusionListWriter records flagged texts in a remote blocklist. The
// category travels in the item description, matching how the list is later
// consumed during analysis.
type ExclusionListWriter struct {
	upserter BlocklistUpserter
}

func NewExclusionListWriter(upserter BlocklistUpserter) *ExclusionListWriter {
	return &ExclusionListWriter{upserter: upserter}
}

func (w *ExclusionListWriter) Upsert(ctx context.Context, listName, text, category string) error {
	items := []contentsafety.BlocklistItem{
		{Description: category, Text: text},
	}
	if _, err := w.upserter.AddOrUpdateItems(ctx, listName, items); err != nil {
		metrics.BlocklistWritesTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("%w: %v", ErrExclusionListWriteFailed, err)
	}
	metrics.BlocklistWritesTotal.WithLabelValues("ok").Inc()
	return nil
}
