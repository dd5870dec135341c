package moderation

import (
	"context"
	"fmt"

	"github.com/modshield/modshield/pkg/infra/contentsafety"
)

// TextAnalyzer is the slice of the content-safety client the classifier
// needs.
type TextAnalyzer interface {
	AnalyzeText(ctx context.Context, req contentsafety.AnalyzeTextRequest) (*contentsafety.AnalyzeTextResponse, error)
}

// SeverityClassifier turns the remote per-category severity analysis into a
// threshold verdict. The threshold is fixed at construction.
type SeverityClassifier struct {
	analyzer  TextAnalyzer
	threshold Threshold
}

func NewSeverityClassifier(analyzer TextAnalyzer, threshold Threshold) *SeverityClassifier {
	return &SeverityClassifier{
		analyzer:  analyzer,
		threshold: threshold,
	}
}

func (c *SeverityClassifier) Threshold() Threshold {
	return c.threshold
}

// Classify scans the category results in the order the service returned
// them and reports the first one at or above the threshold. It deliberately
// does not pick the maximum-severity category; on multi-category hits the
// response order decides.
func (c *SeverityClassifier) Classify(ctx context.Context, text string) (Verdict, error) {
	resp, err := c.analyzer.AnalyzeText(ctx, contentsafety.AnalyzeTextRequest{Text: text})
	if err != nil {
		return NoHit(), fmt.Errorf("%w: %v", ErrClassifierUnavailable, err)
	}

	for _, item := range resp.CategoriesAnalysis {
		if item.Severity >= int(c.threshold) {
			return Hit(item.Category), nil
		}
	}
	return NoHit(), nil
}
