package moderation

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/modshield/modshield/pkg/infra/metrics"
)

// Outcome is the result of one pipeline evaluation. Content carries the
// original text unchanged on a pass; Suppressed marks content judged harmful
// and registered in the exclusion list, in which case Content is empty and
// Category names the loose classifier's hit.
type Outcome struct {
	Content    string
	Suppressed bool
	Category   string
}

// Pipeline chains a strict severity filter, a loose severity filter and an
// LLM arbiter, and registers harmful content in a remote exclusion list.
//
// The three checks run strictly in sequence and each later check runs only
// when the previous one hit. Failure policy is asymmetric on purpose: both
// classifiers and the exclusion list write fail closed (errors propagate),
// the arbiter fails open (an unavailable arbiter reads as "safe"). The
// pipeline holds no mutable state, so concurrent evaluations are safe.
type Pipeline struct {
	strict    Classifier
	loose     Classifier
	arbiter   Arbiter
	blocklist BlocklistWriter
	listName  string
	logger    *logrus.Logger
}

func NewPipeline(
	strict Classifier,
	loose Classifier,
	arbiter Arbiter,
	blocklist BlocklistWriter,
	listName string,
	logger *logrus.Logger,
) *Pipeline {
	return &Pipeline{
		strict:    strict,
		loose:     loose,
		arbiter:   arbiter,
		blocklist: blocklist,
		listName:  listName,
		logger:    logger,
	}
}

// Evaluate classifies a text through the cascade. A loose-filter miss ends
// the cascade without consulting the arbiter, and nothing is written to the
// exclusion list before the arbiter rules harmful; those are the only two
// paths that were ever up for debate and both are settled here.
func (p *Pipeline) Evaluate(ctx context.Context, content string) (*Outcome, error) {
	primary, err := p.strict.Classify(ctx, content)
	if err != nil {
		return nil, err
	}
	if !primary.Hit {
		metrics.EvaluationsTotal.WithLabelValues("passed").Inc()
		return &Outcome{Content: content}, nil
	}

	p.logger.WithField("category", primary.Category).Debug("strict filter hit, escalating")

	secondary, err := p.loose.Classify(ctx, content)
	if err != nil {
		return nil, err
	}
	if !secondary.Hit {
		metrics.EvaluationsTotal.WithLabelValues("passed").Inc()
		return &Outcome{Content: content}, nil
	}

	safe, err := p.arbiter.Judge(ctx, content)
	if err != nil {
		// The arbiter is a secondary safety net; losing it must not block
		// the pipeline.
		p.logger.WithError(err).Warn("arbiter unavailable, treating content as safe")
		safe = true
	}
	if safe {
		metrics.EvaluationsTotal.WithLabelValues("passed").Inc()
		return &Outcome{Content: content}, nil
	}

	if err := p.blocklist.Upsert(ctx, p.listName, content, secondary.Category); err != nil {
		return nil, err
	}

	p.logger.WithFields(logrus.Fields{
		"category": secondary.Category,
		"list":     p.listName,
	}).Info("content suppressed and registered in exclusion list")

	metrics.EvaluationsTotal.WithLabelValues("suppressed").Inc()
	return &Outcome{Suppressed: true, Category: secondary.Category}, nil
}
