package moderation

import "errors"

var (
	// ErrClassifierUnavailable wraps any severity classifier failure. It is
	// always propagated: a classifier outage must never read as "no hit".
	ErrClassifierUnavailable = errors.New("severity classifier unavailable")

	// ErrExclusionListWriteFailed wraps a failed exclusion list upsert. It is
	// propagated so the caller knows a harmful verdict was not persisted.
	ErrExclusionListWriteFailed = errors.New("exclusion list write failed")
)
