package moderation

// Verdict is one severity classifier's call on a text: either no category
// crossed the classifier's threshold, or the first one that did.
type Verdict struct {
	Hit      bool
	Category string
}

func NoHit() Verdict {
	return Verdict{}
}

func Hit(category string) Verdict {
	return Verdict{Hit: true, Category: category}
}
