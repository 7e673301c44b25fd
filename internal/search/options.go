package search

// DefaultFuzzyThreshold is the minimum similarity a fuzzy hit must reach.
const DefaultFuzzyThreshold = 0.6

// Options controls how a query is matched against page text.
type Options struct {
	CaseSensitive bool
	// FlexibleWhitespace tolerates whitespace the text extractor inserted
	// inside words. Ignored when Fuzzy is set.
	FlexibleWhitespace bool
	Fuzzy              bool
	// FuzzyThreshold is in [0, 1]; 1 accepts exact hits only.
	FuzzyThreshold float64
	AutoScroll     bool
}

// DefaultOptions returns the options used when the caller sets nothing.
func DefaultOptions() Options {
	return Options{
		CaseSensitive:      false,
		FlexibleWhitespace: true,
		Fuzzy:              false,
		FuzzyThreshold:     DefaultFuzzyThreshold,
		AutoScroll:         true,
	}
}

// Overrides holds per-context option changes; nil fields inherit.
type Overrides struct {
	CaseSensitive      *bool
	FlexibleWhitespace *bool
	Fuzzy              *bool
	FuzzyThreshold     *float64
}

// Merge returns o with every non-nil override applied.
func (o Options) Merge(ov Overrides) Options {
	if ov.CaseSensitive != nil {
		o.CaseSensitive = *ov.CaseSensitive
	}
	if ov.FlexibleWhitespace != nil {
		o.FlexibleWhitespace = *ov.FlexibleWhitespace
	}
	if ov.Fuzzy != nil {
		o.Fuzzy = *ov.Fuzzy
	}
	if ov.FuzzyThreshold != nil {
		o.FuzzyThreshold = *ov.FuzzyThreshold
	}
	return o
}

// Empty reports whether no override is set.
func (ov Overrides) Empty() bool {
	return ov.CaseSensitive == nil && ov.FlexibleWhitespace == nil && ov.Fuzzy == nil && ov.FuzzyThreshold == nil
}

func clampThreshold(t float64) float64 {
	switch {
	case t != t: // NaN
		return DefaultFuzzyThreshold
	case t < 0:
		return 0
	case t > 1:
		return 1
	default:
		return t
	}
}
