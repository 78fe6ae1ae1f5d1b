package oem

// Registry holds the registered Policies in registration order, which
// doubles as the tie-break order for Detect (spec.md §4.6, Open
// Question: ties break by registration order — first registered wins).
type Registry struct {
	policies []Policy
	defaultP Policy
	hasDef   bool
}

// NewRegistry builds a Registry from policies in the given order. A
// policy named "Default" or "default" is treated as the mandatory
// fallback (spec.md §4.6 step 2) and excluded from scoring; every other
// registry must still supply one via SetDefault if none is present.
func NewRegistry(policies []Policy) *Registry {
	r := &Registry{}
	for _, p := range policies {
		if p.BrandKey == "Default" || p.BrandKey == "default" {
			r.defaultP = p
			r.hasDef = true
			continue
		}
		r.policies = append(r.policies, p)
	}
	return r
}

// SetDefault overrides the fallback policy.
func (r *Registry) SetDefault(p Policy) {
	r.defaultP = p
	r.hasDef = true
}

// ErrNoDefault is an internal error (spec.md §7 Policy class) that
// should never occur: the catalog always defines a Default policy.
type ErrNoDefault struct{}

func (ErrNoDefault) Error() string {
	return "oem: no registered policies and no Default fallback — catalog is misconfigured"
}

// Detect scores every registered (non-default) policy against the
// given text samples (typically the slug and the theme's functions
// file content) and returns the highest scorer. Ties resolve to the
// first-registered candidate. A zero score for every policy falls back
// to Default, which always matches by construction (P7).
func (r *Registry) Detect(samples ...string) (Policy, error) {
	best := -1
	bestIdx := -1
	for i, p := range r.policies {
		score := p.Score(samples...)
		if score > best {
			best = score
			bestIdx = i
		}
	}

	if bestIdx >= 0 && best > 0 {
		return r.policies[bestIdx], nil
	}

	if r.hasDef {
		return r.defaultP, nil
	}
	return Policy{}, ErrNoDefault{}
}
