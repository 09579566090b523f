package reconcile

import "sort"

// ReconcileOptions controls whether a plan is executed.
type ReconcileOptions struct {
	// DryRun prevents execution of any mutations if true.
	DryRun bool
}

// ReconcileWithPlan resolves the sync field set from both headers and builds
// a plan. It does NOT execute actions; use ApplyPlan for that.
func ReconcileWithPlan(store Store, src *Source, spec FieldSpec) (*Plan, error) {
	fields, err := ResolveFields(store.Header(), src.Header, spec)
	if err != nil {
		return nil, err
	}
	return BuildPlan(store, src, fields), nil
}

// ApplyPlan executes the plan unless opts.DryRun is set, in which case the
// store is left alone and the plan's preview is returned.
func ApplyPlan(store Store, plan *Plan, opts ReconcileOptions) (*Summary, error) {
	if opts.DryRun {
		return plan.Preview(), nil
	}
	return Apply(store, plan)
}

// ReconcileAndApply is a convenience wrapper that plans and optionally applies.
func ReconcileAndApply(store Store, src *Source, spec FieldSpec, opts ReconcileOptions) (*Plan, *Summary, error) {
	plan, err := ReconcileWithPlan(store, src, spec)
	if err != nil {
		return nil, nil, err
	}
	summary, err := ApplyPlan(store, plan, opts)
	return plan, summary, err
}

// Preview derives a summary from the plan without applying it.
// Added entries carry no row since nothing was written.
func (p *Plan) Preview() *Summary {
	s := &Summary{
		SkippedTarget: p.Summary.SkippedTarget,
		SkippedSource: p.Summary.SkippedSource,
		Duplicates:    p.Summary.Duplicates,
	}
	if p.Fields != nil {
		s.Fields = append([]string(nil), p.Fields.Fields...)
	}

	for _, a := range p.Actions {
		ref := KeyRef{Key: a.Key, Row: a.Row}
		switch a.Type {
		case ActionDelete:
			s.Deleted = append(s.Deleted, ref)
		case ActionKeep:
			s.Kept = append(s.Kept, ref)
		case ActionInsert:
			s.Added = append(s.Added, ref)
		}
	}
	sort.Slice(s.Deleted, func(i, j int) bool {
		return s.Deleted[i].Row < s.Deleted[j].Row
	})

	return s
}
