package core

// BuildReport aggregates per-row outcomes into an Import Report. Pure
// aggregation, no side effects: counts are derived from the outcome list
// so the total = saved + rejected invariant holds by construction.
//
// maxErrorRows caps the rejected detail list; rows past the cap still
// count in RejectedTotal. A non-positive cap keeps all detail.
func BuildReport(entity string, outcomes []Outcome, maxErrorRows int) Report {
	report := Report{Entity: entity}

	for _, o := range outcomes {
		if o.Saved() {
			report.Saved = append(report.Saved, SavedRow{Line: o.Line, EntityID: o.EntityID})
			continue
		}
		report.RejectedTotal++
		if maxErrorRows <= 0 || len(report.Rejected) < maxErrorRows {
			report.Rejected = append(report.Rejected, RejectedRow{Line: o.Line, Errors: o.Errors})
		}
	}

	return report
}
