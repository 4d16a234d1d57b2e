package pipeline

import "sort"

// Partition splits a pool into the passed and failed cohorts. A candidate
// passes only when both verdicts are positive and fails on an explicit
// negative from either pass; candidates a pass never reached carry no
// verdict there and belong to neither cohort. Passed candidates are ranked
// by combined score descending with id ascending as tie-break, failed
// candidates keep id order.
func Partition(pool []Candidate) Cohorts {
	var out Cohorts
	for _, c := range pool {
		r := Ranked{Candidate: c, TotalScore: totalScore(c)}
		switch {
		case c.Scored() && *c.ATSPassed && *c.SmartPassed:
			out.Passed = append(out.Passed, r)
		case (c.ATSPassed != nil && !*c.ATSPassed) || (c.SmartPassed != nil && !*c.SmartPassed):
			out.Failed = append(out.Failed, r)
		}
	}
	sort.SliceStable(out.Passed, func(i, j int) bool {
		if out.Passed[i].TotalScore != out.Passed[j].TotalScore {
			return out.Passed[i].TotalScore > out.Passed[j].TotalScore
		}
		return out.Passed[i].ID < out.Passed[j].ID
	})
	sort.SliceStable(out.Failed, func(i, j int) bool {
		return out.Failed[i].ID < out.Failed[j].ID
	})
	return out
}

func totalScore(c Candidate) float64 {
	var total float64
	if c.ATSScore != nil {
		total += *c.ATSScore
	}
	if c.SmartScore != nil {
		total += *c.SmartScore
	}
	return total
}
