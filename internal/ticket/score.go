package ticket

import "time"

// Pick-scoring weight tables. Higher score = more desirable to pick next.
var (
	priorityWeight = map[Priority]float64{PriorityP0: 300, PriorityP1: 200, PriorityP2: 100}
	effortWeight   = map[Effort]float64{EffortXS: 40, EffortS: 30, EffortM: 20, EffortL: 10}
)

const (
	// UnpickableScore is returned for tickets whose dependencies are not
	// satisfied. It keeps such tickets visible to diagnostics while making
	// them lose against any real candidate.
	UnpickableScore = -1e9

	depPenalty = 5
	maxAgeDays = 365
)

// ComputeScore ranks a ticket for picking, as of the given day:
// priority weight plus effort weight, minus 5 per listed dependency
// (satisfied or not), plus one point per day since created (clamped at
// 365). When the dependency gate fails the sentinel UnpickableScore is
// returned instead.
func ComputeScore(m Meta, index map[string]Meta, today time.Time) float64 {
	if ok, _ := DepsSatisfied(m, index); !ok {
		return UnpickableScore
	}

	base := priorityWeight[m.Priority] + effortWeight[m.Effort]
	penalty := float64(depPenalty * len(m.DependsOn))

	ageDays := 0.0
	if created, err := time.Parse("2006-01-02", m.Created); err == nil {
		days := today.Sub(created).Hours() / 24
		if days > 0 {
			ageDays = float64(int(days))
		}
		if ageDays > maxAgeDays {
			ageDays = maxAgeDays
		}
	}

	return base + ageDays - penalty
}
