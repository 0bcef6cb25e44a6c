// Package tariff classifies cumulative electricity usage into the
// progressive pricing tiers. Residential tariffs step up once the
// year-to-date usage crosses each threshold, so the tier of a month depends
// on every month before it, not on the month's own usage.
package tariff

// Step is one classified entry of the monthly sequence.
type Step struct {
	CumulativeTotal float64
	MonthlyAmount   float64
	Level           int
}

// Classify walks the monthly usage amounts in input order, maintaining a
// running cumulative total, and assigns each entry its tier. Boundaries are
// strict: a cumulative total exactly equal to a threshold stays in the
// lower tier. Levels are therefore monotonically non-decreasing.
func Classify(monthly []float64, oneLevelPq, twoLevelPq float64) []Step {
	steps := make([]Step, 0, len(monthly))

	var total float64
	for _, amount := range monthly {
		total += amount

		level := 1
		switch {
		case total > twoLevelPq:
			level = 3
		case total > oneLevelPq:
			level = 2
		}

		steps = append(steps, Step{
			CumulativeTotal: total,
			MonthlyAmount:   amount,
			Level:           level,
		})
	}

	return steps
}
