// Package summary derives the flat display record the widget shows
// alongside the chart. Every field resolves through a fixed fallback chain,
// first match wins; missing upstream data degrades to "0.00"/"0" defaults,
// never to an error.
package summary

import "sgccwidget/pkg/models"

// Extract derives the display summary from one account record and the
// fetch time of the payload it came from.
func Extract(record models.AccountRecord, lastUpdateTime int64) models.DisplaySummary {
	out := models.DisplaySummary{
		Balance:        record.Balance().StringOr("0.00"),
		HasArrear:      record.ArrearsOfFees.Bool(),
		LastBill:       "0.00",
		LastUsage:      "0",
		YearBill:       "0",
		YearUsage:      "0",
		LastUpdateTime: lastUpdateTime,
	}

	// Last period: prefer the final monthly entry, fall back to the first
	// step record's totals.
	if monthly := record.MonthlyEntries(); len(monthly) > 0 {
		last := monthly[len(monthly)-1]
		out.LastBill = last.CostValue().StringOr("0.00")
		out.LastUsage = last.UsageValue().StringOr("0")
	} else if p := record.FirstStepParticulars(); p != nil {
		out.LastBill = p.TotalAmount.StringOr("0.00")
		out.LastUsage = p.TotalPq.StringOr("0")
	}

	info := record.MonthlyInfo()
	out.YearBill = info.TotalEleCost.StringOr("0")
	out.YearUsage = info.TotalEleNum.StringOr("0")

	// The step record's year-to-date usage is more current than the monthly
	// aggregate, so it overrides when present.
	if p := record.FirstStepParticulars(); p != nil && p.TotalYearPq.Bool() {
		out.TotalYearPq = p.TotalYearPq.Float64Or(0)
		out.YearUsage = p.TotalYearPq.String()
	}

	return out
}
