// Package series turns an account record into bar-chart-ready series for
// the widget: monthly or daily bars for the small chart, and 7-day / 30-day
// / 12-month bars for the large one. Entries with absent or non-numeric
// usage values are skipped, not zero-filled; an empty qualifying input
// yields an empty series.
package series

import (
	"regexp"
	"strconv"
	"time"

	"sgccwidget/internal/settings"
	"sgccwidget/internal/tariff"
	"sgccwidget/pkg/models"
)

// dayPattern matches the leading year and month of a daily entry's date
// string, tolerating an optional non-digit separator ("2025-08-14",
// "20250814", "2025/08/14").
var dayPattern = regexp.MustCompile(`^(\d{4})\D?(\d{2})`)

// BuildChartSeries produces the small-widget chart series per the settings'
// dimension, keeping the last BarCount entries in chronological ascending
// order.
func BuildChartSeries(record models.AccountRecord, st settings.Settings) []models.BarDatum {
	steps := classifyMonthly(record, st)

	var bars []models.BarDatum
	if st.Dimension == settings.DimensionMonthly {
		bars = monthlyBars(steps)
	} else {
		bars = dailyBars(record.DailyEntries(), steps, time.Now().Year())
	}

	return lastN(bars, st.BarCount)
}

// BuildLargeRangeSeries produces the large-widget series for the configured
// display range: the last 12 monthly entries, or the last 7 or 30 daily
// ones.
func BuildLargeRangeSeries(record models.AccountRecord, st settings.Settings) []models.BarDatum {
	if st.LargeWidgetRange == settings.Range12Months {
		entries := record.MonthlyEntries()
		bars := make([]models.BarDatum, 0, len(entries))
		for _, e := range entries {
			level := e.Level
			if level == 0 {
				level = 1
			}
			bars = append(bars, models.BarDatum{
				Value: e.UsageValue().Float64Or(0),
				Level: level,
				Label: e.Month,
			})
		}
		return lastN(bars, 12)
	}

	steps := classifyMonthly(record, st)
	bars := dailyBars(record.DailyEntries(), steps, time.Now().Year())

	count := 7
	if st.LargeWidgetRange == settings.Range30Days {
		count = 30
	}
	return lastN(bars, count)
}

// classifyMonthly runs the tariff classifier over the record's monthly
// usage amounts.
func classifyMonthly(record models.AccountRecord, st settings.Settings) []tariff.Step {
	entries := record.MonthlyEntries()
	amounts := make([]float64, len(entries))
	for i, e := range entries {
		amounts[i] = e.UsageValue().Float64Or(0)
	}
	return tariff.Classify(amounts, st.OneLevelPq, st.TwoLevelPq)
}

// monthlyBars maps classified monthly entries to bars in original order.
func monthlyBars(steps []tariff.Step) []models.BarDatum {
	bars := make([]models.BarDatum, 0, len(steps))
	for _, s := range steps {
		bars = append(bars, models.BarDatum{Value: s.MonthlyAmount, Level: s.Level})
	}
	return bars
}

// dailyBars extracts bars from the last-31-days list. Upstream sends the
// list newest-first, so the collected bars are reversed to chronological
// ascending. A daily entry only inherits a monthly tier when its date falls
// in the given calendar year; out-of-year and unparseable dates stay at
// tier 1. The month-to-index clamp covers monthly lists shorter than the
// entry's month.
func dailyBars(days []models.DayUsage, steps []tariff.Step, year int) []models.BarDatum {
	var bars []models.BarDatum
	for _, d := range days {
		value, ok := d.DayElePq.Float64()
		if !ok {
			continue
		}

		level := 1
		if m := dayPattern.FindStringSubmatch(d.Day); m != nil && len(steps) > 0 {
			entryYear, _ := strconv.Atoi(m[1])
			entryMonth, _ := strconv.Atoi(m[2])
			if entryYear == year {
				idx := clamp(entryMonth-1, 0, len(steps)-1)
				level = steps[idx].Level
			}
		}

		bars = append(bars, models.BarDatum{Value: value, Level: level, Label: d.Day})
	}

	for i, j := 0, len(bars)-1; i < j; i, j = i+1, j-1 {
		bars[i], bars[j] = bars[j], bars[i]
	}
	return bars
}

// lastN keeps the trailing n entries without reordering.
func lastN(bars []models.BarDatum, n int) []models.BarDatum {
	if n <= 0 {
		return nil
	}
	if len(bars) <= n {
		return bars
	}
	return bars[len(bars)-n:]
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
