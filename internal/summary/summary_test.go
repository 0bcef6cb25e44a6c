package summary

import (
	"testing"

	"github.com/stretchr/testify/require"

	"sgccwidget/pkg/models"
)

func TestExtractDefaults(t *testing.T) {
	got := Extract(models.AccountRecord{}, 1700000000000)

	require.Equal(t, models.DisplaySummary{
		Balance:        "0.00",
		HasArrear:      false,
		LastBill:       "0.00",
		LastUsage:      "0",
		YearBill:       "0",
		YearUsage:      "0",
		TotalYearPq:    0,
		LastUpdateTime: 1700000000000,
	}, got)
}

func TestExtractFromMonthlyList(t *testing.T) {
	rec := models.AccountRecord{
		EleBill:       &models.BillInfo{SumMoney: models.NewFlex("88.40")},
		ArrearsOfFees: models.NewFlex("true"),
		MonthElecQuantity: &models.MonthQuantity{
			DataInfo: models.MonthDataInfo{
				TotalEleCost: models.NewFlex("1024.50"),
				TotalEleNum:  models.NewFlex("2048"),
			},
			MothEleList: []models.MonthUsage{
				{MonthEleNum: models.NewFlex("100"), MonthEleCost: models.NewFlex("52.00")},
				{MonthEleNum: models.NewFlex("210"), MonthEleCost: models.NewFlex("109.20")},
			},
		},
	}

	got := Extract(rec, 42)
	require.Equal(t, "88.40", got.Balance)
	require.True(t, got.HasArrear)
	require.Equal(t, "109.20", got.LastBill) // last monthly entry, not first
	require.Equal(t, "210", got.LastUsage)
	require.Equal(t, "1024.50", got.YearBill)
	require.Equal(t, "2048", got.YearUsage)
	require.Zero(t, got.TotalYearPq) // no step record
	require.Equal(t, int64(42), got.LastUpdateTime)
}

func TestExtractFallsBackToStepRecord(t *testing.T) {
	// Empty monthly list: last-period figures come from the first step
	// record's totals, not the "0.00"/"0" defaults.
	rec := models.AccountRecord{
		StepElecQuantity: []models.StepRecord{
			{ElectricParticulars: &models.StepParticulars{
				TotalAmount: models.NewFlex("333.10"),
				TotalPq:     models.NewFlex("640"),
			}},
			{ElectricParticulars: &models.StepParticulars{
				TotalAmount: models.NewFlex("999.99"),
			}},
		},
	}

	got := Extract(rec, 0)
	require.Equal(t, "333.10", got.LastBill)
	require.Equal(t, "640", got.LastUsage)
}

func TestExtractStepYearPqOverridesMonthlyAggregate(t *testing.T) {
	rec := models.AccountRecord{
		MonthElecQuantity: &models.MonthQuantity{
			DataInfo: models.MonthDataInfo{TotalEleNum: models.NewFlex("1800")},
			MothEleList: []models.MonthUsage{
				{MonthEleNum: models.NewFlex("150")},
			},
		},
		StepElecQuantity: []models.StepRecord{
			{ElectricParticulars: &models.StepParticulars{
				TotalYearPq: models.NewFlex("1930.5"),
			}},
		},
	}

	got := Extract(rec, 0)

	// The step record's year-to-date usage is more current and wins.
	require.Equal(t, "1930.5", got.YearUsage)
	require.Equal(t, 1930.5, got.TotalYearPq)
}

func TestExtractStepYearPqZeroDoesNotOverride(t *testing.T) {
	rec := models.AccountRecord{
		MonthElecQuantity: &models.MonthQuantity{
			DataInfo: models.MonthDataInfo{TotalEleNum: models.NewFlex("1800")},
		},
		StepElecQuantity: []models.StepRecord{
			{ElectricParticulars: &models.StepParticulars{
				TotalYearPq: models.NewFlex("0"),
			}},
		},
	}

	got := Extract(rec, 0)
	require.Equal(t, "1800", got.YearUsage)
	require.Zero(t, got.TotalYearPq)
}

func TestExtractArrearsCoercion(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{raw: "", want: false},
		{raw: "0", want: false},
		{raw: "false", want: false},
		{raw: "true", want: true},
		{raw: "1", want: true},
	}

	for _, tc := range tests {
		rec := models.AccountRecord{ArrearsOfFees: models.NewFlex(tc.raw)}
		require.Equal(t, tc.want, Extract(rec, 0).HasArrear, "raw %q", tc.raw)
	}
}
