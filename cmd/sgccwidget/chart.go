package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"sgccwidget/internal/series"
	"sgccwidget/internal/upstream"
	"sgccwidget/pkg/models"
)

var chartLarge bool

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Render the usage chart series as text bars",
	Long: `Renders the chart series the widget would draw. Bars are marked by
discrete tariff tier: ░ for tier 1, ▒ for tier 2, █ for tier 3.
--large renders the large-widget range (7 days, 30 days or 12 months per
the stored settings) instead of the small chart.`,
	Args: cobra.NoArgs,
	RunE: runChart,
}

func init() {
	chartCmd.Flags().BoolVar(&chartLarge, "large", false, "Render the large-widget range")
	rootCmd.AddCommand(chartCmd)
}

const chartWidth = 40

// tier marker per bar level; unknown levels fall back to tier 1.
var levelMarkers = map[int]string{1: "░", 2: "▒", 3: "█"}

func runChart(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	kv, err := openStore()
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer kv.Close()

	st := loadSettings(kv)
	result := newFetcher(cfg, kv).Fetch(context.Background(), false)
	account := upstream.SelectAccount(result, st)

	var bars []models.BarDatum
	if chartLarge {
		bars = series.BuildLargeRangeSeries(account.AccountRecord, st)
	} else {
		bars = series.BuildChartSeries(account.AccountRecord, st)
	}

	if len(bars) == 0 {
		fmt.Println("No chart data available.")
		return nil
	}

	max := bars[0].Value
	for _, b := range bars {
		if b.Value > max {
			max = b.Value
		}
	}

	for _, b := range bars {
		width := 0
		if max > 0 {
			width = int(b.Value / max * chartWidth)
		}
		marker, ok := levelMarkers[b.Level]
		if !ok {
			marker = levelMarkers[1]
		}
		label := b.Label
		if label == "" {
			label = "-"
		}
		fmt.Printf("%12s %-*s %7.2f kWh (tier %d)\n",
			label, chartWidth, strings.Repeat(marker, width), b.Value, b.Level)
	}
	return nil
}
