package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"sgccwidget/internal/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Inspect or change the stored widget settings",
}

var settingsGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the effective settings (stored values merged over defaults)",
	Args:  cobra.NoArgs,
	RunE:  runSettingsGet,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set key=value [key=value...]",
	Short: "Change one or more settings",
	Long: `Changes settings by key. Available keys:

  accountIndex      account of the multi-account payload (0-based)
  barCount          chart bar count
  dimension         daily or monthly
  oneLevelPq        first tariff tier threshold (kWh/year)
  twoLevelPq        second tariff tier threshold (kWh/year)
  refreshInterval   widget refresh interval in minutes
  largeWidgetRange  7days, 30days or 12months`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsGet(cmd *cobra.Command, args []string) error {
	kv, err := openStore()
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer kv.Close()

	st := loadSettings(kv)
	fmt.Printf("accountIndex:     %d\n", st.AccountIndex)
	fmt.Printf("barCount:         %d\n", st.BarCount)
	fmt.Printf("dimension:        %s\n", st.Dimension)
	fmt.Printf("oneLevelPq:       %g\n", st.OneLevelPq)
	fmt.Printf("twoLevelPq:       %g\n", st.TwoLevelPq)
	fmt.Printf("refreshInterval:  %d\n", st.RefreshInterval)
	fmt.Printf("largeWidgetRange: %s\n", st.LargeWidgetRange)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	kv, err := openStore()
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer kv.Close()

	sstore := settings.New(kv, nil)
	st := sstore.Get()

	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("expected key=value, got %q", arg)
		}
		if err := applySetting(&st, key, value); err != nil {
			return err
		}
	}

	sstore.Save(st)
	fmt.Println("✓ Settings saved")
	return runSettingsGet(cmd, args)
}

func applySetting(st *settings.Settings, key, value string) error {
	switch key {
	case "accountIndex":
		v, err := strconv.Atoi(value)
		if err != nil || v < 0 {
			return fmt.Errorf("accountIndex must be a non-negative integer, got %q", value)
		}
		st.AccountIndex = v
	case "barCount":
		v, err := strconv.Atoi(value)
		if err != nil || v <= 0 {
			return fmt.Errorf("barCount must be a positive integer, got %q", value)
		}
		st.BarCount = v
	case "dimension":
		if value != settings.DimensionDaily && value != settings.DimensionMonthly {
			return fmt.Errorf("dimension must be daily or monthly, got %q", value)
		}
		st.Dimension = value
	case "oneLevelPq":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil || v <= 0 {
			return fmt.Errorf("oneLevelPq must be a positive number, got %q", value)
		}
		st.OneLevelPq = v
	case "twoLevelPq":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil || v <= 0 {
			return fmt.Errorf("twoLevelPq must be a positive number, got %q", value)
		}
		st.TwoLevelPq = v
	case "refreshInterval":
		v, err := strconv.Atoi(value)
		if err != nil || v <= 0 {
			return fmt.Errorf("refreshInterval must be a positive integer (minutes), got %q", value)
		}
		st.RefreshInterval = v
	case "largeWidgetRange":
		switch value {
		case settings.Range7Days, settings.Range30Days, settings.Range12Months:
		default:
			return fmt.Errorf("largeWidgetRange must be 7days, 30days or 12months, got %q", value)
		}
		st.LargeWidgetRange = value
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	return nil
}
