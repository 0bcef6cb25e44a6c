package main

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"sgccwidget/internal/summary"
	"sgccwidget/internal/upstream"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the display summary for the selected account",
	Args:  cobra.NoArgs,
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
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
	sum := summary.Extract(account.AccountRecord, account.LastUpdateTime)

	fmt.Printf("Account #%d\n", st.AccountIndex)
	fmt.Printf("  Balance:      %s\n", sum.Balance)
	if sum.HasArrear {
		fmt.Println("  Arrears:      yes")
	}
	fmt.Printf("  Last period:  %s kWh, %s\n", sum.LastUsage, sum.LastBill)
	fmt.Printf("  Year to date: %s kWh, %s\n", sum.YearUsage, sum.YearBill)
	fmt.Printf("  Updated:      %s\n", humanize.Time(time.UnixMilli(sum.LastUpdateTime)))
	return nil
}
