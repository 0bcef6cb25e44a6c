package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"sgccwidget/internal/summary"
)

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "List the accounts in the fetched payload",
	Args:  cobra.NoArgs,
	RunE:  runAccounts,
}

func init() {
	rootCmd.AddCommand(accountsCmd)
}

func runAccounts(cmd *cobra.Command, args []string) error {
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

	if len(result.Data) == 0 {
		fmt.Println("No accounts fetched yet. Run 'sgccwidget fetch' first.")
		return nil
	}

	for i, record := range result.Data {
		sum := summary.Extract(record, result.Timestamp)
		marker := " "
		if i == st.AccountIndex {
			marker = "*"
		}
		arrears := ""
		if sum.HasArrear {
			arrears = "  (in arrears)"
		}
		fmt.Printf("%s [%d] balance %s, last period %s kWh / %s%s\n",
			marker, i, sum.Balance, sum.LastUsage, sum.LastBill, arrears)
	}
	return nil
}
