package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Lameck1/mwingi-school-erp-sub010/internal/infrastructure/postgres"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "school-erp-cli",
		Short: "School ERP finance CLI tool",
		Long:  `A command line interface for operating the school finance ledger API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the ledger API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	// Migration commands
	var (
		databaseURL    string
		migrationsPath string
	)
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Run: func(cmd *cobra.Command, args []string) {
			if err := postgres.RunMigrations(databaseURL, migrationsPath); err != nil {
				fmt.Printf("Migration failed: %v\n", err)
				os.Exit(1)
			}
			fmt.Println("Migrations applied")
		},
	}
	migrateCmd.Flags().StringVar(&databaseURL, "database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection URL")
	migrateCmd.Flags().StringVar(&migrationsPath, "migrations", "migrations", "Path to migration files")
	rootCmd.AddCommand(migrateCmd)

	// Report commands
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Financial reports",
	}
	reportCmd.AddCommand(&cobra.Command{
		Use:   "trial-balance",
		Short: "Print the trial balance",
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/reports/trial-balance")
		},
	})
	reportCmd.AddCommand(&cobra.Command{
		Use:   "balance-sheet",
		Short: "Print the balance sheet",
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/reports/balance-sheet")
		},
	})
	rootCmd.AddCommand(reportCmd)

	// Backfill commands
	backfillCmd := &cobra.Command{
		Use:   "backfill",
		Short: "Legacy transaction backfill",
	}
	backfillCmd.AddCommand(&cobra.Command{
		Use:   "run",
		Short: "Backfill journal entries from the legacy log",
		Run: func(cmd *cobra.Command, args []string) {
			postJSON("/api/v1/backfill/run", nil)
		},
	})
	backfillCmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Count unprocessed legacy transactions",
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/backfill/status")
		},
	})
	rootCmd.AddCommand(backfillCmd)

	// Opening balance commands
	openingCmd := &cobra.Command{
		Use:   "opening-balances",
		Short: "Opening balance operations",
	}
	openingCmd.AddCommand(&cobra.Command{
		Use:   "verify [year-id]",
		Short: "Verify a year's imported opening balances",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			postJSON("/api/v1/opening-balances/verify/"+args[0], nil)
		},
	})
	rootCmd.AddCommand(openingCmd)

	// Reconciliation commands
	reconcileCmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Bank reconciliation operations",
	}
	reconcileCmd.AddCommand(&cobra.Command{
		Use:   "run [statement-id]",
		Short: "Reconcile a bank statement",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			postJSON("/api/v1/reconciliation/statements/"+args[0]+"/run", nil)
		},
	})
	rootCmd.AddCommand(reconcileCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func getJSON(path string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func postJSON(path string, body io.Reader) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+path, "application/json", body)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func printResponse(resp *http.Response) {
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var pretty any
	if err := json.Unmarshal(body, &pretty); err != nil {
		fmt.Println(string(body))
		return
	}

	out, _ := json.MarshalIndent(pretty, "", "  ")
	fmt.Println(string(out))
}
