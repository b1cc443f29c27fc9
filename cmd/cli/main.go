package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tesoreria-cli",
		Short: "Tesoreria CLI tool",
		Long:  `A command line interface for interacting with the Tesoreria API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Tesoreria API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	// Client commands
	clientCmd := &cobra.Command{
		Use:   "client",
		Short: "Client operations",
	}

	balanceCmd := &cobra.Command{
		Use:   "balance [client-id]",
		Short: "Show a client's current account balance",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			showBalance(args[0])
		},
	}

	clientCmd.AddCommand(balanceCmd)
	rootCmd.AddCommand(clientCmd)

	// Ledger commands
	ledgerCmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}

	verifyCmd := &cobra.Command{
		Use:   "verify [client-id]",
		Short: "Verify a client's cached balance against its ledger sums",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			verifyLedger(args[0])
		},
	}

	ledgerCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(ledgerCmd)

	// Certificate commands
	certificatesCmd := &cobra.Command{
		Use:   "certificates",
		Short: "Certificate operations",
	}

	var expiringDays int
	expiringCmd := &cobra.Command{
		Use:   "expiring",
		Short: "List certificates expiring within the alert window",
		Run: func(cmd *cobra.Command, args []string) {
			listExpiring(expiringDays)
		},
	}
	expiringCmd.Flags().IntVar(&expiringDays, "days", 2, "Alert window in days")

	certificatesCmd.AddCommand(expiringCmd)
	rootCmd.AddCommand(certificatesCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

type balanceResponse struct {
	SaldoActual         decimal.Decimal `json:"saldo_actual"`
	TotalDebe           decimal.Decimal `json:"total_debe"`
	TotalHaber          decimal.Decimal `json:"total_haber"`
	CantidadMovimientos int64           `json:"cantidad_movimientos"`
}

func fetchJSON(path string, out any) error {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func showBalance(clientID string) {
	var balance balanceResponse
	if err := fetchJSON("/api/v1/clients/"+clientID+"/balance", &balance); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	printJSON(balance)
}

func verifyLedger(clientID string) {
	var balance balanceResponse
	if err := fetchJSON("/api/v1/clients/"+clientID+"/balance", &balance); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	expected := balance.TotalDebe.Sub(balance.TotalHaber)
	if !balance.SaldoActual.Equal(expected) {
		fmt.Printf("Ledger check FAILED\nCached saldo: %s\nDebe - Haber: %s\n",
			balance.SaldoActual.StringFixed(2), expected.StringFixed(2))
		os.Exit(1)
	}

	fmt.Printf("Ledger check PASSED\nSaldo: %s (%d movements)\n",
		balance.SaldoActual.StringFixed(2), balance.CantidadMovimientos)
}

func listExpiring(days int) {
	var expiring []json.RawMessage
	if err := fetchJSON(fmt.Sprintf("/api/v1/certificates/expiring?days=%d", days), &expiring); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	fmt.Printf("%d certificate(s) expiring within %d day(s)\n", len(expiring), days)
	for _, cert := range expiring {
		printJSON(cert)
	}
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("failed to encode output: %v\n", err)
		return
	}
	fmt.Println(string(out))
}
