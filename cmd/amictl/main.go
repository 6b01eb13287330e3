package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/kumarshrey19021990-arch/amioverreacting/internal/domain"
)

// amictl is an operator smoke-test tool for a running instance: send a
// situation through /analyze, probe the coupon gate, or print the price table.

var serverURL string

func main() {
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:   "amictl",
		Short: "Smoke-test a running amioverreacting server",
	}
	root.PersistentFlags().StringVar(&serverURL, "server", envOr("AMI_SERVER_URL", "http://localhost:8080"), "server base URL")

	root.AddCommand(analyzeCmd(), couponCmd(), priceCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func analyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze [text]",
		Short: "Send a situation description through /analyze (reads stdin when no argument)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var text string
			if len(args) == 1 {
				text = args[0]
			} else {
				data, err := io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("failed to read stdin: %w", err)
				}
				text = string(data)
			}
			if strings.TrimSpace(text) == "" {
				return fmt.Errorf("no text to analyze")
			}

			return postJSON("/analyze", map[string]string{"text": text}, 6*time.Minute)
		},
	}
}

func couponCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "coupon <code>",
		Short: "Check a coupon code against /verify-coupon",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return postJSON("/verify-coupon", map[string]string{"code": args[0]}, 10*time.Second)
		},
	}
}

func priceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "price <region>",
		Short: "Print the price quote for a region (local lookup, no server call)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			quote := domain.QuoteForRegion(args[0])
			fmt.Printf("display: %s%s  settlement: %s %s\n",
				quote.DisplaySymbol, quote.DisplayAmount,
				quote.SettlementCurrency, quote.SettlementAmount)
			return nil
		},
	}
}

func postJSON(path string, payload any, timeout time.Duration) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(strings.TrimRight(serverURL, "/")+path, "application/json", bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err != nil {
		pretty.Write(body)
	}
	fmt.Printf("%s\n%s\n", resp.Status, pretty.String())

	if resp.StatusCode >= 400 {
		return fmt.Errorf("server returned %s", resp.Status)
	}
	return nil
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
