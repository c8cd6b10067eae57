package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var statsMetrics = []string{
	"weatherfwd_cycles_total",
	"weatherfwd_records_forwarded_total",
	"weatherfwd_forward_failures_total",
	"weatherfwd_rows_rejected_total",
	"weatherfwd_tracker_offset",
}

func init() {
	statsCmd.Flags().String("url", "http://localhost:9100/metrics", "Prometheus metrics endpoint")
	statsCmd.Flags().Duration("interval", 2*time.Second, "refresh interval")
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Poll the metrics endpoint and print live counters",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		url, _ := cmd.Flags().GetString("url")
		interval, _ := cmd.Flags().GetDuration("interval")

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		fmt.Printf("Streaming metrics from %s (Ctrl+C to stop)\n", url)
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				if err := printMetricsSnapshot(url); err != nil {
					fmt.Fprintf(os.Stderr, "stats error: %v\n", err)
				}
			}
		}
	},
}

func printMetricsSnapshot(url string) error {
	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	values, err := scrapeValues(resp.Body, statsMetrics)
	if err != nil {
		return err
	}
	fmt.Printf("[%s] cycles=%.0f forwarded=%.0f failed=%.0f rejected=%.0f offset=%.0f\n",
		time.Now().Format(time.RFC3339),
		values["weatherfwd_cycles_total"],
		values["weatherfwd_records_forwarded_total"],
		values["weatherfwd_forward_failures_total"],
		values["weatherfwd_rows_rejected_total"],
		values["weatherfwd_tracker_offset"],
	)
	return nil
}

// scrapeValues picks unlabelled samples for names out of Prometheus text exposition.
func scrapeValues(r io.Reader, names []string) (map[string]float64, error) {
	out := make(map[string]float64, len(names))
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "#") {
			continue
		}
		for _, key := range names {
			if strings.HasPrefix(line, key+" ") {
				var value float64
				if _, err := fmt.Sscanf(line, key+" %g", &value); err == nil {
					out[key] = value
				}
			}
		}
	}
	return out, scanner.Err()
}
