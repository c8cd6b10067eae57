package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Phongsakorn0/Weather-data-processor/internal/adapters/forwarder"
	"github.com/Phongsakorn0/Weather-data-processor/pkg/weatherfwd"
)

func init() {
	remoteCmd.Flags().String("url", "", "collection endpoint (defaults to forward.url)")
	remoteCmd.Flags().Duration("timeout", 10*time.Second, "request timeout")
	rootCmd.AddCommand(remoteCmd)
}

var remoteCmd = &cobra.Command{
	Use:   "remote",
	Short: "Fetch and print what the collection endpoint currently holds",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		url, _ := cmd.Flags().GetString("url")
		timeout, _ := cmd.Flags().GetDuration("timeout")
		if url == "" {
			cfg, err := weatherfwd.LoadConfig(configPath(cmd))
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			url = cfg.Forward.URL
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		body, err := forwarder.NewHTTPForwarder(url, timeout).Fetch(ctx)
		if err != nil {
			return err
		}

		var out bytes.Buffer
		if err := json.Indent(&out, body, "", "  "); err != nil {
			// not JSON; print as-is
			fmt.Println(string(body))
			return nil
		}
		fmt.Println(out.String())
		return nil
	},
}
