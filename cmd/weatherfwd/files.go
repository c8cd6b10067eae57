package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Phongsakorn0/Weather-data-processor/internal/adapters/fsscan"
	"github.com/Phongsakorn0/Weather-data-processor/pkg/weatherfwd"
)

func init() {
	rootCmd.AddCommand(lsCmd, latestCmd)
}

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List candidate files in the watched directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		scn, err := scannerFor(cmd)
		if err != nil {
			return err
		}
		files, err := scn.List(cmd.Context())
		if err != nil {
			return err
		}
		latest, ok, err := scn.SelectLatest(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tMODIFIED\tSIZE\t")
		for _, f := range files {
			mark := ""
			if ok && f.Name == latest.Name {
				mark = "<- latest"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", f.Name, humanize.Time(f.ModTime), humanize.Bytes(uint64(f.Size)), mark)
		}
		return w.Flush()
	},
}

var latestCmd = &cobra.Command{
	Use:   "latest",
	Short: "Print the path of the file the next cycle would read",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		scn, err := scannerFor(cmd)
		if err != nil {
			return err
		}
		f, ok, err := scn.SelectLatest(cmd.Context())
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no eligible file in %s", scn.Dir())
		}
		fmt.Println(f.Path)
		return nil
	},
}

func scannerFor(cmd *cobra.Command) (*fsscan.Scanner, error) {
	cfg, err := weatherfwd.LoadConfig(configPath(cmd))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return fsscan.NewScanner(cfg.Watch.Dir, cfg.Watch.FilePrefix), nil
}
