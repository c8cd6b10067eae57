package main

import (
	"strings"
	"testing"
)

func TestScrapeValues(t *testing.T) {
	body := `# HELP weatherfwd_cycles_total Ingest cycles run.
# TYPE weatherfwd_cycles_total counter
weatherfwd_cycles_total 12
weatherfwd_cycles_skipped_total 4
weatherfwd_tracker_offset 1.234e+03
`
	got, err := scrapeValues(strings.NewReader(body), []string{"weatherfwd_cycles_total", "weatherfwd_tracker_offset"})
	if err != nil {
		t.Fatalf("scrape: %v", err)
	}
	if got["weatherfwd_cycles_total"] != 12 {
		t.Fatalf("expected 12 cycles, got %v", got["weatherfwd_cycles_total"])
	}
	if got["weatherfwd_tracker_offset"] != 1234 {
		t.Fatalf("expected offset 1234, got %v", got["weatherfwd_tracker_offset"])
	}
	if _, ok := got["weatherfwd_cycles_skipped_total"]; ok {
		t.Fatalf("unrequested metric should not be returned")
	}
}
