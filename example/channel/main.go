package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Phongsakorn0/Weather-data-processor"
)

func main() {
	flow, err := weatherfwd.Conf("../../data/config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fwd, records, closeRecords := weatherfwd.NewChannelForwarder("fanout", 32)
	defer closeRecords()

	go fanoutWorker("readings", records)

	if err := flow.Run(ctx, weatherfwd.StreamOutForwarder(fwd)); err != nil && err != context.Canceled {
		log.Fatalf("runtime error: %v", err)
	}
}

func fanoutWorker(name string, records <-chan weatherfwd.Record) {
	for r := range records {
		fmt.Printf("[%s] %s received reading captured at %s\n", name, time.Now().Format(time.RFC3339), r.Timestamp)
	}
}
