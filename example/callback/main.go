package main

import (
	"context"
	"fmt"
	"log"

	"github.com/Phongsakorn0/Weather-data-processor/pkg/weatherfwd"
)

func main() {
	flow, err := weatherfwd.Conf("../../data/config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	callback := func(_ context.Context, r weatherfwd.Record) error {
		fmt.Printf("%s pressure=%.1f temp=%.1f rh=%.1f pm25=%.1f\n",
			r.Timestamp,
			r.Pressure,
			r.Temperature,
			r.RelativeHumidity,
			r.PM25,
		)
		return nil
	}

	if err := flow.Run(ctx, weatherfwd.StreamOutCallback("stdout", callback)); err != nil && err != context.Canceled {
		log.Fatalf("runtime error: %v", err)
	}
}
