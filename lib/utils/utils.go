package utils

import (
	"log"
	"math"
	"os"
	"os/signal"
	"syscall"
)

func WaitForShutdown(closers ...interface{ Close() error }) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	for _, closer := range closers {
		if err := closer.Close(); err != nil {
			log.Printf("Error closing: %v", err)
		}
	}
}

// Round rounds v to the given number of decimal places.
func Round(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}
