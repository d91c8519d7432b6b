package discord

import (
	"log"
	"time"
)

func step(label string) func() {
	start := time.Now()
	return func() { log.Printf("[discord] %s = %s", label, time.Since(start).Round(time.Millisecond)) }
}
