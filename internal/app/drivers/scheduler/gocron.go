package scheduler

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

func NewScheduler(timezone string) *gocron.Scheduler {
	location, err := time.LoadLocation(timezone)
	if err != nil {
		log.Printf("Unknown timezone %q, scheduler falls back to UTC", timezone)
		location = time.UTC
	}

	s := gocron.NewScheduler(location)
	s.SingletonModeAll()
	return s
}
