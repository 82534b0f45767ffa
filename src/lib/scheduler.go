package lib

import (
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
)

var (
	scheduler      gocron.Scheduler
	startSchedOnce sync.Once
)

func NewScheduler(s gocron.Scheduler) {
	scheduler = s
}

func GetScheduler() (gocron.Scheduler, error) {
	if scheduler != nil {
		return scheduler, nil
	}
	sched, err := gocron.NewScheduler()
	if err != nil {
		log.Printf("Error initializing Scheduler: %s\n", err.Error())
		return nil, err
	}
	scheduler = sched
	return sched, nil
}

// StartScheduler starts the shared scheduler exactly once. Safe to call from
// every poller.
func StartScheduler() error {
	sched, err := GetScheduler()
	if err != nil {
		return err
	}
	startSchedOnce.Do(sched.Start)
	return nil
}

// CreateCronJob registers a recurring background task and returns its job id.
func CreateCronJob(handler func(), duration time.Duration) (*string, error) {
	sched, err := GetScheduler()
	if err != nil {
		log.Println("An error has occurred. Check logs for info")
		return nil, err
	}
	j, err := sched.NewJob(
		gocron.DurationJob(duration),
		gocron.NewTask(handler),
	)
	if err != nil {
		return nil, err
	}
	id := j.ID().String()
	return &id, nil
}

func RemoveJob(id string) error {
	sched, err := GetScheduler()
	if err != nil {
		return err
	}
	jobID, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	return sched.RemoveJob(jobID)
}

func StopScheduler() {
	sched, err := GetScheduler()
	if err != nil {
		log.Println("Error retrieving Scheduler. Check logs for info")
		return
	}
	if err := sched.Shutdown(); err != nil {
		log.Println("An error has occurred while stopping Scheduler. Check logs for info")
		return
	}
}
