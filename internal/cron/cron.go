package cron

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Sudharmabg/taskhive/internal/service"
)

// Scheduler handles scheduled tasks
type Scheduler struct {
	cron     *cron.Cron
	services *service.Services
}

// NewScheduler creates a new scheduler
func NewScheduler(services *service.Services) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		services: services,
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	// Run every day at 1 AM - Overdue story sweep
	s.cron.AddFunc("0 1 * * *", func() {
		log.Println("[Cron] Running overdue story sweep...")
		s.sweepOverdueStories()
	})

	s.cron.Start()
	log.Println("[Cron] Scheduler started")
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[Cron] Scheduler stopped")
}

func (s *Scheduler) sweepOverdueStories() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	count, err := s.services.Story.MarkOverdue(ctx)
	if err != nil {
		log.Printf("[Cron] Overdue story sweep failed: %v", err)
		return
	}
	if count > 0 {
		log.Printf("[Cron] Marked %d stories as overdue", count)
	}
}
