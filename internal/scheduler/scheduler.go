package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/hackhub-dev/hackhub/db"
	"github.com/hackhub-dev/hackhub/internal/models"
	"github.com/hackhub-dev/hackhub/internal/services"
)

// checkInterval is how often each event job re-evaluates its dates. Event
// transitions are minute-granular, nothing finer is needed.
const checkInterval = time.Minute

type Scheduler struct {
	events map[uint]*EventJob // event ID -> job
	mu     sync.RWMutex
	ctx    context.Context
	cancel context.CancelFunc
}

type EventJob struct {
	event  models.Event
	ticker *time.Ticker
	cancel context.CancelFunc
}

// NewScheduler initializes a new Scheduler instance
func NewScheduler() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		events: make(map[uint]*EventJob),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start loads all events that still have transitions ahead of them and
// begins scheduling.
func (s *Scheduler) Start() error {
	log.Println("Starting event scheduler...")

	var eventsList []models.Event
	if err := db.DB.Where("status IN ?", []string{"upcoming", "active"}).Find(&eventsList).Error; err != nil {
		return err
	}

	for _, event := range eventsList {
		s.AddEvent(event)
	}

	log.Printf("Event scheduler started with %d events", len(eventsList))
	return nil
}

// Stop gracefully shuts down all event jobs
func (s *Scheduler) Stop() {
	log.Println("Stopping event scheduler...")
	s.cancel()

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, job := range s.events {
		job.ticker.Stop()
		job.cancel()
	}

	s.events = make(map[uint]*EventJob)
	log.Println("Event scheduler stopped")
}

// AddEvent starts lifecycle tracking for an event. Completed events have no
// transitions left and are ignored.
func (s *Scheduler) AddEvent(event models.Event) {
	if event.Status == "completed" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Stop existing job if it exists
	if existingJob, exists := s.events[event.ID]; exists {
		existingJob.ticker.Stop()
		existingJob.cancel()
	}

	jobCtx, jobCancel := context.WithCancel(s.ctx)
	ticker := time.NewTicker(checkInterval)

	job := &EventJob{
		event:  event,
		ticker: ticker,
		cancel: jobCancel,
	}

	s.events[event.ID] = job

	go func() {
		// Immediate check first, so events already past a boundary catch up
		// without waiting a full tick.
		eventCopy := event
		s.evaluateEvent(eventCopy)
		s.runEvent(jobCtx, job)
	}()

	log.Printf("Tracking event %d (%s) for lifecycle transitions", event.ID, event.Name)
}

// RemoveEvent stops lifecycle tracking for an event.
func (s *Scheduler) RemoveEvent(eventID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if job, exists := s.events[eventID]; exists {
		job.ticker.Stop()
		job.cancel()
		delete(s.events, eventID)
		log.Printf("Stopped tracking event %d", eventID)
	}
}

// UpdateEvent re-tracks an event after its dates or status changed.
func (s *Scheduler) UpdateEvent(event models.Event) {
	s.AddEvent(event) // AddEvent handles stopping existing job
}

func (s *Scheduler) runEvent(ctx context.Context, job *EventJob) {
	defer job.ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-job.ticker.C:
			s.mu.RLock()
			eventCopy := job.event
			s.mu.RUnlock()

			s.evaluateEvent(eventCopy)
		}
	}
}

// evaluateEvent reloads the event and applies any date-driven transition:
// upcoming -> active at the start date (recruiting closes), active ->
// completed at the end date. Manual finalization may have completed the
// event already; the job just drops out then.
func (s *Scheduler) evaluateEvent(stale models.Event) {
	var event models.Event

	if err := db.DB.First(&event, stale.ID).Error; err != nil {
		log.Printf("Event %d no longer loadable, dropping job: %v", stale.ID, err)
		s.RemoveEvent(stale.ID)
		return
	}

	now := time.Now()

	switch event.Status {
	case "upcoming":
		if now.After(event.StartDate) {
			s.transition(event, "active")
		}
	case "active":
		if now.After(event.EndDate) {
			s.transition(event, "completed")
		}
	case "completed":
		s.RemoveEvent(event.ID)
	}
}

func (s *Scheduler) transition(event models.Event, status string) {
	err := db.DB.Model(&event).Update("status", status).Error

	if err != nil {
		log.Printf("Failed to transition event %d to %s: %v", event.ID, status, err)
		return
	}

	log.Printf("Event %d (%s) is now %s", event.ID, event.Name, status)

	if status == "active" {
		// Team formation closes when hacking starts.
		err := db.DB.Model(&models.Team{}).
			Where("event_id = ? AND status = ?", event.ID, "recruiting").
			Update("status", "full").Error

		if err != nil {
			log.Printf("Failed to close recruiting for event %d: %v", event.ID, err)
		}
	}

	if status == "completed" {
		s.RemoveEvent(event.ID)
	}

	event.Status = status

	if err := services.SendEventStatusNotification(event, status); err != nil {
		log.Printf("Failed to send status notification for event %d: %v", event.ID, err)
	}
}

// Global scheduler instance
var globalScheduler *Scheduler

// Initialize creates and starts the global scheduler
func Initialize() error {
	globalScheduler = NewScheduler()
	return globalScheduler.Start()
}

// Shutdown stops the global scheduler
func Shutdown() {
	if globalScheduler != nil {
		globalScheduler.Stop()
	}
}

// AddEvent adds an event to the global scheduler
func AddEvent(event models.Event) {
	if globalScheduler != nil {
		globalScheduler.AddEvent(event)
	}
}

// RemoveEvent removes an event from the global scheduler
func RemoveEvent(eventID uint) {
	if globalScheduler != nil {
		globalScheduler.RemoveEvent(eventID)
	}
}

// UpdateEvent updates an event in the global scheduler
func UpdateEvent(event models.Event) {
	if globalScheduler != nil {
		globalScheduler.UpdateEvent(event)
	}
}
