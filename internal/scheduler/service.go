package scheduler

import (
	"context"

	"github.com/mhosigiri/FeedbackAI/internal/models"
	"github.com/mhosigiri/FeedbackAI/internal/notifications"
	"github.com/mhosigiri/FeedbackAI/internal/pipeline"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Service runs the analysis pipeline on a schedule and delivers the result
// as a digest.
type Service struct {
	schedule string
	query    models.Query
	pipeline *pipeline.Service
	notifier notifications.Notifier
	cron     *cron.Cron
}

// NewService creates a new scheduler service. schedule is "daily" or
// "weekly"; anything else disables scheduling.
func NewService(schedule string, query models.Query, pipelineService *pipeline.Service, notifier notifications.Notifier) *Service {
	return &Service{
		schedule: schedule,
		query:    query,
		pipeline: pipelineService,
		notifier: notifier,
		cron:     cron.New(cron.WithSeconds()),
	}
}

// Start begins the scheduled digest runs
func (s *Service) Start() error {
	var cronExpression string

	switch s.schedule {
	case "daily":
		// Run daily at 9 AM UTC
		cronExpression = "0 0 9 * * *"
	case "weekly":
		// Run weekly on Monday at 9 AM UTC
		cronExpression = "0 0 9 * * MON"
	default:
		logrus.Info("Digest schedule not configured, scheduler idle")
		return nil
	}

	_, err := s.cron.AddFunc(cronExpression, s.runDigest)
	if err != nil {
		return err
	}

	s.cron.Start()
	logrus.Infof("Scheduler started with %s digest schedule", s.schedule)
	return nil
}

func (s *Service) runDigest() {
	logrus.Info("Starting scheduled digest run")

	result, err := s.pipeline.Analyze(context.Background(), s.query)
	if err != nil {
		logrus.Errorf("Scheduled digest run failed: %v", err)
		return
	}

	if err := s.notifier.SendDigest(result); err != nil {
		logrus.Errorf("Scheduled digest delivery failed: %v", err)
	}
}

// Stop stops the scheduler
func (s *Service) Stop() {
	if s.cron != nil {
		s.cron.Stop()
		logrus.Info("Scheduler stopped")
	}
}
