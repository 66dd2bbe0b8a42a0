// Package reminder periodically tells learners how many reviews are waiting.
package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/vytor/lexiflash/internal/clock"
	"github.com/vytor/lexiflash/internal/logger"
	"github.com/vytor/lexiflash/internal/models"
	"github.com/vytor/lexiflash/internal/progress"
	"github.com/vytor/lexiflash/internal/repository"
)

const runTimeout = 30 * time.Second

// Notifier delivers a due-review reminder to a learner.
type Notifier interface {
	Remind(ctx context.Context, profile models.Profile, dueCount int) error
}

// LogNotifier writes reminders to the application log.
type LogNotifier struct{}

func (LogNotifier) Remind(ctx context.Context, profile models.Profile, dueCount int) error {
	logger.FromContext(ctx).WithFields(map[string]any{
		"profile_id": profile.ID,
		"username":   profile.Username,
	}).Info("%d reviews due, streak %d", dueCount, profile.Progress.Streak)
	return nil
}

// Scheduler runs reminder checks on a fixed interval.
type Scheduler struct {
	scheduler *gocron.Scheduler
	profiles  repository.ProfileRepository
	items     repository.VocabularyRepository
	notifier  Notifier
	clock     clock.Clock
	loc       *time.Location
	interval  time.Duration
	log       *logger.Logger
}

func New(
	profiles repository.ProfileRepository,
	items repository.VocabularyRepository,
	notifier Notifier,
	clk clock.Clock,
	loc *time.Location,
	interval time.Duration,
) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(loc),
		profiles:  profiles,
		items:     items,
		notifier:  notifier,
		clock:     clk,
		loc:       loc,
		interval:  interval,
		log:       logger.Default().WithPrefix("reminder"),
	}
}

// Start schedules the check and returns immediately. The first run happens
// one interval after Start.
func (s *Scheduler) Start() error {
	minutes := int(s.interval / time.Minute)
	if minutes <= 0 {
		return fmt.Errorf("reminder interval must be at least one minute, got %v", s.interval)
	}
	_, err := s.scheduler.Every(minutes).Minutes().WaitForSchedule().SingletonMode().Do(func() {
		ctx, cancel := context.WithTimeout(logger.NewContext(context.Background(), s.log), runTimeout)
		defer cancel()
		if _, err := s.RunOnce(ctx); err != nil {
			s.log.Error("reminder run failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule reminders: %w", err)
	}
	s.scheduler.StartAsync()
	s.log.Info("reminders scheduled every %d minutes", minutes)
	return nil
}

func (s *Scheduler) Stop() {
	s.scheduler.Stop()
	s.log.Info("reminders stopped")
}

// RunOnce checks every profile and notifies those with due items who have
// not yet met today's goal. It returns the number of reminders sent.
func (s *Scheduler) RunOnce(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)
	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list profiles: %w", err)
	}

	now := s.clock.Now()
	today := models.DayOf(now.In(s.loc))
	sent := 0
	for _, p := range profiles {
		if progress.GoalMet(p.Progress, today) {
			log.Debug("profile %d already met today's goal", p.ID)
			continue
		}
		due, err := s.items.CountDue(ctx, p.ID, now)
		if err != nil {
			log.Warn("failed to count due items for profile %d: %v", p.ID, err)
			continue
		}
		if due == 0 {
			continue
		}
		if err := s.notifier.Remind(ctx, p, due); err != nil {
			log.Warn("failed to remind profile %d: %v", p.ID, err)
			continue
		}
		sent++
	}
	log.Debug("sent %d reminders", sent)
	return sent, nil
}
