package scheduler

import (
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"taskhub/internal/pkg/config"
	"taskhub/internal/repository"
)

// Scheduler runs the periodic housekeeping job.
type Scheduler struct {
	cron   *cron.Cron
	logger *zap.Logger
	repos  *repository.Repositories
}

func NewScheduler(db *gorm.DB, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		// seconds-resolution expressions
		cron:   cron.New(cron.WithSeconds()),
		logger: logger,
		repos:  repository.NewRepositories(db),
	}
}

// Start registers the housekeeping job and starts the cron loop.
func (s *Scheduler) Start(cfg *config.SchedulerConfig) error {
	log := s.logger.Sugar()

	cronExpr := cfg.Cron
	if cronExpr == "" {
		cronExpr = "0 */5 * * * *"
		log.Warnw("scheduler.cron not set, using default", "cron", cronExpr)
	}

	entryID, err := s.cron.AddFunc(cronExpr, s.logUsage)
	if err != nil {
		log.Errorf("register housekeeping job %q: %v", cronExpr, err)
		return err
	}
	log.Infof("housekeeping job registered: %s entry_id=%d", cronExpr, entryID)

	s.cron.Start()
	return nil
}

// Stop halts the cron loop and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// logUsage samples entity counts for operational visibility.
func (s *Scheduler) logUsage() {
	users, err := s.repos.User.Count()
	if err != nil {
		s.logger.Error("usage sample failed", zap.Error(err))
		return
	}
	projects, err := s.repos.Project.Count()
	if err != nil {
		s.logger.Error("usage sample failed", zap.Error(err))
		return
	}
	tasks, err := s.repos.Task.Count()
	if err != nil {
		s.logger.Error("usage sample failed", zap.Error(err))
		return
	}

	s.logger.Info("usage sample",
		zap.Int64("users", users),
		zap.Int64("projects", projects),
		zap.Int64("tasks", tasks),
	)
}
