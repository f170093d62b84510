// Package jobs runs the scheduled background tasks: daily follow-up
// reminder emails and the hourly dashboard cache warm.
package jobs

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/fidalli/crm-backend/pkg/analytics"
	"github.com/fidalli/crm-backend/pkg/dashboard"
	"github.com/fidalli/crm-backend/pkg/domain"
	"github.com/fidalli/crm-backend/pkg/email"
	"github.com/fidalli/crm-backend/pkg/store"
)

// CronManager manages scheduled jobs
type CronManager struct {
	cron      *cron.Cron
	store     *store.Store
	email     *email.Service
	dashboard *dashboard.Service
	logger    *log.Logger
}

// NewCronManager creates a new cron manager
func NewCronManager(st *store.Store, mailer *email.Service, dash *dashboard.Service, logger *log.Logger) *CronManager {
	if logger == nil {
		logger = log.Default()
	}

	return &CronManager{
		cron:      cron.New(),
		store:     st,
		email:     mailer,
		dashboard: dash,
		logger:    logger,
	}
}

// SetupJobs configures all scheduled jobs
func (cm *CronManager) SetupJobs() error {
	cm.logger.Println("Setting up cron jobs...")

	// Daily at 8 AM: email admins about overdue follow-ups
	_, err := cm.cron.AddFunc("0 8 * * *", func() {
		cm.logger.Println("🕐 Running daily follow-up reminder job...")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		if err := cm.RunFollowUpReminders(ctx); err != nil {
			cm.logger.Printf("❌ Follow-up reminder job failed: %v", err)
			return
		}
		cm.logger.Println("✅ Daily follow-up reminder job completed")
	})
	if err != nil {
		return err
	}

	// Hourly: rebuild the dashboard cache so the first load of the hour
	// never pays the aggregation cost
	_, err = cm.cron.AddFunc("0 * * * *", func() {
		cm.logger.Println("🕐 Warming dashboard cache...")

		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()

		if err := cm.dashboard.Refresh(ctx); err != nil {
			cm.logger.Printf("❌ Dashboard cache warm failed: %v", err)
			return
		}
		cm.logger.Println("✅ Dashboard cache warmed")
	})
	if err != nil {
		return err
	}

	cm.logger.Println("✅ Cron jobs configured successfully")
	cm.logger.Println("  - Daily at 8 AM: Overdue follow-up reminders")
	cm.logger.Println("  - Hourly: Dashboard cache warm")

	return nil
}

// RunFollowUpReminders scans for overdue follow-ups and emails every
// admin collaborator the full list. Exposed for manual triggering.
func (cm *CronManager) RunFollowUpReminders(ctx context.Context) error {
	overdue := analytics.OverdueFollowUps(cm.store.ListInteractions(), time.Now())
	if len(overdue) == 0 {
		cm.logger.Println("✅ No overdue follow-ups")
		return nil
	}

	cm.logger.Printf("Found %d overdue follow-up(s)", len(overdue))

	var lastErr error
	for _, c := range cm.store.ListCollaborators() {
		if c.Role != domain.RoleAdmin {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		name := c.FirstName + " " + c.LastName
		if err := cm.email.SendFollowUpReminder(c.Email, name, overdue); err != nil {
			cm.logger.Printf("⚠️  Failed to send reminder to %s: %v", c.Email, err)
			lastErr = err
		}
	}
	return lastErr
}

// Start starts the cron scheduler
func (cm *CronManager) Start() {
	cm.logger.Println("🚀 Starting cron scheduler...")
	cm.cron.Start()
}

// Stop stops the cron scheduler
func (cm *CronManager) Stop() {
	cm.logger.Println("🛑 Stopping cron scheduler...")
	cm.cron.Stop()
}
