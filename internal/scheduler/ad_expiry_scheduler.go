package scheduler

import (
	"github.com/historin/historin-backend/internal/app/service"
	"github.com/historin/historin-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// AdExpiryScheduler flips ads past their end_at to inactive so the public
// selector never has to trust a stale active flag alone.
type AdExpiryScheduler struct {
	cron      *cron.Cron
	adService service.AdService
}

func NewAdExpiryScheduler(adService service.AdService) *AdExpiryScheduler {
	return &AdExpiryScheduler{
		cron:      cron.New(),
		adService: adService,
	}
}

// Start registers the hourly sweep and launches the cron loop.
func (s *AdExpiryScheduler) Start() error {
	_, err := s.cron.AddFunc("0 * * * *", func() {
		logger.Info("Starting scheduled ad expiry sweep", nil)

		deactivated, err := s.adService.DeactivateExpired()
		if err != nil {
			logger.Error("Failed to deactivate expired ads", err)
			return
		}

		logger.Info("Ad expiry sweep finished", map[string]interface{}{
			"deactivated": deactivated,
		})
	})

	if err != nil {
		logger.Error("Failed to add cron job for ad expiry", err)
		return err
	}

	s.cron.Start()
	logger.Info("Ad expiry scheduler started (hourly)", nil)

	return nil
}

func (s *AdExpiryScheduler) Stop() {
	logger.Info("Stopping ad expiry scheduler...", nil)
	s.cron.Stop()
	logger.Info("Ad expiry scheduler stopped", nil)
}
