package service

import (
	"log/slog"
	"time"
)

// HousekeepingService periodically sweeps expired device enrollment
// challenges so abandoned enrollments don't linger in memory.
type HousekeepingService struct {
	Authenticator *AuthenticatorService
	Logger        *slog.Logger
	Interval      time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a housekeeping worker. An interval of zero
// or less defaults to 10 minutes.
func NewHousekeepingService(authenticator *AuthenticatorService, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}

	return &HousekeepingService{
		Authenticator: authenticator,
		Logger:        logger,
		Interval:      interval,
		stopCh:        make(chan struct{}),
		doneCh:        make(chan struct{}),
	}
}

// Start begins the background sweep loop. Non-blocking; call Stop to shut
// it down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping started", "interval", s.Interval)
}

// Stop shuts down the worker and blocks until any in-progress sweep ends.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			if n := s.Authenticator.SweepExpired(time.Now()); n > 0 {
				s.Logger.Debug("swept expired enrollments", "count", n)
			}
		}
	}
}
