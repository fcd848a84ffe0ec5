package services

import (
	"context"
	"log"

	"equiptrack/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// CronService runs scheduled maintenance jobs: nightly purge of expired
// refresh tokens and a morning digest of the pending request queue.
type CronService struct {
	refreshTokenRepo repositories.RefreshTokenRepository
	requestRepo      repositories.RequestRepository
	cron             *cron.Cron
}

// NewCronService creates a new cron service
func NewCronService(
	refreshTokenRepo repositories.RefreshTokenRepository,
	requestRepo repositories.RequestRepository,
) *CronService {
	return &CronService{
		refreshTokenRepo: refreshTokenRepo,
		requestRepo:      requestRepo,
		cron:             cron.New(),
	}
}

// Start registers and launches the scheduled jobs
func (s *CronService) Start() {
	// 02:00 — delete refresh tokens past their expiry
	s.cron.AddFunc("0 2 * * *", s.purgeExpiredTokens)

	// 08:30 — log how many requests are waiting for review
	s.cron.AddFunc("30 8 * * *", s.pendingDigest)

	s.cron.Start()
	log.Println("🚀 Cron service started")
}

// Stop stops the scheduler, waiting for running jobs
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 Cron service stopped")
}

func (s *CronService) purgeExpiredTokens() {
	if err := s.refreshTokenRepo.DeleteExpired(context.Background()); err != nil {
		log.Printf("⚠️ Failed to purge expired refresh tokens: %v", err)
		return
	}
	log.Println("✅ Expired refresh tokens purged")
}

func (s *CronService) pendingDigest() {
	count, err := s.requestRepo.CountPending(context.Background())
	if err != nil {
		log.Printf("⚠️ Failed to count pending requests: %v", err)
		return
	}
	log.Printf("📋 Pending requests awaiting review: %d", count)
}
