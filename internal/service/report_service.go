package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/sukumar807253/sindhuja-colloction/internal/config"
	"github.com/sukumar807253/sindhuja-colloction/internal/domain"
	"github.com/sukumar807253/sindhuja-colloction/internal/repository"
	customError "github.com/sukumar807253/sindhuja-colloction/pkg/errors"
	"github.com/sukumar807253/sindhuja-colloction/pkg/utils"
)

// ReportService derives the read-only daily tally and unpaid-member views
// from schedule rows
type ReportService struct {
	scheduleRepo repository.ScheduleRepository
	redis        *redis.Client
	log          *logrus.Logger
	config       *config.Config
}

func NewReportService(
	scheduleRepo repository.ScheduleRepository,
	redis *redis.Client,
	log *logrus.Logger,
	config *config.Config,
) *ReportService {
	return &ReportService{
		scheduleRepo: scheduleRepo,
		redis:        redis,
		log:          log,
		config:       config,
	}
}

func tallyCacheKey(date time.Time) string {
	return "tally:" + utils.FormatDate(date)
}

// DailyTally lists every collection recorded on the given date with its
// center and member names, plus the running total. The date matches when
// the cash was collected (paid_at), not the week it was scheduled for.
// Results are cached in redis for a short TTL when a client is configured.
func (s *ReportService) DailyTally(ctx context.Context, date time.Time) (*domain.DailyTally, error) {
	key := tallyCacheKey(date)

	if s.redis != nil {
		cached, err := s.redis.Get(ctx, key).Result()
		if err == nil {
			var tally domain.DailyTally
			if err := json.Unmarshal([]byte(cached), &tally); err == nil {
				return &tally, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.log.WithError(err).Warn("tally cache read failed")
		}
	}

	entries, err := s.scheduleRepo.PaidOn(ctx, date)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	tally := &domain.DailyTally{
		Date:    utils.FormatDate(date),
		Entries: make([]domain.TallyEntry, 0, len(entries)),
	}
	for _, e := range entries {
		tally.Entries = append(tally.Entries, *e)
		tally.Total += e.Amount
	}

	if s.redis != nil {
		if payload, err := json.Marshal(tally); err == nil {
			if err := s.redis.Set(ctx, key, payload, s.config.GetTallyCacheTTL()).Err(); err != nil {
				s.log.WithError(err).Warn("tally cache write failed")
			}
		}
	}

	return tally, nil
}

// UnpaidMembers lists schedule rows due on the date that are not fully
// settled, covering both untouched and partially paid weeks
func (s *ReportService) UnpaidMembers(ctx context.Context, date time.Time) ([]*domain.UnpaidEntry, error) {
	entries, err := s.scheduleRepo.UnpaidOn(ctx, date)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return entries, nil
}
