package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/sukumar807253/sindhuja-colloction/internal/domain"
	"github.com/sukumar807253/sindhuja-colloction/internal/repository"
	customError "github.com/sukumar807253/sindhuja-colloction/pkg/errors"
	"github.com/sukumar807253/sindhuja-colloction/pkg/utils"
)

// CollectionService applies batch cash collections against schedules.
// Batches are validated as a whole (denomination reconciliation) and then
// applied per member, each member's outcome independent of the others.
type CollectionService struct {
	memberRepo   repository.MemberRepository
	scheduleRepo repository.ScheduleRepository
	redis        *redis.Client
	log          *logrus.Logger

	// one mutex per loan so two batches can never settle the same
	// pending row
	loanLocks sync.Map
}

func NewCollectionService(
	memberRepo repository.MemberRepository,
	scheduleRepo repository.ScheduleRepository,
	redis *redis.Client,
	log *logrus.Logger,
) *CollectionService {
	return &CollectionService{
		memberRepo:   memberRepo,
		scheduleRepo: scheduleRepo,
		redis:        redis,
		log:          log,
	}
}

// ApplyBatch reconciles and applies a collection batch.
//
// The denomination breakdown, when present, must total exactly the cash
// collected; a mismatch rejects the whole batch before any row changes.
// Each member is then settled against the earliest pending week of their
// credited loan. A member that cannot be settled is skipped with a reason
// and the rest of the batch continues. Applying the same batch again never
// re-pays a settled row; it lands on the next pending week instead.
func (s *CollectionService) ApplyBatch(ctx context.Context, batch *domain.CollectionBatch) (*domain.BatchResult, error) {
	if batch == nil || len(batch.Collection) == 0 {
		return nil, customError.WrapValidation("no collection data provided")
	}

	for _, item := range batch.Collection {
		if item.Amount < 0 {
			return nil, customError.WrapValidation(
				fmt.Sprintf("negative amount %d for member %d", item.Amount, item.MemberID))
		}
	}

	totalCollection := batch.TotalCollection()

	if batch.Denomination != nil {
		totalNotes, err := sumNotes(batch.Denomination)
		if err != nil {
			return nil, err
		}
		if totalNotes != totalCollection {
			return nil, customError.WrapDenominationMismatch(totalNotes, totalCollection)
		}
	}

	result := &domain.BatchResult{
		BatchID:      uuid.New(),
		AppliedItems: []domain.AppliedPayment{},
		Skipped:      []domain.SkippedPayment{},
	}

	for _, item := range batch.Collection {
		applied, reason := s.applyItem(ctx, item)
		if applied == nil {
			result.Skipped = append(result.Skipped, domain.SkippedPayment{
				MemberID: item.MemberID,
				Reason:   reason,
			})
			continue
		}
		result.AppliedItems = append(result.AppliedItems, *applied)
		result.Applied++
	}

	if batch.Denomination != nil {
		// Best-effort: a failed denomination record never fails the batch
		if err := s.scheduleRepo.SaveDenominations(ctx, result.BatchID, batch.Denomination); err != nil {
			s.log.WithError(err).WithField("batch_id", result.BatchID).Warn("failed to save denominations")
		}
	}

	if result.Applied > 0 {
		s.invalidateTally(ctx)
	}

	s.log.WithFields(logrus.Fields{
		"batch_id": result.BatchID,
		"applied":  result.Applied,
		"skipped":  len(result.Skipped),
		"total":    totalCollection,
	}).Info("collection batch applied")

	return result, nil
}

// applyItem settles one member's payment against the earliest pending
// week of their loan. Returns the applied payment, or nil with a skip
// reason.
func (s *CollectionService) applyItem(ctx context.Context, item domain.CollectionItem) (*domain.AppliedPayment, string) {
	loan, err := s.memberRepo.ActiveLoan(ctx, item.MemberID)
	if err != nil {
		s.log.WithError(err).WithField("member_id", item.MemberID).Warn("loan lookup failed")
		return nil, err.Error()
	}
	if loan == nil {
		return nil, domain.SkipReasonNoLoan
	}

	mu := s.lockForLoan(loan.ID)
	mu.Lock()
	defer mu.Unlock()

	row, err := s.scheduleRepo.NextPendingRow(ctx, loan.ID)
	if err != nil {
		s.log.WithError(err).WithField("loan_id", loan.ID).Warn("pending week lookup failed")
		return nil, err.Error()
	}
	if row == nil {
		return nil, domain.SkipReasonNoPendingWeek
	}

	ok, err := s.scheduleRepo.MarkRowPaid(ctx, row.ID, item.Amount, time.Now())
	if err != nil {
		s.log.WithError(err).WithField("schedule_id", row.ID).Warn("failed to update collection")
		return nil, err.Error()
	}
	if !ok {
		// Row was settled between read and write; the conditional
		// update keeps the week from being paid twice
		return nil, domain.SkipReasonNoPendingWeek
	}

	return &domain.AppliedPayment{
		MemberID:  item.MemberID,
		LoanID:    loan.ID,
		WeekNo:    row.WeekNo,
		Amount:    item.Amount,
		FullyPaid: item.Amount >= row.ExpectedAmount,
	}, ""
}

func (s *CollectionService) lockForLoan(loanID int64) *sync.Mutex {
	mu, _ := s.loanLocks.LoadOrStore(loanID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// invalidateTally drops today's cached tally after a successful batch so
// the next read reflects the new collections
func (s *CollectionService) invalidateTally(ctx context.Context) {
	if s.redis == nil {
		return
	}
	key := tallyCacheKey(utils.Today())
	if err := s.redis.Del(ctx, key).Err(); err != nil {
		s.log.WithError(err).Warn("failed to invalidate tally cache")
	}
}

// sumNotes totals a denomination breakdown as face value times count
func sumNotes(notes map[int64]int64) (int64, error) {
	var total int64
	for faceValue, count := range notes {
		if faceValue <= 0 {
			return 0, customError.WrapValidation(
				fmt.Sprintf("invalid note face value %d", faceValue))
		}
		if count < 0 {
			return 0, customError.WrapValidation(
				fmt.Sprintf("negative count for note %d", faceValue))
		}
		total += faceValue * count
	}
	return total, nil
}
