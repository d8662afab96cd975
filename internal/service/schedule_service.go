package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/sukumar807253/sindhuja-colloction/internal/config"
	"github.com/sukumar807253/sindhuja-colloction/internal/domain"
	"github.com/sukumar807253/sindhuja-colloction/internal/repository"
	customError "github.com/sukumar807253/sindhuja-colloction/pkg/errors"
	"github.com/sukumar807253/sindhuja-colloction/pkg/utils"
)

// ScheduleService generates and administers weekly collection schedules
type ScheduleService struct {
	memberRepo   repository.MemberRepository
	scheduleRepo repository.ScheduleRepository
	log          *logrus.Logger
	config       *config.Config
}

func NewScheduleService(
	memberRepo repository.MemberRepository,
	scheduleRepo repository.ScheduleRepository,
	log *logrus.Logger,
	config *config.Config,
) *ScheduleService {
	return &ScheduleService{
		memberRepo:   memberRepo,
		scheduleRepo: scheduleRepo,
		log:          log,
		config:       config,
	}
}

// Generate produces the full pending schedule for a loan: one row per
// configured week, dates advancing 7 calendar days from startDate, amounts
// taken from the tier table. The same (loan, startDate) always yields the
// same week/date/amount set.
func (s *ScheduleService) Generate(ctx context.Context, loanID int64, startDate time.Time) ([]*domain.ScheduleRow, error) {
	if startDate.IsZero() {
		return nil, customError.WrapValidation("start date is required")
	}

	if _, err := s.memberRepo.GetLoan(ctx, loanID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapUnknownLoan(loanID)
		}
		return nil, customError.WrapDatabaseError(err)
	}

	table, err := s.config.Business.AmountTable()
	if err != nil {
		return nil, customError.WrapValidation(err.Error())
	}

	startDate = utils.DateOnly(startDate)
	now := time.Now()

	rows := make([]*domain.ScheduleRow, 0, len(table))
	for i, amount := range table {
		weekNo := i + 1
		rows = append(rows, &domain.ScheduleRow{
			ID:             uuid.New(),
			LoanID:         loanID,
			WeekNo:         weekNo,
			CollectionDate: utils.WeekDate(startDate, weekNo),
			ExpectedAmount: amount,
			PaidAmount:     0,
			Status:         domain.ScheduleStatusPending,
			CreatedAt:      now,
		})
	}

	return rows, nil
}

// RegisterCenter generates and stores a fresh schedule for every credited
// loan in the center. Existing rows of each loan are cleared first, so
// re-registering with the same start date is idempotent and never trips
// the per-week uniqueness constraint.
func (s *ScheduleService) RegisterCenter(ctx context.Context, centerID int64, startDate time.Time) (*domain.RegisterScheduleResponse, error) {
	if _, err := s.memberRepo.GetCenter(ctx, centerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapCenterNotFound(centerID)
		}
		return nil, customError.WrapDatabaseError(err)
	}

	members, err := s.memberRepo.MembersWithActiveLoan(ctx, centerID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	resp := &domain.RegisterScheduleResponse{CenterID: centerID}
	for _, m := range members {
		rows, err := s.Generate(ctx, m.LoanID, startDate)
		if err != nil {
			return nil, err
		}

		if _, err := s.scheduleRepo.DeleteForLoan(ctx, m.LoanID); err != nil {
			return nil, customError.WrapDatabaseError(err)
		}

		if err := s.scheduleRepo.InsertRows(ctx, rows); err != nil {
			return nil, customError.WrapDatabaseError(err)
		}

		resp.LoansCovered++
		resp.RowsInserted += len(rows)
	}

	s.log.WithFields(logrus.Fields{
		"center_id": centerID,
		"loans":     resp.LoansCovered,
		"rows":      resp.RowsInserted,
	}).Info("collection schedule registered")

	return resp, nil
}

// ClearCenter removes every schedule row for the center's loans and
// reports how many were deleted. This is the only path that takes rows
// out of the paid/pending lifecycle.
func (s *ScheduleService) ClearCenter(ctx context.Context, centerID int64) (*domain.ClearScheduleResponse, error) {
	if _, err := s.memberRepo.GetCenter(ctx, centerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapCenterNotFound(centerID)
		}
		return nil, customError.WrapDatabaseError(err)
	}

	deleted, err := s.scheduleRepo.DeleteForCenter(ctx, centerID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.log.WithFields(logrus.Fields{
		"center_id": centerID,
		"rows":      deleted,
	}).Info("collection schedule cleared")

	return &domain.ClearScheduleResponse{CenterID: centerID, RowsDeleted: deleted}, nil
}

// Centers lists all centers for the directory views
func (s *ScheduleService) Centers(ctx context.Context) ([]*domain.Center, error) {
	centers, err := s.memberRepo.Centers(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return centers, nil
}

// Members lists a center's members that hold a credited loan
func (s *ScheduleService) Members(ctx context.Context, centerID int64) ([]*domain.MemberLoanView, error) {
	members, err := s.memberRepo.MembersWithActiveLoan(ctx, centerID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return members, nil
}

// NextWeekAmounts returns, per member of the center, the week number and
// expected amount of the next pending schedule row. Members whose schedule
// is fully collected appear with week 0 and amount 0.
func (s *ScheduleService) NextWeekAmounts(ctx context.Context, centerID int64) ([]*domain.MemberWeekView, error) {
	members, err := s.memberRepo.MembersWithActiveLoan(ctx, centerID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	views := make([]*domain.MemberWeekView, 0, len(members))
	for _, m := range members {
		view := &domain.MemberWeekView{
			MemberID: m.MemberID,
			LoanID:   m.LoanID,
			Name:     m.Name,
		}

		row, err := s.scheduleRepo.NextPendingRow(ctx, m.LoanID)
		if err != nil {
			return nil, customError.WrapDatabaseError(err)
		}
		if row != nil {
			view.WeeklyAmount = row.ExpectedAmount
			view.WeekNo = row.WeekNo
		}

		views = append(views, view)
	}

	return views, nil
}
