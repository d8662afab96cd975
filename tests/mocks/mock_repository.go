package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/sukumar807253/sindhuja-colloction/internal/domain"
)

type MockMemberRepository struct {
	mock.Mock
}

func (m *MockMemberRepository) Centers(ctx context.Context) ([]*domain.Center, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Center), args.Error(1)
}

func (m *MockMemberRepository) GetCenter(ctx context.Context, centerID int64) (*domain.Center, error) {
	args := m.Called(ctx, centerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Center), args.Error(1)
}

func (m *MockMemberRepository) MembersWithActiveLoan(ctx context.Context, centerID int64) ([]*domain.MemberLoanView, error) {
	args := m.Called(ctx, centerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.MemberLoanView), args.Error(1)
}

func (m *MockMemberRepository) ActiveLoan(ctx context.Context, memberID int64) (*domain.Loan, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockMemberRepository) GetLoan(ctx context.Context, loanID int64) (*domain.Loan, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

type MockScheduleRepository struct {
	mock.Mock
}

func (m *MockScheduleRepository) InsertRows(ctx context.Context, rows []*domain.ScheduleRow) error {
	args := m.Called(ctx, rows)
	return args.Error(0)
}

func (m *MockScheduleRepository) NextPendingRow(ctx context.Context, loanID int64) (*domain.ScheduleRow, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScheduleRow), args.Error(1)
}

func (m *MockScheduleRepository) MarkRowPaid(ctx context.Context, rowID uuid.UUID, paidAmount int64, paidAt time.Time) (bool, error) {
	args := m.Called(ctx, rowID, paidAmount, paidAt)
	return args.Bool(0), args.Error(1)
}

func (m *MockScheduleRepository) DeleteForLoan(ctx context.Context, loanID int64) (int64, error) {
	args := m.Called(ctx, loanID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockScheduleRepository) DeleteForCenter(ctx context.Context, centerID int64) (int64, error) {
	args := m.Called(ctx, centerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockScheduleRepository) PaidOn(ctx context.Context, date time.Time) ([]*domain.TallyEntry, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.TallyEntry), args.Error(1)
}

func (m *MockScheduleRepository) UnpaidOn(ctx context.Context, date time.Time) ([]*domain.UnpaidEntry, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.UnpaidEntry), args.Error(1)
}

func (m *MockScheduleRepository) SaveDenominations(ctx context.Context, batchID uuid.UUID, notes map[int64]int64) error {
	args := m.Called(ctx, batchID, notes)
	return args.Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) ByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
