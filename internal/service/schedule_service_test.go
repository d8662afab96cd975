package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/sukumar807253/sindhuja-colloction/internal/config"
	"github.com/sukumar807253/sindhuja-colloction/internal/domain"
	customError "github.com/sukumar807253/sindhuja-colloction/pkg/errors"
	"github.com/sukumar807253/sindhuja-colloction/tests/mocks"
)

func testConfig() *config.Config {
	return &config.Config{
		Business: config.BusinessConfig{
			CollectionWeeks: 12,
			WeeksPerTier:    4,
			TierAmounts:     "1100,1080,1070",
			TallyCacheTTL:   "5m",
		},
	}
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestGenerate_TwelveWeekSchedule(t *testing.T) {
	mockMemberRepo := &mocks.MockMemberRepository{}
	mockScheduleRepo := &mocks.MockScheduleRepository{}

	service := NewScheduleService(mockMemberRepo, mockScheduleRepo, testLogger(), testConfig())

	mockMemberRepo.On("GetLoan", mock.Anything, int64(1)).Return(&domain.Loan{ID: 1}, nil)

	rows, err := service.Generate(context.Background(), 1, date("2024-01-01"))

	assert.NoError(t, err)
	assert.Len(t, rows, 12)

	var total int64
	for i, row := range rows {
		assert.Equal(t, i+1, row.WeekNo)
		assert.Equal(t, domain.ScheduleStatusPending, row.Status)
		assert.Equal(t, int64(0), row.PaidAmount)
		if i > 0 {
			assert.Equal(t, rows[i-1].CollectionDate.AddDate(0, 0, 7), row.CollectionDate)
		}
		total += row.ExpectedAmount
	}

	// Four weeks per tier: 1100, 1080, 1070
	assert.Equal(t, int64(1100), rows[0].ExpectedAmount)
	assert.Equal(t, int64(1100), rows[3].ExpectedAmount)
	assert.Equal(t, int64(1080), rows[4].ExpectedAmount)
	assert.Equal(t, int64(1070), rows[8].ExpectedAmount)
	assert.Equal(t, int64(1070), rows[11].ExpectedAmount)
	assert.Equal(t, int64(4*1100+4*1080+4*1070), total)

	// Pinned calendar scenario
	assert.Equal(t, date("2024-01-01"), rows[0].CollectionDate)
	assert.Equal(t, date("2024-01-29"), rows[4].CollectionDate)
	assert.Equal(t, date("2024-03-18"), rows[11].CollectionDate)

	mockMemberRepo.AssertExpectations(t)
}

func TestGenerate_IdempotentPerParameters(t *testing.T) {
	mockMemberRepo := &mocks.MockMemberRepository{}
	mockScheduleRepo := &mocks.MockScheduleRepository{}

	service := NewScheduleService(mockMemberRepo, mockScheduleRepo, testLogger(), testConfig())

	mockMemberRepo.On("GetLoan", mock.Anything, int64(7)).Return(&domain.Loan{ID: 7}, nil)

	first, err := service.Generate(context.Background(), 7, date("2024-06-03"))
	assert.NoError(t, err)
	second, err := service.Generate(context.Background(), 7, date("2024-06-03"))
	assert.NoError(t, err)

	assert.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].WeekNo, second[i].WeekNo)
		assert.Equal(t, first[i].CollectionDate, second[i].CollectionDate)
		assert.Equal(t, first[i].ExpectedAmount, second[i].ExpectedAmount)
	}
}

func TestGenerate_MissingStartDate(t *testing.T) {
	mockMemberRepo := &mocks.MockMemberRepository{}
	mockScheduleRepo := &mocks.MockScheduleRepository{}

	service := NewScheduleService(mockMemberRepo, mockScheduleRepo, testLogger(), testConfig())

	rows, err := service.Generate(context.Background(), 1, time.Time{})

	assert.Error(t, err)
	assert.Nil(t, rows)
	assert.Equal(t, customError.ErrCodeValidation, customError.CodeOf(err))
	mockMemberRepo.AssertNotCalled(t, "GetLoan", mock.Anything, mock.Anything)
}

func TestGenerate_UnknownLoan(t *testing.T) {
	mockMemberRepo := &mocks.MockMemberRepository{}
	mockScheduleRepo := &mocks.MockScheduleRepository{}

	service := NewScheduleService(mockMemberRepo, mockScheduleRepo, testLogger(), testConfig())

	mockMemberRepo.On("GetLoan", mock.Anything, int64(99)).Return(nil, sql.ErrNoRows)

	rows, err := service.Generate(context.Background(), 99, date("2024-01-01"))

	assert.Error(t, err)
	assert.Nil(t, rows)
	assert.Equal(t, customError.ErrCodeValidation, customError.CodeOf(err))
	assert.True(t, errors.Is(err, customError.ErrLoanNotFound))
}

func TestRegisterCenter_ClearsBeforeInsert(t *testing.T) {
	mockMemberRepo := &mocks.MockMemberRepository{}
	mockScheduleRepo := &mocks.MockScheduleRepository{}

	service := NewScheduleService(mockMemberRepo, mockScheduleRepo, testLogger(), testConfig())

	members := []*domain.MemberLoanView{
		{MemberID: 1, LoanID: 10, Name: "Lakshmi", Status: domain.LoanStatusCredited},
		{MemberID: 2, LoanID: 20, Name: "Priya", Status: domain.LoanStatusCredited},
	}

	mockMemberRepo.On("GetCenter", mock.Anything, int64(5)).Return(&domain.Center{ID: 5, Name: "Center A"}, nil)
	mockMemberRepo.On("MembersWithActiveLoan", mock.Anything, int64(5)).Return(members, nil)
	mockMemberRepo.On("GetLoan", mock.Anything, int64(10)).Return(&domain.Loan{ID: 10}, nil)
	mockMemberRepo.On("GetLoan", mock.Anything, int64(20)).Return(&domain.Loan{ID: 20}, nil)
	mockScheduleRepo.On("DeleteForLoan", mock.Anything, int64(10)).Return(int64(12), nil)
	mockScheduleRepo.On("DeleteForLoan", mock.Anything, int64(20)).Return(int64(0), nil)
	mockScheduleRepo.On("InsertRows", mock.Anything, mock.MatchedBy(func(rows []*domain.ScheduleRow) bool {
		return len(rows) == 12
	})).Return(nil).Twice()

	result, err := service.RegisterCenter(context.Background(), 5, date("2024-01-01"))

	assert.NoError(t, err)
	assert.Equal(t, 2, result.LoansCovered)
	assert.Equal(t, 24, result.RowsInserted)

	mockMemberRepo.AssertExpectations(t)
	mockScheduleRepo.AssertExpectations(t)
}

func TestRegisterCenter_CenterNotFound(t *testing.T) {
	mockMemberRepo := &mocks.MockMemberRepository{}
	mockScheduleRepo := &mocks.MockScheduleRepository{}

	service := NewScheduleService(mockMemberRepo, mockScheduleRepo, testLogger(), testConfig())

	mockMemberRepo.On("GetCenter", mock.Anything, int64(404)).Return(nil, sql.ErrNoRows)

	result, err := service.RegisterCenter(context.Background(), 404, date("2024-01-01"))

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, customError.ErrCodeNotFound, customError.CodeOf(err))
}

func TestRegisterCenter_InsertFailureAborts(t *testing.T) {
	mockMemberRepo := &mocks.MockMemberRepository{}
	mockScheduleRepo := &mocks.MockScheduleRepository{}

	service := NewScheduleService(mockMemberRepo, mockScheduleRepo, testLogger(), testConfig())

	members := []*domain.MemberLoanView{
		{MemberID: 1, LoanID: 10, Name: "Lakshmi", Status: domain.LoanStatusCredited},
	}

	mockMemberRepo.On("GetCenter", mock.Anything, int64(5)).Return(&domain.Center{ID: 5}, nil)
	mockMemberRepo.On("MembersWithActiveLoan", mock.Anything, int64(5)).Return(members, nil)
	mockMemberRepo.On("GetLoan", mock.Anything, int64(10)).Return(&domain.Loan{ID: 10}, nil)
	mockScheduleRepo.On("DeleteForLoan", mock.Anything, int64(10)).Return(int64(0), nil)
	mockScheduleRepo.On("InsertRows", mock.Anything, mock.Anything).Return(errors.New("duplicate week_no"))

	result, err := service.RegisterCenter(context.Background(), 5, date("2024-01-01"))

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, customError.ErrCodeDatabaseError, customError.CodeOf(err))
}

func TestClearCenter(t *testing.T) {
	mockMemberRepo := &mocks.MockMemberRepository{}
	mockScheduleRepo := &mocks.MockScheduleRepository{}

	service := NewScheduleService(mockMemberRepo, mockScheduleRepo, testLogger(), testConfig())

	mockMemberRepo.On("GetCenter", mock.Anything, int64(5)).Return(&domain.Center{ID: 5}, nil)
	mockScheduleRepo.On("DeleteForCenter", mock.Anything, int64(5)).Return(int64(24), nil)

	result, err := service.ClearCenter(context.Background(), 5)

	assert.NoError(t, err)
	assert.Equal(t, int64(24), result.RowsDeleted)

	mockScheduleRepo.AssertExpectations(t)
}

func TestNextWeekAmounts(t *testing.T) {
	mockMemberRepo := &mocks.MockMemberRepository{}
	mockScheduleRepo := &mocks.MockScheduleRepository{}

	service := NewScheduleService(mockMemberRepo, mockScheduleRepo, testLogger(), testConfig())

	members := []*domain.MemberLoanView{
		{MemberID: 1, LoanID: 10, Name: "Lakshmi"},
		{MemberID: 2, LoanID: 20, Name: "Priya"},
	}

	mockMemberRepo.On("MembersWithActiveLoan", mock.Anything, int64(5)).Return(members, nil)
	mockScheduleRepo.On("NextPendingRow", mock.Anything, int64(10)).Return(&domain.ScheduleRow{
		LoanID: 10, WeekNo: 3, ExpectedAmount: 1100, Status: domain.ScheduleStatusPending,
	}, nil)
	// Fully collected schedule: no pending row left
	mockScheduleRepo.On("NextPendingRow", mock.Anything, int64(20)).Return(nil, nil)

	views, err := service.NextWeekAmounts(context.Background(), 5)

	assert.NoError(t, err)
	assert.Len(t, views, 2)
	assert.Equal(t, int64(1100), views[0].WeeklyAmount)
	assert.Equal(t, 3, views[0].WeekNo)
	assert.Equal(t, int64(0), views[1].WeeklyAmount)
	assert.Equal(t, 0, views[1].WeekNo)

	mockScheduleRepo.AssertExpectations(t)
}
