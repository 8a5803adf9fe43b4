package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/T1mof/timetrack-reports/internal/domain"
)

// ========================================
// Mock Repository
// ========================================

type MockRepository struct {
	mock.Mock
}

// UserRepository methods.
func (m *MockRepository) FindUsers(ctx context.Context, query domain.UserQuery) ([]domain.User, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

// TeamRepository methods.
func (m *MockRepository) ListTeams(ctx context.Context) ([]domain.Team, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Team), args.Error(1)
}

func (m *MockRepository) GetTeamByID(ctx context.Context, teamID uuid.UUID) (*domain.Team, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Team), args.Error(1)
}

// ActivityRepository methods.
func (m *MockRepository) FindActivitiesByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Activity, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Activity), args.Error(1)
}

// TimesheetRepository methods.
func (m *MockRepository) GetDailyStatisticRows(ctx context.Context, start, end time.Time, userIDs []uuid.UUID, timezone string) ([]domain.DailyStatisticRow, error) {
	args := m.Called(ctx, start, end, userIDs, timezone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DailyStatisticRow), args.Error(1)
}

// ========================================
// Mock StatisticsProvider
// ========================================

type MockStatisticsProvider struct {
	mock.Mock
}

func (m *MockStatisticsProvider) GetDailyStatisticsGrouped(ctx context.Context, start, end time.Time, users []domain.User) (domain.GroupedDailyStatistics, error) {
	args := m.Called(ctx, start, end, users)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.GroupedDailyStatistics), args.Error(1)
}
