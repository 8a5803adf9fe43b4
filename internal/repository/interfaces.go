package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/T1mof/timetrack-reports/internal/domain"
)

type UserRepository interface {
	FindUsers(ctx context.Context, query domain.UserQuery) ([]domain.User, error)
}

type TeamRepository interface {
	ListTeams(ctx context.Context) ([]domain.Team, error)
	GetTeamByID(ctx context.Context, teamID uuid.UUID) (*domain.Team, error)
}

type ActivityRepository interface {
	FindActivitiesByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Activity, error)
}

type TimesheetRepository interface {
	// GetDailyStatisticRows суммирует записи по (user, project, activity, день) в зоне timezone.
	GetDailyStatisticRows(ctx context.Context, start, end time.Time, userIDs []uuid.UUID, timezone string) ([]domain.DailyStatisticRow, error)
}

// RepositoryInterface объединяет все интерфейсы.
type RepositoryInterface interface {
	UserRepository
	TeamRepository
	ActivityRepository
	TimesheetRepository
}
