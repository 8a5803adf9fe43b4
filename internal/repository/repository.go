package repository

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/samber/lo"

	"github.com/T1mof/timetrack-reports/internal/domain"
)

// MigrationsFS встроенные миграции схемы.
//
//go:embed migrations/*.sql
var MigrationsFS embed.FS

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func uuidArray(ids []uuid.UUID) interface{} {
	return pq.Array(lo.Map(ids, func(id uuid.UUID, _ int) string { return id.String() }))
}

// ========================================
// UserRepository Methods
// ========================================

// FindUsers возвращает пользователей для отчёта: и активных, и отключённых,
// без системных аккаунтов, если не запрошено иное.
func (r *Repository) FindUsers(ctx context.Context, query domain.UserQuery) ([]domain.User, error) {
	users := []domain.User{}
	err := r.db.SelectContext(ctx, &users, `
		SELECT u.id, u.username, u.alias, u.enabled, u.system_account
		FROM users u
		WHERE ($1 OR u.system_account = false)
		  AND (
			cardinality($2::uuid[]) = 0
			OR EXISTS (
				SELECT 1 FROM team_members tm
				WHERE tm.user_id = u.id AND tm.team_id = ANY($2::uuid[])
			)
		  )
		ORDER BY COALESCE(NULLIF(u.alias, ''), u.username), u.id
	`, query.IncludeSystemAccounts, uuidArray(query.TeamIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to find users: %w", err)
	}

	slog.Debug("Users loaded", "count", len(users), "teams", len(query.TeamIDs))
	return users, nil
}

// ========================================
// TeamRepository Methods
// ========================================

func (r *Repository) ListTeams(ctx context.Context) ([]domain.Team, error) {
	teams := []domain.Team{}
	err := r.db.SelectContext(ctx, &teams, `
		SELECT id, name
		FROM teams
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, nil
}

func (r *Repository) GetTeamByID(ctx context.Context, teamID uuid.UUID) (*domain.Team, error) {
	var team domain.Team
	err := r.db.GetContext(ctx, &team, `
		SELECT id, name
		FROM teams
		WHERE id = $1
	`, teamID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	return &team, nil
}

// ========================================
// ActivityRepository Methods
// ========================================

func (r *Repository) FindActivitiesByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Activity, error) {
	activities := []domain.Activity{}
	if len(ids) == 0 {
		return activities, nil
	}

	err := r.db.SelectContext(ctx, &activities, `
		SELECT id, name, color, visible
		FROM activities
		WHERE id = ANY($1::uuid[])
		ORDER BY name
	`, uuidArray(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to find activities: %w", err)
	}
	return activities, nil
}

// ========================================
// TimesheetRepository Methods
// ========================================

func (r *Repository) GetDailyStatisticRows(ctx context.Context, start, end time.Time, userIDs []uuid.UUID, timezone string) ([]domain.DailyStatisticRow, error) {
	rows := []domain.DailyStatisticRow{}
	if len(userIDs) == 0 {
		return rows, nil
	}

	query := `
		SELECT
			t.user_id,
			t.project_id,
			t.activity_id,
			to_char((t.begin_at AT TIME ZONE $4)::date, 'YYYY-MM-DD') AS day,
			COALESCE(SUM(t.duration), 0)::bigint AS duration,
			COALESCE(SUM(t.rate), 0) AS rate,
			COALESCE(SUM(t.internal_rate), 0) AS internal_rate
		FROM timesheets t
		WHERE t.begin_at BETWEEN $1 AND $2
		  AND t.end_at IS NOT NULL
		  AND t.user_id = ANY($3::uuid[])
		GROUP BY t.user_id, t.project_id, t.activity_id, day
		ORDER BY day
	`

	if err := r.db.SelectContext(ctx, &rows, query, start, end, uuidArray(userIDs), timezone); err != nil {
		return nil, fmt.Errorf("failed to get daily statistics: %w", err)
	}

	slog.Debug("Daily statistic rows loaded",
		"start", start,
		"end", end,
		"users", len(userIDs),
		"rows", len(rows),
	)
	return rows, nil
}

// ========================================
// Compile-time interface check
// ========================================

var _ RepositoryInterface = (*Repository)(nil)
