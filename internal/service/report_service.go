package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/T1mof/timetrack-reports/internal/domain"
	"github.com/T1mof/timetrack-reports/internal/report"
	"github.com/T1mof/timetrack-reports/internal/repository"
)

const monthLayout = "2006-01"

type ReportService struct {
	users      repository.UserRepository
	teams      repository.TeamRepository
	activities repository.ActivityRepository
	stats      StatisticsProvider
	validator  *domain.Validator
	loc        *time.Location
	now        func() time.Time
}

func NewReportService(repo repository.RepositoryInterface, stats StatisticsProvider, loc *time.Location) *ReportService {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportService{
		users:      repo,
		teams:      repo,
		activities: repo,
		stats:      stats,
		validator:  domain.NewValidator(),
		loc:        loc,
		now:        time.Now,
	}
}

// UserActivitySum строит месячный отчёт activity -> user по отфильтрованным пользователям.
func (s *ReportService) UserActivitySum(ctx context.Context, filter domain.ReportFilter) (*domain.UserActivitySumReport, error) {
	teams, err := s.teams.ListTeams(ctx)
	if err != nil {
		slog.Error("Failed to list teams", "error", err)
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}

	query, err := s.resolveQuery(ctx, filter)
	if err != nil {
		return nil, err
	}

	userQuery := domain.UserQuery{IncludeSystemAccounts: false}
	if query.TeamID != nil {
		userQuery.TeamIDs = []uuid.UUID{*query.TeamID}
	}

	users, err := s.users.FindUsers(ctx, userQuery)
	if err != nil {
		slog.Error("Failed to find users", "error", err)
		return nil, fmt.Errorf("failed to find users: %w", err)
	}

	start, end := report.MonthRange(query.Month)

	result := &domain.UserActivitySumReport{
		ReportTitle:    domain.ReportTitleUserActivitySum,
		ExportRoute:    domain.ExportRouteUserActivitySum,
		Filter:         echoFilter(query),
		Teams:          teams,
		Start:          start,
		End:            end,
		SumType:        query.SumType,
		Decimal:        query.Decimal,
		Users:          users,
		UsersByID:      lo.KeyBy(users, func(u domain.User) uuid.UUID { return u.ID }),
		Activities:     map[uuid.UUID]domain.Activity{},
		ActivityTotals: map[uuid.UUID]*domain.ActivityTotal{},
		HasData:        len(users) > 0,
	}

	if !result.HasData {
		slog.Info("No users for activity sum report", "month", start.Format(monthLayout), "team", result.Filter.Team)
		return result, nil
	}

	grouped, err := s.stats.GetDailyStatisticsGrouped(ctx, start, end, users)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily statistics: %w", err)
	}

	result.ActivityTotals = report.AggregateActivityTotals(grouped)

	if ids := report.ActivityIDs(result.ActivityTotals); len(ids) > 0 {
		activities, err := s.activities.FindActivitiesByIDs(ctx, ids)
		if err != nil {
			slog.Error("Failed to resolve activities", "count", len(ids), "error", err)
			return nil, fmt.Errorf("failed to resolve activities: %w", err)
		}
		result.Activities = lo.KeyBy(activities, func(a domain.Activity) uuid.UUID { return a.ID })
	}

	slog.Info("Activity sum report built",
		"month", start.Format(monthLayout),
		"team", result.Filter.Team,
		"users_count", len(users),
		"activities_count", len(result.ActivityTotals),
	)

	return result, nil
}

// resolveQuery проверяет фильтр. Невалидная форма не ошибка: отчёт строится
// за текущий месяц без фильтра по команде.
func (s *ReportService) resolveQuery(ctx context.Context, filter domain.ReportFilter) (domain.ReportQuery, error) {
	defaultMonth := report.StartOfMonth(s.now().In(s.loc))

	query, err := s.validator.ValidateFilter(filter, defaultMonth)
	if err != nil {
		slog.Warn("Report filter rejected, using defaults", "date", filter.Date, "team", filter.Team, "error", err)
		return fallbackQuery(query, defaultMonth), nil
	}

	if query.TeamID != nil {
		if _, err := s.teams.GetTeamByID(ctx, *query.TeamID); err != nil {
			if errors.Is(err, domain.ErrTeamNotFound) {
				slog.Warn("Report team not found, using defaults", "team_id", *query.TeamID)
				return fallbackQuery(query, defaultMonth), nil
			}
			slog.Error("Failed to get team", "team_id", *query.TeamID, "error", err)
			return domain.ReportQuery{}, fmt.Errorf("failed to get team: %w", err)
		}
	}

	return query, nil
}

func fallbackQuery(query domain.ReportQuery, defaultMonth time.Time) domain.ReportQuery {
	return domain.ReportQuery{
		Month:   defaultMonth,
		SumType: query.SumType,
		Decimal: query.Decimal,
	}
}

func echoFilter(query domain.ReportQuery) domain.ReportFilter {
	filter := domain.ReportFilter{
		Date:    query.Month.Format(monthLayout),
		SumType: query.SumType,
		Decimal: query.Decimal,
	}
	if query.TeamID != nil {
		filter.Team = query.TeamID.String()
	}
	return filter
}
