package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/T1mof/timetrack-reports/internal/domain"
	"github.com/T1mof/timetrack-reports/internal/report"
	"github.com/T1mof/timetrack-reports/internal/repository"
)

const dayLayout = "2006-01-02"

type TimesheetStatisticService struct {
	repo repository.TimesheetRepository
	loc  *time.Location
}

func NewTimesheetStatisticService(repo repository.TimesheetRepository, loc *time.Location) *TimesheetStatisticService {
	if loc == nil {
		loc = time.UTC
	}
	return &TimesheetStatisticService{
		repo: repo,
		loc:  loc,
	}
}

// GetDailyStatisticsGrouped возвращает для каждого пользователя, проекта и активности
// ряд по всем дням диапазона, включая дни без записей.
func (s *TimesheetStatisticService) GetDailyStatisticsGrouped(ctx context.Context, start, end time.Time, users []domain.User) (domain.GroupedDailyStatistics, error) {
	start = start.In(s.loc)
	end = end.In(s.loc)

	userIDs := lo.Map(users, func(u domain.User, _ int) uuid.UUID { return u.ID })

	rows, err := s.repo.GetDailyStatisticRows(ctx, start, end, userIDs, s.loc.String())
	if err != nil {
		slog.Error("Failed to load daily statistics", "start", start, "end", end, "error", err)
		return nil, fmt.Errorf("failed to load daily statistics: %w", err)
	}

	days := report.Days(start, end)
	dayIndex := make(map[string]int, len(days))
	for i, d := range days {
		dayIndex[d.Format(dayLayout)] = i
	}

	grouped := make(domain.GroupedDailyStatistics, len(users))
	for _, id := range userIDs {
		grouped[id] = make(map[uuid.UUID]*domain.ProjectStatistics)
	}

	for _, row := range rows {
		idx, ok := dayIndex[row.Day]
		if !ok {
			slog.Warn("Statistic row outside of range", "day", row.Day, "user_id", row.UserID)
			continue
		}

		projects, ok := grouped[row.UserID]
		if !ok {
			slog.Warn("Statistic row for unexpected user", "user_id", row.UserID)
			continue
		}

		project, ok := projects[row.ProjectID]
		if !ok {
			project = &domain.ProjectStatistics{Activities: make(map[uuid.UUID]*domain.ActivityStatistics)}
			projects[row.ProjectID] = project
		}

		activity, ok := project.Activities[row.ActivityID]
		if !ok {
			activity = &domain.ActivityStatistics{Days: emptyDays(days)}
			project.Activities[row.ActivityID] = activity
		}

		day := &activity.Days[idx]
		day.TotalDuration += row.Duration
		day.TotalRate = day.TotalRate.Add(row.Rate)
		day.TotalInternalRate = day.TotalInternalRate.Add(row.InternalRate)
	}

	slog.Debug("Daily statistics grouped", "users", len(users), "rows", len(rows), "days", len(days))
	return grouped, nil
}

func emptyDays(days []time.Time) []domain.DailyStatistic {
	stats := make([]domain.DailyStatistic, len(days))
	for i, d := range days {
		stats[i] = domain.DailyStatistic{Date: d}
	}
	return stats
}
