package service

import (
	"context"
	"time"

	"github.com/T1mof/timetrack-reports/internal/domain"
)

// StatisticsProvider отдаёт дневную статистику, сгруппированную по user -> project -> activity.
type StatisticsProvider interface {
	GetDailyStatisticsGrouped(ctx context.Context, start, end time.Time, users []domain.User) (domain.GroupedDailyStatistics, error)
}

// ServiceInterface определяет методы отчётов.
type ServiceInterface interface {
	UserActivitySum(ctx context.Context, filter domain.ReportFilter) (*domain.UserActivitySumReport, error)
}

// Compile-time проверка.
var (
	_ ServiceInterface   = (*ReportService)(nil)
	_ StatisticsProvider = (*TimesheetStatisticService)(nil)
)
