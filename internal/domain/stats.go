package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DailyStatistic итоги одного дня для связки (user, project, activity).
type DailyStatistic struct {
	Date              time.Time
	TotalDuration     int64
	TotalRate         decimal.Decimal
	TotalInternalRate decimal.Decimal
}

type ActivityStatistics struct {
	Days []DailyStatistic
}

type ProjectStatistics struct {
	Activities map[uuid.UUID]*ActivityStatistics
}

// GroupedDailyStatistics user id -> project id -> статистика по активностям.
type GroupedDailyStatistics map[uuid.UUID]map[uuid.UUID]*ProjectStatistics

// DailyStatisticRow строка агрегата из таблицы timesheets.
type DailyStatisticRow struct {
	UserID       uuid.UUID       `db:"user_id"`
	ProjectID    uuid.UUID       `db:"project_id"`
	ActivityID   uuid.UUID       `db:"activity_id"`
	Day          string          `db:"day"`
	Duration     int64           `db:"duration"`
	Rate         decimal.Decimal `db:"rate"`
	InternalRate decimal.Decimal `db:"internal_rate"`
}

// Totals суммы длительности (в секундах) и ставок.
type Totals struct {
	Duration     int64           `json:"duration"`
	Rate         decimal.Decimal `json:"rate"`
	InternalRate decimal.Decimal `json:"internal_rate"`
}

func (t *Totals) Add(other Totals) {
	t.Duration += other.Duration
	t.Rate = t.Rate.Add(other.Rate)
	t.InternalRate = t.InternalRate.Add(other.InternalRate)
}

func (t Totals) IsZero() bool {
	return t.Duration == 0 && t.Rate.IsZero() && t.InternalRate.IsZero()
}

// ActivityTotal итог по активности за месяц и разбивка по пользователям.
type ActivityTotal struct {
	ActivityID uuid.UUID `json:"activity_id"`
	Totals
	PerUser map[uuid.UUID]*Totals `json:"per_user"`
}

func NewActivityTotal(activityID uuid.UUID) *ActivityTotal {
	return &ActivityTotal{
		ActivityID: activityID,
		PerUser:    make(map[uuid.UUID]*Totals),
	}
}

// AddForUser добавляет сумму пользователя и в его подытог, и в общий итог.
func (a *ActivityTotal) AddForUser(userID uuid.UUID, sum Totals) {
	userTotals, ok := a.PerUser[userID]
	if !ok {
		userTotals = &Totals{}
		a.PerUser[userID] = userTotals
	}
	userTotals.Add(sum)
	a.Totals.Add(sum)
}
