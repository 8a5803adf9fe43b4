package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	SumTypeDuration     = "duration"
	SumTypeRate         = "rate"
	SumTypeInternalRate = "internalRate"
)

const (
	ReportTitleUserActivitySum = "user_activity_sum"
	ReportRouteUserActivitySum = "/reporting/users/activity-sum"
	ExportRouteUserActivitySum = "/reporting/users/activity-sum_export"
)

var (
	ErrTeamNotFound   = errors.New("TEAM_NOT_FOUND")
	ErrInvalidMonth   = errors.New("invalid month")
	ErrInvalidTeam    = errors.New("invalid team")
	ErrInvalidSumType = errors.New("invalid sum type")
	ErrMalformedForm  = errors.New("malformed form")
)

// ReportFilter состояние формы фильтра, как оно пришло в query string.
type ReportFilter struct {
	Date    string `form:"date" json:"date"`
	Team    string `form:"team" json:"team"`
	SumType string `form:"sumType" json:"sumType"`
	Decimal bool   `form:"decimal" json:"decimal"`

	// Malformed выставляется, если query string не удалось разобрать.
	Malformed bool `form:"-" json:"-"`
}

// ReportQuery проверенный фильтр отчёта.
type ReportQuery struct {
	Month   time.Time
	TeamID  *uuid.UUID
	SumType string
	Decimal bool
}

// UserActivitySumReport всё, что нужно для отрисовки отчёта.
type UserActivitySumReport struct {
	ReportTitle string
	ExportRoute string

	Filter  ReportFilter
	Teams   []Team
	Start   time.Time
	End     time.Time
	SumType string
	Decimal bool

	Users          []User
	UsersByID      map[uuid.UUID]User
	Activities     map[uuid.UUID]Activity
	ActivityTotals map[uuid.UUID]*ActivityTotal
	HasData        bool
}
