package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var monthLayouts = []string{"2006-01", "2006-01-02"}

type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// Валидация UUID.
func (v *Validator) ValidateUUID(id string, fieldName string) (uuid.UUID, error) {
	if strings.TrimSpace(id) == "" {
		return uuid.Nil, fmt.Errorf("%s cannot be empty", fieldName)
	}

	parsedUUID, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s must be a valid UUID: %w", fieldName, err)
	}

	if parsedUUID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%s cannot be nil UUID", fieldName)
	}

	return parsedUUID, nil
}

// ValidateMonth разбирает "2006-01" или "2006-01-02" и возвращает первый день месяца в loc.
func (v *Validator) ValidateMonth(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range monthLayouts {
		t, err := time.ParseInLocation(layout, value, loc)
		if err == nil {
			return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidMonth, value)
}

func (v *Validator) ValidateSumType(sumType string) error {
	switch sumType {
	case SumTypeDuration, SumTypeRate, SumTypeInternalRate:
		return nil
	}
	return fmt.Errorf("%w: %q, must be duration, rate or internalRate", ErrInvalidSumType, sumType)
}

// ValidateFilter проверяет форму фильтра. Пустые поля заменяются значениями по умолчанию:
// defaultMonth для даты, duration для типа суммы. Проверка существования команды остаётся
// вызывающему.
func (v *Validator) ValidateFilter(filter ReportFilter, defaultMonth time.Time) (ReportQuery, error) {
	query := ReportQuery{
		Month:   defaultMonth,
		SumType: SumTypeDuration,
		Decimal: filter.Decimal,
	}

	if filter.Malformed {
		return query, ErrMalformedForm
	}

	if filter.SumType != "" {
		if err := v.ValidateSumType(filter.SumType); err != nil {
			return query, err
		}
		query.SumType = filter.SumType
	}

	if strings.TrimSpace(filter.Date) != "" {
		month, err := v.ValidateMonth(filter.Date, defaultMonth.Location())
		if err != nil {
			return query, err
		}
		query.Month = month
	}

	if strings.TrimSpace(filter.Team) != "" {
		teamID, err := v.ValidateUUID(filter.Team, "team")
		if err != nil {
			return query, fmt.Errorf("%w: %w", ErrInvalidTeam, err)
		}
		query.TeamID = &teamID
	}

	return query, nil
}
