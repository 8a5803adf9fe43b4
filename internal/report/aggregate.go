package report

import (
	"bytes"
	"sort"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/T1mof/timetrack-reports/internal/domain"
)

// AggregateActivityTotals сворачивает user -> project -> activity -> day
// в activity -> (итог, подытоги по пользователям).
// Связки, у которых за период всё нулевое, не создают записей.
func AggregateActivityTotals(grouped domain.GroupedDailyStatistics) map[uuid.UUID]*domain.ActivityTotal {
	totals := make(map[uuid.UUID]*domain.ActivityTotal)

	for userID, projects := range grouped {
		for _, project := range projects {
			if project == nil {
				continue
			}
			for activityID, stats := range project.Activities {
				sum := sumDays(stats)
				if sum.IsZero() {
					continue
				}

				total, ok := totals[activityID]
				if !ok {
					total = domain.NewActivityTotal(activityID)
					totals[activityID] = total
				}
				total.AddForUser(userID, sum)
			}
		}
	}

	return totals
}

func sumDays(stats *domain.ActivityStatistics) domain.Totals {
	var sum domain.Totals
	if stats == nil {
		return sum
	}
	for _, day := range stats.Days {
		sum.Add(domain.Totals{
			Duration:     day.TotalDuration,
			Rate:         day.TotalRate,
			InternalRate: day.TotalInternalRate,
		})
	}
	return sum
}

// ActivityIDs ключи результата агрегации в стабильном порядке.
func ActivityIDs(totals map[uuid.UUID]*domain.ActivityTotal) []uuid.UUID {
	ids := lo.Keys(totals)
	sort.Slice(ids, func(i, j int) bool {
		return bytes.Compare(ids[i][:], ids[j][:]) < 0
	})
	return ids
}
