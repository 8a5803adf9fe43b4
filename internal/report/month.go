package report

import "time"

// MonthRange возвращает первый день месяца 00:00:00 и последний день 23:59:59
// для месяца, в который попадает ref, в зоне ref.
func MonthRange(ref time.Time) (start, end time.Time) {
	loc := ref.Location()
	start = time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, loc)
	last := start.AddDate(0, 1, -1)
	end = time.Date(last.Year(), last.Month(), last.Day(), 23, 59, 59, 0, loc)
	return start, end
}

// StartOfMonth первый момент месяца, в который попадает ref.
func StartOfMonth(ref time.Time) time.Time {
	start, _ := MonthRange(ref)
	return start
}

// Days перечисляет календарные дни диапазона включительно, каждый на 00:00.
func Days(start, end time.Time) []time.Time {
	loc := start.Location()
	first := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)

	var days []time.Time
	for d := first; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
