// Package slotgen produces the bookable slot grid: 30-minute windows over
// business hours (09:00-17:00) on weekdays within a rolling 7-day horizon.
package slotgen

import "time"

const (
	OpenHour    = 9
	CloseHour   = 17
	SlotMinutes = 30
	HorizonDays = 7
)

type Window struct {
	StartAt time.Time
	EndAt   time.Time
}

// Generate returns every window whose start is strictly after now, in
// ascending order. Times are computed in now's location. Deterministic for a
// given clock, so repeated generation plus idempotent inserts converge on one
// grid.
func Generate(now time.Time) []Window {
	var out []Window

	y, m, d := now.Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, now.Location())

	for day := 0; day < HorizonDays; day++ {
		date := dayStart.AddDate(0, 0, day)
		if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		for hour := OpenHour; hour < CloseHour; hour++ {
			for minute := 0; minute < 60; minute += SlotMinutes {
				start := time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, now.Location())
				if !start.After(now) {
					continue
				}
				out = append(out, Window{
					StartAt: start,
					EndAt:   start.Add(SlotMinutes * time.Minute),
				})
			}
		}
	}
	return out
}
