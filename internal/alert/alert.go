// Package alert computes the due-date warning shown on the dashboard.
// The flag is derived at read time and never persisted.
package alert

import "time"

// Window is the number of days before the delivery date during which an
// order is considered due.
const Window = 3

// DaysRemaining returns the whole days between today and the delivery date.
// Time-of-day and timezone components are discarded; the result is negative
// for overdue deliveries.
func DaysRemaining(delivery, today time.Time) int {
	d := midnight(delivery)
	t := midnight(today)
	return int(d.Sub(t).Hours() / 24)
}

// Due reports whether the delivery date falls inside the alert window:
// today up to and including Window days out. Overdue deliveries do not alert.
func Due(delivery, today time.Time) bool {
	days := DaysRemaining(delivery, today)
	return days >= 0 && days <= Window
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
