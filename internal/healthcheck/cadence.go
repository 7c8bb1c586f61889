package healthcheck

import "time"

func (c Cadence) Valid() bool {
	switch c {
	case CadenceWeekly, CadenceBiweekly, CadenceMonthly, CadenceQuarterly:
		return true
	}
	return false
}

// NextCheckDate returns the date of the check following from. Unknown cadences fall back to monthly.
func NextCheckDate(from time.Time, cadence Cadence) time.Time {
	switch cadence {
	case CadenceWeekly:
		return from.AddDate(0, 0, 7)
	case CadenceBiweekly:
		return from.AddDate(0, 0, 14)
	case CadenceQuarterly:
		return from.AddDate(0, 3, 0)
	default:
		return from.AddDate(0, 1, 0)
	}
}

// IsDue is true once the team's next check date has been reached. Teams without a date are due.
func IsDue(team Team, now time.Time) bool {
	return team.NextCheckDate.IsZero() || !team.NextCheckDate.After(now)
}

// AdvanceCheckDate moves the next check date forward by cadence until it lies after now.
func AdvanceCheckDate(team Team, now time.Time) time.Time {
	next := team.NextCheckDate
	if next.IsZero() {
		next = now
	}
	for !next.After(now) {
		next = NextCheckDate(next, team.Cadence)
	}
	return next
}
