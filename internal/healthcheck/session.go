package healthcheck

import (
	"fmt"
	"time"
)

// ValidateSession checks a submission before it is stored. Responses need not cover every
// active dimension, but each one must reference an active dimension at most once.
func ValidateSession(s Session, dims *Registry, now time.Time) error {
	if s.TeamID == "" || s.UserID == "" {
		return fmt.Errorf("%w: team and user are required", ErrInvalidSession)
	}
	if s.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidSession)
	}
	if calendarDay(s.Date).After(calendarDay(now)) {
		return fmt.Errorf("%w: date %s is in the future", ErrInvalidSession, s.Date.UTC().Format("2006-01-02"))
	}
	if len(s.Responses) == 0 {
		return fmt.Errorf("%w: at least one response is required", ErrInvalidSession)
	}

	seen := make(map[string]struct{}, len(s.Responses))
	for _, r := range s.Responses {
		dim, ok := dims.Get(r.DimensionID)
		if !ok {
			return fmt.Errorf("%w: unknown dimension %q", ErrInvalidSession, r.DimensionID)
		}
		if !dim.IsActive {
			return fmt.Errorf("%w: dimension %q is not active", ErrInvalidSession, r.DimensionID)
		}
		if _, dup := seen[r.DimensionID]; dup {
			return fmt.Errorf("%w: dimension %q answered twice", ErrInvalidSession, r.DimensionID)
		}
		seen[r.DimensionID] = struct{}{}
		if !r.Score.Valid() {
			return fmt.Errorf("%w: score %d for %q is outside 1..3", ErrInvalidSession, r.Score, r.DimensionID)
		}
		if !r.Trend.Valid() {
			return fmt.Errorf("%w: trend %q for %q is not recognized", ErrInvalidSession, r.Trend, r.DimensionID)
		}
	}
	return nil
}
