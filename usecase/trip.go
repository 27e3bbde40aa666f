package usecase

import "time"

// Trip dates, the heart of the countdown on the home page.
var (
	TripStart = time.Date(2026, time.March, 26, 0, 0, 0, 0, madrid())
	TripEnd   = time.Date(2026, time.April, 6, 0, 0, 0, 0, madrid())
)

func madrid() *time.Location {
	loc, err := time.LoadLocation("Europe/Madrid")
	if err != nil {
		return time.UTC
	}
	return loc
}

// TripInfo is what the countdown widget renders.
type TripInfo struct {
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	DaysToGo int       `json:"days_to_go"`
	Underway bool      `json:"underway"`
	Over     bool      `json:"over"`
}

// TripStatus computes the countdown relative to now.
func TripStatus(now time.Time) TripInfo {
	info := TripInfo{Start: TripStart, End: TripEnd}

	switch {
	case now.Before(TripStart):
		until := TripStart.Sub(now)
		info.DaysToGo = int(until.Hours() / 24)
		if until%(24*time.Hour) != 0 {
			info.DaysToGo++
		}
	case now.After(TripEnd):
		info.Over = true
	default:
		info.Underway = true
	}
	return info
}
