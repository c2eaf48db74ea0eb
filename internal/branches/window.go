package branches

import (
	"strconv"
	"strings"
	"time"
)

// IsOpenAt reports whether the window covers the wall-clock time of t.
// Windows whose end precedes their start run past midnight.
func (w ServiceWindow) IsOpenAt(t time.Time) bool {
	if !w.IsActive {
		return false
	}
	if w.IsAvailable24Hours {
		return true
	}
	start, ok := parseClock(w.StartTime)
	if !ok {
		return false
	}
	end, ok := parseClock(w.EndTime)
	if !ok {
		return false
	}
	now := t.Hour()*60 + t.Minute()
	if start <= end {
		return now >= start && now <= end
	}
	return now >= start || now <= end
}

func parseClock(value string) (int, bool) {
	hh, mm, found := strings.Cut(strings.TrimSpace(value), ":")
	if !found {
		return 0, false
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}
