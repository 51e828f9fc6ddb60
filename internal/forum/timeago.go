package forum

import (
	"fmt"
	"time"
)

var timeUnits = []struct {
	seconds float64
	name    string
}{
	{31536000, "years"},
	{2592000, "months"},
	{86400, "days"},
	{3600, "hours"},
	{60, "minutes"},
}

// TimeAgo renders the age of created relative to now, e.g. "3 hours ago". A
// unit is used once more than one whole unit has passed.
func TimeAgo(created, now time.Time) string {
	seconds := float64(int64(now.Sub(created) / time.Second))
	for _, unit := range timeUnits {
		if interval := seconds / unit.seconds; interval > 1 {
			return fmt.Sprintf("%d %s ago", int64(interval), unit.name)
		}
	}
	return fmt.Sprintf("%d seconds ago", int64(seconds))
}
