package booking

import (
	"fmt"
	"strconv"
	"strings"
)

// GenerateTimeSlots lists hourly slots from start inclusive to end
// exclusive. Both bounds are 12-hour clock strings such as "9:00 AM".
// Unparseable bounds, or start not before end, yield no slots.
func GenerateTimeSlots(start, end string) []string {
	startMinutes, ok := parseClock(start)
	if !ok {
		return []string{}
	}
	endMinutes, ok := parseClock(end)
	if !ok {
		return []string{}
	}

	slots := []string{}
	for minutes := startMinutes; minutes < endMinutes; minutes += 60 {
		slots = append(slots, formatClock(minutes))
	}
	return slots
}

// SplitHours splits an availability descriptor like "9:00 AM - 5:00 PM".
func SplitHours(hours string) (start, end string, ok bool) {
	parts := strings.SplitN(hours, " - ", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), true
}

// SlotsFor returns the bookable slots of an availability descriptor.
func SlotsFor(hours string) []string {
	start, end, ok := SplitHours(hours)
	if !ok {
		return []string{}
	}
	return GenerateTimeSlots(start, end)
}

func parseClock(value string) (int, bool) {
	fields := strings.Fields(value)
	if len(fields) != 2 {
		return 0, false
	}
	clock, modifier := fields[0], strings.ToUpper(fields[1])
	if modifier != "AM" && modifier != "PM" {
		return 0, false
	}

	hourText, minuteText, found := strings.Cut(clock, ":")
	if !found {
		return 0, false
	}
	hours, err := strconv.Atoi(hourText)
	if err != nil || hours < 1 || hours > 12 {
		return 0, false
	}
	minutes, err := strconv.Atoi(minuteText)
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, false
	}

	if modifier == "PM" && hours < 12 {
		hours += 12
	}
	if modifier == "AM" && hours == 12 {
		hours = 0
	}
	return hours*60 + minutes, true
}

func formatClock(minutes int) string {
	hours := minutes / 60
	modifier := "AM"
	if hours >= 12 {
		modifier = "PM"
	}
	display := hours % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%02d %s", display, minutes%60, modifier)
}
