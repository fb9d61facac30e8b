package cues

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// parseSRTTimestamp reads HH:MM:SS,mmm. A period is accepted in place of
// the comma.
func parseSRTTimestamp(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	value = strings.ReplaceAll(value, ".", ",")
	clock, fraction, ok := strings.Cut(value, ",")
	if !ok {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	base, err := parseClock(clock)
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	millis, err := strconv.Atoi(fraction)
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	return base + time.Duration(millis)*time.Millisecond, nil
}

// parseASSTimestamp reads H:MM:SS.cc (centiseconds).
func parseASSTimestamp(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	clock, fraction, ok := strings.Cut(value, ".")
	if !ok {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	base, err := parseClock(clock)
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	centis, err := strconv.Atoi(fraction)
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	return base + time.Duration(centis)*10*time.Millisecond, nil
}

func parseClock(value string) (time.Duration, error) {
	hms := strings.Split(value, ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid clock %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	if errH != nil || errM != nil || errS != nil {
		return 0, fmt.Errorf("invalid clock %q", value)
	}
	return time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute + time.Duration(seconds)*time.Second, nil
}
