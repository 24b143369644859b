package utils

import (
	"fmt"
	"regexp"
	"strconv"
)

const minutesPerDay = 24 * 60

var isoDurationPattern = regexp.MustCompile(`^P(?:(\d+)D)?T?(?:(\d+)H)?(?:(\d+)M)?$`)

// ParseISODurationMinutes converts an ISO-8601 style duration token such as
// "PT5H35M" or "P1DT2H" into total minutes. Tokens that do not match the
// pattern yield 0 rather than an error; upstream feeds occasionally carry
// malformed durations and a missing duration must not drop the offer.
func ParseISODurationMinutes(duration string) int {
	match := isoDurationPattern.FindStringSubmatch(duration)
	if match == nil {
		return 0
	}

	days := atoiOrZero(match[1])
	hours := atoiOrZero(match[2])
	minutes := atoiOrZero(match[3])

	return days*minutesPerDay + hours*60 + minutes
}

func atoiOrZero(s string) int {
	if s == "" {
		return 0
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}

	return n
}

// ConvertMinutesToDuration convert minutes to duration format string
// Example: 125 -> "2h 5m"
func ConvertMinutesToDuration(durationInMinutes int64) string {

	h := durationInMinutes / 60
	m := durationInMinutes % 60

	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}

	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}

	return fmt.Sprintf("%dh %dm", h, m)
}

// FormatUSD formats a price as a whole-dollar string with thousands
// separators. Example: 1120.40 -> "$1,120"
func FormatUSD(amount float64) string {
	var rounded int64
	if amount < 0 {
		rounded = -int64(-amount + 0.5)
	} else {
		rounded = int64(amount + 0.5)
	}

	negative := rounded < 0
	if negative {
		rounded = -rounded
	}

	var result []byte
	str := strconv.FormatInt(rounded, 10)

	count := 0
	for i := len(str) - 1; i >= 0; i-- {
		result = append([]byte{str[i]}, result...)
		count++
		if count%3 == 0 && i != 0 {
			result = append([]byte{','}, result...)
		}
	}

	if negative {
		return "-$" + string(result)
	}
	return "$" + string(result)
}
