package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseISODurationMinutes_Closure(t *testing.T) {
	parseRequest := func(token string, want int) func(t *testing.T) {
		return func(t *testing.T) {
			got := ParseISODurationMinutes(token)
			assert.Equal(t, want, got)
		}
	}

	t.Run("hours_and_minutes", parseRequest("PT5H35M", 335))
	t.Run("hours_only", parseRequest("PT2H", 120))
	t.Run("minutes_only", parseRequest("PT45M", 45))
	t.Run("days_hours_minutes", parseRequest("P1DT2H30M", 1590))
	t.Run("days_only", parseRequest("P2D", 2880))
	t.Run("empty_components", parseRequest("PT", 0))
	t.Run("malformed_token", parseRequest("5h 35m", 0))
	t.Run("empty_string", parseRequest("", 0))
	t.Run("garbage", parseRequest("not-a-duration", 0))
}

func TestConvertMinutesToDuration_Closure(t *testing.T) {
	convertRequest := func(minutes int64, want string) func(t *testing.T) {
		return func(t *testing.T) {
			got := ConvertMinutesToDuration(minutes)
			assert.Equal(t, want, got)
		}
	}

	t.Run("hours_and_minutes", convertRequest(125, "2h 5m"))
	t.Run("whole_hours", convertRequest(120, "2h"))
	t.Run("minutes_only", convertRequest(45, "45m"))
}

func TestFormatUSD_Closure(t *testing.T) {
	formatRequest := func(amount float64, want string) func(t *testing.T) {
		return func(t *testing.T) {
			got := FormatUSD(amount)
			assert.Equal(t, want, got)
		}
	}

	t.Run("zero", formatRequest(0, "$0"))
	t.Run("rounds_to_whole_dollars", formatRequest(482.40, "$482"))
	t.Run("thousands_separator", formatRequest(1120, "$1,120"))
	t.Run("large_amount", formatRequest(1234567.89, "$1,234,568"))
}
