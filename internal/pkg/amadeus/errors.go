package amadeus

import (
	"net/http"

	"github.com/ijalalfrz/airfare-search-service/internal/pkg/exception"
)

// Configuration errors are local precondition failures. They are raised
// before any network I/O so a preview or demo build can never reach the
// live inventory service by accident.
var ErrLiveAPIDisabled = exception.ApplicationError{
	StatusCode: http.StatusServiceUnavailable,
	Message:    "live inventory API is disabled, set ENABLE_LIVE_API=true and provide credentials",
}

var ErrCitySearchDisabled = exception.ApplicationError{
	StatusCode: http.StatusServiceUnavailable,
	Message:    "city autocomplete is disabled, set ENABLE_CITY_SEARCH=true",
}

var ErrMissingCredentials = exception.ApplicationError{
	StatusCode: http.StatusServiceUnavailable,
	Message:    "inventory API credentials are missing",
}

var ErrAuthenticationFailed = exception.ApplicationError{
	StatusCode: http.StatusBadGateway,
	Message:    "inventory API credential exchange failed",
}

var ErrSearchFailed = exception.ApplicationError{
	StatusCode: http.StatusBadGateway,
	Message:    "inventory API search failed",
}

var ErrRateLimitExceeded = exception.ApplicationError{
	StatusCode: http.StatusTooManyRequests,
	Message:    "outbound inventory API rate limit exceeded",
}
