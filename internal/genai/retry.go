package genai

import (
	"context"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// maxBackoff caps the exponential retry delay.
const maxBackoff = 60 * time.Second

// retryDelayPattern extracts the server-suggested retry delay from a
// rate-limit error body, e.g. "Please retry in 13.5s".
var retryDelayPattern = regexp.MustCompile(`(?i)retry in ([0-9.]+)s`)

// isRateLimited reports whether a response indicates quota exhaustion.
func isRateLimited(status int, body string) bool {
	return status == http.StatusTooManyRequests || strings.Contains(body, "RESOURCE_EXHAUSTED")
}

// suggestedDelay parses the server-suggested retry delay from an error
// message. The second return value is false when no suggestion is present.
func suggestedDelay(msg string) (time.Duration, bool) {
	match := retryDelayPattern.FindStringSubmatch(msg)
	if match == nil {
		return 0, false
	}
	seconds, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0, false
	}
	return time.Duration(seconds * float64(time.Second)), true
}

// sleepContext waits for the given duration or until the context is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
