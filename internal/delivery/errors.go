package delivery

import (
	"fmt"
	"time"
)

// ThrottledError is the platform adapter's rate-limit signal. RetryAfter is
// the wait the platform asked for; zero means the platform didn't say.
type ThrottledError struct {
	RetryAfter time.Duration
}

func (e *ThrottledError) Error() string {
	return fmt.Sprintf("rate limited by platform (retry after %s)", e.RetryAfter)
}
