// README: Rate limiting types: per-client policy and the decision returned for each request.
package ratelimit

import (
	"errors"
	"time"
)

var ErrInvalidPolicy = errors.New("rate limit policy needs positive requests and window")

// Policy allows Requests per Window for each key.
type Policy struct {
	Requests int
	Window   time.Duration
}

func (p Policy) Validate() error {
	if p.Requests <= 0 || p.Window <= 0 {
		return ErrInvalidPolicy
	}
	return nil
}

// Decision is the outcome of one Take.
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}
