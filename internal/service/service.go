// Package service holds the business operations behind the HTTP API.
// Services return *domain.Error values; the transport maps their kinds to status codes.
package service

import "time"

// Clock returns the current time; tests pin it.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}

func FixedClock(t time.Time) Clock { return func() time.Time { return t } }
