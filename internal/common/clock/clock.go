package clock

import "time"

//go:generate mockgen -package=mocks -destination=mocks/mock_clock.go github.com/KirkDiggler/mafiagod/internal/common/clock Clock

// Clock supplies event timestamps
type Clock interface {
	Now() time.Time
}

// DefaultClock reads the system clock in UTC so event logs do not depend on the
// moderator's timezone
type DefaultClock struct{}

// Now returns the current time in UTC
func (c *DefaultClock) Now() time.Time {
	return time.Now().UTC()
}
