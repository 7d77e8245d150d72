package state

// StoreError is a custom error type for day-state errors
type StoreError string

// Error implements the error interface
func (e StoreError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilConfig        StoreError = "config cannot be nil"
	ErrNilSession       StoreError = "session cannot be nil"
	ErrNilClock         StoreError = "clock cannot be nil"
	ErrNilUUIDGenerator StoreError = "UUID generator cannot be nil"
	ErrDayNotFound      StoreError = "day not found"
)
