package shuffle

import (
	"math/rand"
	"time"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_shuffler.go github.com/KirkDiggler/mafiagod/internal/shuffle Shuffler

// Shuffler is the random source used for role assignment
type Shuffler interface {
	// Intn returns a value in [0, n)
	Intn(n int) int
}

// Random is a seedable Shuffler
type Random struct {
	random *rand.Rand
}

// Config for the random source
type Config struct {
	// Optional seed for reproducible games and tests
	Seed int64
}

// New creates a new random source
func New(cfg *Config) *Random {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	return &Random{
		random: rand.New(rand.NewSource(seed)),
	}
}

// Intn returns a value in [0, n)
func (r *Random) Intn(n int) int {
	if n <= 1 {
		return 0
	}
	return r.random.Intn(n)
}

// Permute returns a Fisher-Yates shuffled copy of items. The input is not modified.
func Permute[T any](s Shuffler, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := s.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
