package dice

import (
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand"
)

// ErrInvalidDie signals a die size below 1, which is a programmer error rather
// than a runtime condition.
var ErrInvalidDie = errors.New("die size must be at least 1")

// Roller produces uniformly distributed die results from an injectable source,
// so every consumer of randomness can be made deterministic in tests.
type Roller struct {
	src   *rand.Rand
	queue []int
}

// New creates a Roller seeded from crypto-grade entropy.
func New() *Roller {
	var b [8]byte
	if _, err := crand.Read(b[:]); err == nil {
		return NewSeeded(int64(binary.LittleEndian.Uint64(b[:])))
	}
	return NewSeeded(1)
}

// NewSeeded creates a Roller with a fixed seed for reproducible sequences.
func NewSeeded(seed int64) *Roller {
	return &Roller{src: rand.New(rand.NewSource(seed))}
}

// Queue prepares a sequence of deterministic results consumed by the next
// calls to Roll, ahead of the random source.
func (r *Roller) Queue(results ...int) {
	r.queue = append(r.queue, results...)
}

// ResetQueue clears any queued deterministic results.
func (r *Roller) ResetQueue() {
	r.queue = nil
}

// Roll returns an integer uniformly distributed on [1, dieSize].
func (r *Roller) Roll(dieSize int) (int, error) {
	if dieSize < 1 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidDie, dieSize)
	}
	if len(r.queue) > 0 {
		val := r.queue[0]
		r.queue = r.queue[1:]
		return val, nil
	}
	return r.src.Intn(dieSize) + 1, nil
}

// RollSum sums count independent rolls of the given die. A count of zero or
// less yields zero without touching the source.
func (r *Roller) RollSum(count, dieSize int) (int, error) {
	if count <= 0 {
		return 0, nil
	}
	total := 0
	for i := 0; i < count; i++ {
		val, err := r.Roll(dieSize)
		if err != nil {
			return 0, err
		}
		total += val
	}
	return total, nil
}
