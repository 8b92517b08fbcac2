package mod

import (
	"math/rand"
	"time"

	"github.com/sourceplane/chasm/internal/model"
)

// RandSource draws random integers; *rand.Rand satisfies it
type RandSource interface {
	Int63n(n int64) int64
}

// NewRand returns a seeded source. A zero seed uses the current time.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Kind groups instructions by what they touch
type Kind string

const (
	// KindItem instructions mutate fields of existing records
	KindItem Kind = "item"
	// KindList instructions change the shape of the dataset itself
	KindList Kind = "list"
)

// Instruction is one validated data-mutation step. Apply may mutate records
// in place and may grow the dataset; callers must use the returned dataset.
type Instruction interface {
	Name() string
	Apply(data model.Dataset, rng RandSource) (model.Dataset, error)
}

// uniform returns an integer in [low, high]
func uniform(rng RandSource, low, high int64) int64 {
	return low + rng.Int63n(high-low+1)
}
