package textgen

import (
	"encoding"
	"fmt"
	"math/rand/v2"
	"sync"
)

// Source kinds recorded in a SourceState.
const (
	SourcePCG     = "pcg"
	SourceChaCha8 = "chacha8"
)

// NewSource returns a PCG source derived from seed. Two sources built from the
// same seed yield the same stream, which makes generation reproducible.
func NewSource(seed uint64) *rand.PCG {
	return rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
}

// NewRandomSource returns a PCG source seeded from the runtime's generator.
func NewRandomSource() *rand.PCG {
	return rand.NewPCG(rand.Uint64(), rand.Uint64())
}

// LockedSource serialises access to another source so that a single stream
// can be shared by generators running on different goroutines.
type LockedSource struct {
	mu  sync.Mutex
	src rand.Source
}

// NewLockedSource wraps src with a mutex.
func NewLockedSource(src rand.Source) *LockedSource {
	return &LockedSource{src: src}
}

// Uint64 returns the next value of the wrapped source.
func (s *LockedSource) Uint64() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.Uint64()
}

// SourceState is the serialisable state of a random source.
type SourceState struct {
	Kind  string `json:"kind" msgpack:"kind"`
	State []byte `json:"state" msgpack:"state"`
}

// SaveSource captures the state of src. It returns nil, nil for sources whose
// state cannot be marshalled; such sources are simply not persisted.
func SaveSource(src rand.Source) (*SourceState, error) {
	if locked, ok := src.(*LockedSource); ok {
		locked.mu.Lock()
		defer locked.mu.Unlock()
		src = locked.src
	}

	var kind string
	switch src.(type) {
	case *rand.PCG:
		kind = SourcePCG
	case *rand.ChaCha8:
		kind = SourceChaCha8
	default:
		return nil, nil
	}

	state, err := src.(encoding.BinaryMarshaler).MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("could not marshal %s source: %w", kind, err)
	}
	return &SourceState{Kind: kind, State: state}, nil
}

// LoadSource rebuilds a source from a state produced by SaveSource. The
// returned source continues exactly where the saved one stopped.
func LoadSource(st *SourceState) (rand.Source, error) {
	if st == nil {
		return nil, fmt.Errorf("no source state")
	}
	switch st.Kind {
	case SourcePCG:
		src := rand.NewPCG(0, 0)
		if err := src.UnmarshalBinary(st.State); err != nil {
			return nil, fmt.Errorf("could not restore pcg source: %w", err)
		}
		return src, nil
	case SourceChaCha8:
		src := rand.NewChaCha8([32]byte{})
		if err := src.UnmarshalBinary(st.State); err != nil {
			return nil, fmt.Errorf("could not restore chacha8 source: %w", err)
		}
		return src, nil
	default:
		return nil, fmt.Errorf("unknown source kind '%s'", st.Kind)
	}
}
