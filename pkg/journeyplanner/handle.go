package journeyplanner

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

const loadKey = "oracle"

var ErrOracleUnavailable = errors.New("oracle loader returned no oracle")

type Loader func(ctx context.Context) (Oracle, error)

// Handle lazily loads the oracle once and hands the same instance to every caller.
// Concurrent first callers share a single load. Failed loads are not cached.
type Handle struct {
	loader Loader
	group  singleflight.Group

	mutex  sync.RWMutex
	oracle Oracle

	// Bumped by Reset so a load started before it is never stored
	generation uint64
}

func NewHandle(loader Loader) *Handle {
	return &Handle{loader: loader}
}

// NewStaticHandle wraps an already loaded oracle
func NewStaticHandle(oracle Oracle) *Handle {
	return &Handle{
		loader: func(ctx context.Context) (Oracle, error) { return oracle, nil },
		oracle: oracle,
	}
}

func (h *Handle) Oracle(ctx context.Context) (Oracle, error) {
	if oracle := h.loaded(); oracle != nil {
		return oracle, nil
	}

	value, err, shared := h.group.Do(loadKey, func() (interface{}, error) {
		h.mutex.RLock()
		oracle, generation := h.oracle, h.generation
		h.mutex.RUnlock()
		if oracle != nil {
			return oracle, nil
		}

		oracle, err := h.loader(ctx)
		if err != nil {
			return nil, err
		}
		if oracle == nil {
			return nil, ErrOracleUnavailable
		}

		h.mutex.Lock()
		if h.generation == generation {
			h.oracle = oracle
		} else {
			log.Debug().Msg("Discarding oracle loaded before a reset")
		}
		h.mutex.Unlock()

		return oracle, nil
	})
	if err != nil {
		return nil, err
	}

	if shared {
		log.Debug().Msg("Shared in-flight oracle load")
	}

	return value.(Oracle), nil
}

// Loaded reports whether the oracle is ready without triggering a load
func (h *Handle) Loaded() bool {
	return h.loaded() != nil
}

// Reset drops the cached oracle so the next caller loads it again. A load already in flight
// still answers its own callers but is not kept.
func (h *Handle) Reset() {
	h.mutex.Lock()
	h.oracle = nil
	h.generation++
	h.mutex.Unlock()

	h.group.Forget(loadKey)
}

func (h *Handle) loaded() Oracle {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return h.oracle
}
