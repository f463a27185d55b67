// Package snowflake generates globally unique, time-ordered 64-bit ids.
//
// Layout (MSB to LSB): 1 reserved sign bit, 41-bit millisecond offset from
// the 2022-01-01 epoch, 10-bit worker id, 12-bit per-millisecond sequence.
// Two generators with distinct worker ids never collide; worker id
// uniqueness is a deployment concern, not coordinated here.
package snowflake

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

const (
	// epoch is 2022-01-01T00:00:00Z in milliseconds.
	epoch int64 = 1640995200000

	workerBits   = 10
	sequenceBits = 12

	maxWorkerID = -1 ^ (-1 << workerBits)
	maxSequence = -1 ^ (-1 << sequenceBits)

	workerShift    = sequenceBits
	timestampShift = sequenceBits + workerBits
)

// ErrClockMovedBack reports that the wall clock regressed past the last
// observed timestamp. Continuing would risk duplicate ids, so the call
// aborts instead.
var ErrClockMovedBack = errors.New("clock moved backwards, refusing to generate id")

// Generator produces snowflake ids for a single worker. Safe for
// concurrent use.
type Generator struct {
	mu            sync.Mutex
	workerID      int64
	sequence      int64
	lastTimestamp int64

	// now is a seam for tests; returns the current time in milliseconds.
	now func() int64
}

// New creates a Generator for the given worker id (0-1023).
func New(workerID int64) (*Generator, error) {
	if workerID < 0 || workerID > maxWorkerID {
		return nil, fmt.Errorf("worker id must be between 0 and %d, got %d", maxWorkerID, workerID)
	}

	return &Generator{
		workerID:      workerID,
		lastTimestamp: -1,
		now:           func() int64 { return time.Now().UnixMilli() },
	}, nil
}

// NextID returns the next id. Ids from one generator are strictly
// increasing; a clock regression returns ErrClockMovedBack.
func (g *Generator) NextID() (uint64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	timestamp := g.now()
	if timestamp < g.lastTimestamp {
		return 0, ErrClockMovedBack
	}

	if timestamp == g.lastTimestamp {
		g.sequence = (g.sequence + 1) & maxSequence
		if g.sequence == 0 {
			// Sequence exhausted for this millisecond, spin until
			// the clock advances.
			for timestamp <= g.lastTimestamp {
				timestamp = g.now()
			}
		}
	} else {
		g.sequence = 0
	}

	g.lastTimestamp = timestamp

	id := (timestamp-epoch)<<timestampShift |
		g.workerID<<workerShift |
		g.sequence

	return uint64(id), nil
}
