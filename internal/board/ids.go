package board

import (
	"fmt"
	"sync/atomic"
	"time"
)

// batchSerial distinguishes batches minted within the same millisecond,
// so identifiers never depend on wall-clock resolution for uniqueness.
var batchSerial atomic.Uint64

// Batch generates identifiers for entities created in one operation.
// All ids from a batch share the same creation instant and batch serial
// but carry a per-batch sequence index, so tickets materialized together
// never collide. Tickets from separate batches created at the same
// instant do not collide either.
type Batch struct {
	instant time.Time
	serial  uint64
	seq     int
}

// NewBatch starts an id batch stamped with the given creation instant.
func NewBatch(now time.Time) *Batch {
	return &Batch{instant: now.UTC(), serial: batchSerial.Add(1)}
}

// Instant returns the creation timestamp shared by the batch.
func (b *Batch) Instant() time.Time { return b.instant }

// EpicID returns the next epic identifier in the batch.
func (b *Batch) EpicID() string { return b.next("epic") }

// TicketID returns the next ticket identifier in the batch.
func (b *Batch) TicketID() string { return b.next("ticket") }

func (b *Batch) next(kind string) string {
	id := fmt.Sprintf("%s-%d-%d-%d", kind, b.instant.UnixMilli(), b.serial, b.seq)
	b.seq++
	return id
}
