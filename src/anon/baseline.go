package anon

import (
	"math/rand/v2"
	"sync"
	"time"
)

// TimestampBaseline remaps timestamps onto a reference instant while keeping
// their spacing. The first timestamp translated becomes the anchor and maps to
// the reference; every later timestamp t maps to reference + (t - anchor).
// Precision is whole seconds.
type TimestampBaseline struct {
	mu sync.Mutex

	reference time.Time
	anchor    time.Time
	anchored  bool
}

// NewTimestampBaseline creates an unanchored baseline around an explicit reference instant.
func NewTimestampBaseline(reference time.Time) *TimestampBaseline {
	return &TimestampBaseline{reference: reference.UTC().Truncate(time.Second)}
}

// NewRandomTimestampBaseline picks the reference uniformly between the Unix
// epoch and now, using r as the source of randomness.
func NewRandomTimestampBaseline(r *rand.Rand, now time.Time) *TimestampBaseline {
	end := now.Unix()
	if end < 0 {
		end = 0
	}
	secs := r.Int64N(end + 1)
	return NewTimestampBaseline(time.Unix(secs, 0))
}

// NewSeededTimestampBaseline is NewRandomTimestampBaseline with a reproducible
// PCG source derived from seed.
func NewSeededTimestampBaseline(seed uint64, now time.Time) *TimestampBaseline {
	return NewRandomTimestampBaseline(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), now)
}

// RestoreTimestampBaseline recreates a baseline saved from an earlier run. A nil
// anchor leaves the baseline unanchored.
func RestoreTimestampBaseline(reference time.Time, anchor *time.Time) *TimestampBaseline {
	b := NewTimestampBaseline(reference)
	if anchor != nil {
		b.anchor = anchor.UTC().Truncate(time.Second)
		b.anchored = true
	}
	return b
}

// Translate maps t onto the baseline, anchoring on t if this is the first call.
func (b *TimestampBaseline) Translate(t time.Time) time.Time {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.anchored {
		b.anchor = t.UTC().Truncate(time.Second)
		b.anchored = true
	}
	// Unix seconds avoid time.Duration saturating at roughly 292 years.
	delta := t.Unix() - b.anchor.Unix()
	return time.Unix(b.reference.Unix()+delta, 0).UTC()
}

func (b *TimestampBaseline) Reference() time.Time {
	return b.reference
}

// Anchor returns the first timestamp translated, if any.
func (b *TimestampBaseline) Anchor() (time.Time, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.anchor, b.anchored
}
