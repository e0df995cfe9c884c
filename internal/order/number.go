package order

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// nextNumber issues a human-readable order number: the configured prefix,
// the date, and a suffix derived from the current time, e.g.
// MK-20260830-483921.
//
// The time suffix is only a best-effort anti-collision measure. The issued
// filter catches probable repeats within this process and swaps in a random
// suffix instead; two processes composing in the same millisecond window can
// still collide, which is an accepted weakness rather than a guarantee to
// uphold.
func (c *Composer) nextNumber(now time.Time) string {
	date := now.Format("20060102")
	n := fmt.Sprintf("%s-%s-%06d", c.cfg.OrderPrefix, date, now.UnixMilli()%1_000_000)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.issued.TestString(n) {
		id := uuid.New()
		n = fmt.Sprintf("%s-%s-%x", c.cfg.OrderPrefix, date, id[:3])
	}
	c.issued.AddString(n)
	return n
}
