// Package otpguard tracks one-time codes that are already in flight towards
// the signing authority, so a replayed code is rejected before any network
// call is made.
package otpguard

import (
	"context"
	"sync"
	"time"

	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/modules/logger"
)

const (
	DefaultEntryTTL      = 10 * time.Minute
	DefaultSweepInterval = time.Minute
)

// Key identifies one attempted use of a one-time code.
type Key struct {
	DocumentID string
	SignerID   string
	Code       string
}

type Guard interface {
	TryConsume(key Key) bool
	Release(key Key)
	Start(ctx context.Context)
}

// MemoryGuard is a process-local guard. Entries expire after entryTTL, a
// background sweep keeps the map from growing unbounded.
type MemoryGuard struct {
	sync.Mutex
	entries map[Key]time.Time

	entryTTL      time.Duration
	sweepInterval time.Duration

	logger logger.Logger
}

func NewMemoryGuard(entryTTL, sweepInterval time.Duration, log logger.Logger) *MemoryGuard {
	if entryTTL <= 0 {
		entryTTL = DefaultEntryTTL
	}
	if sweepInterval <= 0 {
		sweepInterval = DefaultSweepInterval
	}

	return &MemoryGuard{
		entries:       make(map[Key]time.Time),
		entryTTL:      entryTTL,
		sweepInterval: sweepInterval,
		logger:        log,
	}
}

// TryConsume marks the code as used. The absence check and the insert happen
// under one mutex hold, so two concurrent submissions of the same code agree
// on a single winner. An expired leftover entry counts as absent.
func (g *MemoryGuard) TryConsume(key Key) bool {
	g.Lock()
	defer g.Unlock()

	if consumedAt, ok := g.entries[key]; ok {
		if time.Since(consumedAt) < g.entryTTL {
			return false
		}
	}

	g.entries[key] = time.Now()

	return true
}

// Release frees the code for another attempt. Called only for failures the
// authority attributed to the code itself; a code that may have reached the
// authority stays consumed until its entry expires.
func (g *MemoryGuard) Release(key Key) {
	g.Lock()
	defer g.Unlock()

	delete(g.entries, key)
}

// Start runs the expiry sweep until the context is closed.
func (g *MemoryGuard) Start(ctx context.Context) {
	tk := time.NewTicker(g.sweepInterval)
	defer tk.Stop()

	for {
		select {
		case <-tk.C:
			if purged := g.sweep(time.Now()); purged > 0 {
				g.logger.Log("Purged %d expired one-time code entries", purged)
			}
		case <-ctx.Done():
			g.logger.Log("Context closed, stop sweeping one-time code entries...")
			return
		}
	}
}

func (g *MemoryGuard) sweep(now time.Time) int {
	g.Lock()
	defer g.Unlock()

	var purged int
	for key, consumedAt := range g.entries {
		if now.Sub(consumedAt) >= g.entryTTL {
			delete(g.entries, key)
			purged++
		}
	}

	return purged
}
