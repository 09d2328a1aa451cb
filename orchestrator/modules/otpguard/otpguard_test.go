package otpguard_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/modules/logger"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/modules/otpguard"

	"github.com/stretchr/testify/require"
)

func TestMemoryGuard_TryConsume(t *testing.T) {
	var (
		req   = require.New(t)
		guard = otpguard.NewMemoryGuard(0, 0, logger.NewLogger("test"))
		key   = otpguard.Key{DocumentID: "batch_1", SignerID: "900101-14-5678", Code: "123456"}
	)

	req.True(guard.TryConsume(key))
	req.False(guard.TryConsume(key))

	// A different code for the same signatory is independent.
	other := key
	other.Code = "654321"
	req.True(guard.TryConsume(other))
}

func TestMemoryGuard_Release(t *testing.T) {
	var (
		req   = require.New(t)
		guard = otpguard.NewMemoryGuard(0, 0, logger.NewLogger("test"))
		key   = otpguard.Key{DocumentID: "batch_1", SignerID: "900101-14-5678", Code: "123456"}
	)

	req.True(guard.TryConsume(key))
	guard.Release(key)
	req.True(guard.TryConsume(key))
}

func TestMemoryGuard_ExpiredEntryCountsAsAbsent(t *testing.T) {
	var (
		req   = require.New(t)
		guard = otpguard.NewMemoryGuard(10*time.Millisecond, time.Hour, logger.NewLogger("test"))
		key   = otpguard.Key{DocumentID: "batch_1", SignerID: "900101-14-5678", Code: "123456"}
	)

	req.True(guard.TryConsume(key))
	req.False(guard.TryConsume(key))

	time.Sleep(20 * time.Millisecond)

	req.True(guard.TryConsume(key))
}

func TestMemoryGuard_SingleWinnerUnderConcurrency(t *testing.T) {
	var (
		req   = require.New(t)
		guard = otpguard.NewMemoryGuard(0, 0, logger.NewLogger("test"))
		key   = otpguard.Key{DocumentID: "batch_1", SignerID: "900101-14-5678", Code: "123456"}
	)

	const attempts = 32

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if guard.TryConsume(key) {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	req.Equal(1, wins)
}

func TestMemoryGuard_StartStopsOnContextClose(t *testing.T) {
	var (
		req   = require.New(t)
		guard = otpguard.NewMemoryGuard(time.Millisecond, 5*time.Millisecond, logger.NewLogger("test"))
	)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		guard.Start(ctx)
		close(done)
	}()

	req.True(guard.TryConsume(otpguard.Key{DocumentID: "batch_1", SignerID: "s", Code: "1"}))

	// Let at least one sweep run, then stop.
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweep loop did not stop on context close")
	}
}
