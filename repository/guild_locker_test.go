package repository

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuildLocker_SameGuildIsSerialized(t *testing.T) {
	locker := newGuildLocker()
	ctx := context.Background()

	release, err := locker.LockGuild(ctx, "G1")
	require.NoError(t, err)

	acquired := make(chan struct{})
	go func() {
		second, err := locker.LockGuild(ctx, "G1")
		if err == nil {
			close(acquired)
			second()
		}
	}()

	select {
	case <-acquired:
		t.Fatal("second lock on the same guild acquired while the first was held")
	case <-time.After(50 * time.Millisecond):
	}

	release()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("second lock was not acquired after release")
	}
}

func TestGuildLocker_DifferentGuildsRunConcurrently(t *testing.T) {
	locker := newGuildLocker()
	ctx := context.Background()

	releaseA, err := locker.LockGuild(ctx, "G1")
	require.NoError(t, err)
	defer releaseA()

	timeout, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	releaseB, err := locker.LockGuild(timeout, "G2")
	require.NoError(t, err)
	releaseB()
}

func TestGuildLocker_ExclusiveWaitsForGuilds(t *testing.T) {
	locker := newGuildLocker()
	ctx := context.Background()

	release, err := locker.LockGuild(ctx, "G1")
	require.NoError(t, err)

	var exclusiveHeld atomic.Bool
	done := make(chan struct{})
	go func() {
		defer close(done)
		releaseAll, err := locker.LockAll(ctx)
		if err != nil {
			return
		}
		exclusiveHeld.Store(true)
		releaseAll()
	}()

	time.Sleep(50 * time.Millisecond)
	assert.False(t, exclusiveHeld.Load())

	release()
	select {
	case <-done:
		assert.True(t, exclusiveHeld.Load())
	case <-time.After(time.Second):
		t.Fatal("exclusive lock was not acquired after the guild lock was released")
	}
}

func TestGuildLocker_GuildWaitsForExclusive(t *testing.T) {
	locker := newGuildLocker()

	releaseAll, err := locker.LockAll(context.Background())
	require.NoError(t, err)
	defer releaseAll()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err = locker.LockGuild(ctx, "G1")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestGuildLocker_CancelWhileWaiting(t *testing.T) {
	locker := newGuildLocker()

	release, err := locker.LockGuild(context.Background(), "G1")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err = locker.LockGuild(ctx, "G1")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	release()
	assert.Equal(t, 0, locker.tracked(), "abandoned waits must not leak lock entries")

	// the guild is usable again
	again, err := locker.LockGuild(context.Background(), "G1")
	require.NoError(t, err)
	again()
}

func TestGuildLocker_ReleaseIsIdempotent(t *testing.T) {
	locker := newGuildLocker()
	ctx := context.Background()

	release, err := locker.LockGuild(ctx, "G1")
	require.NoError(t, err)
	release()
	release()

	releaseAll, err := locker.LockAll(ctx)
	require.NoError(t, err)
	releaseAll()
	releaseAll()

	assert.Equal(t, 0, locker.tracked())
}
