package repository

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/semaphore"
)

// exclusiveWeight is the global semaphore size. A guild lock takes 1, an exclusive lock takes all of it.
const exclusiveWeight = 1 << 20

// guildLocker serializes work per guild and lets whole-document work exclude every guild.
// Locks are always taken global first, then per guild, so the two levels cannot deadlock.
type guildLocker struct {
	global *semaphore.Weighted

	mu     sync.Mutex
	guilds map[string]*guildLock
}

type guildLock struct {
	sem  *semaphore.Weighted
	refs int
}

func newGuildLocker() *guildLocker {
	return &guildLocker{
		global: semaphore.NewWeighted(exclusiveWeight),
		guilds: make(map[string]*guildLock),
	}
}

// LockGuild blocks until no other holder has guildID or the exclusive lock, or ctx is done.
// The returned func releases the lock and is safe to call more than once.
func (l *guildLocker) LockGuild(ctx context.Context, guildID string) (func(), error) {
	if err := l.global.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("failed to lock guild %s: %w", guildID, err)
	}

	gl := l.ref(guildID)
	if err := gl.sem.Acquire(ctx, 1); err != nil {
		l.unref(guildID)
		l.global.Release(1)
		return nil, fmt.Errorf("failed to lock guild %s: %w", guildID, err)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			gl.sem.Release(1)
			l.unref(guildID)
			l.global.Release(1)
		})
	}, nil
}

// LockAll blocks until no guild lock is held, or ctx is done
func (l *guildLocker) LockAll(ctx context.Context) (func(), error) {
	if err := l.global.Acquire(ctx, exclusiveWeight); err != nil {
		return nil, fmt.Errorf("failed to lock all guilds: %w", err)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			l.global.Release(exclusiveWeight)
		})
	}, nil
}

func (l *guildLocker) ref(guildID string) *guildLock {
	l.mu.Lock()
	defer l.mu.Unlock()

	gl, ok := l.guilds[guildID]
	if !ok {
		gl = &guildLock{sem: semaphore.NewWeighted(1)}
		l.guilds[guildID] = gl
	}
	gl.refs++
	return gl
}

func (l *guildLocker) unref(guildID string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	gl, ok := l.guilds[guildID]
	if !ok {
		return
	}
	gl.refs--
	if gl.refs <= 0 {
		delete(l.guilds, guildID)
	}
}

// tracked returns how many guilds currently have a lock entry
func (l *guildLocker) tracked() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.guilds)
}
