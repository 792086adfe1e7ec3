package repository

import (
	"context"
	"fmt"

	"helix/events"
	"helix/service"
)

// unitOfWork implements the UnitOfWork interface.
// Writes reach the store as soon as they are made; Commit and Rollback only
// release the lock and decide whether pending events are delivered.
type unitOfWork struct {
	stores           Stores
	locker           *guildLocker
	guildID          string
	exclusive        bool
	ctx              context.Context
	release          func()
	begun            bool
	eventBus         *events.Bus
	transactionalBus *events.TransactionalBus
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory over stores
func NewUnitOfWorkFactory(stores Stores, eventBus *events.Bus) service.UnitOfWorkFactory {
	return &unitOfWorkFactory{
		stores:   stores,
		locker:   newGuildLocker(),
		eventBus: eventBus,
	}
}

type unitOfWorkFactory struct {
	stores   Stores
	locker   *guildLocker
	eventBus *events.Bus
}

func (f *unitOfWorkFactory) CreateForGuild(guildID string) service.UnitOfWork {
	return &unitOfWork{
		stores:   f.stores,
		locker:   f.locker,
		guildID:  guildID,
		eventBus: f.eventBus,
	}
}

func (f *unitOfWorkFactory) CreateExclusive() service.UnitOfWork {
	return &unitOfWork{
		stores:    f.stores,
		locker:    f.locker,
		exclusive: true,
		eventBus:  f.eventBus,
	}
}

// Begin acquires the guild (or exclusive) lock
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.release != nil {
		return fmt.Errorf("unit of work already started")
	}

	var release func()
	var err error
	if u.exclusive {
		release, err = u.locker.LockAll(ctx)
	} else {
		release, err = u.locker.LockGuild(ctx, u.guildID)
	}
	if err != nil {
		return fmt.Errorf("failed to begin unit of work: %w", err)
	}

	u.release = release
	u.ctx = ctx
	u.begun = true
	u.transactionalBus = events.NewTransactionalBus(u.eventBus)
	return nil
}

// Commit releases the lock and flushes pending events
func (u *unitOfWork) Commit() error {
	if u.release == nil {
		return fmt.Errorf("no unit of work to commit")
	}

	u.release()
	u.release = nil

	if err := u.transactionalBus.Flush(u.ctx); err != nil {
		return fmt.Errorf("failed to flush events: %w", err)
	}
	return nil
}

// Rollback releases the lock and discards pending events
func (u *unitOfWork) Rollback() error {
	if u.release == nil {
		return nil // Nothing to roll back
	}

	u.release()
	u.release = nil
	u.transactionalBus.Discard()
	return nil
}

// GuildConfigStore returns the guild config store for this unit of work
func (u *unitOfWork) GuildConfigStore() service.DocumentStore {
	u.mustBegin()
	return u.stores.GuildConfigs
}

// TeamStore returns the team store for this unit of work
func (u *unitOfWork) TeamStore() service.DocumentStore {
	u.mustBegin()
	return u.stores.Teams
}

// RingRoleStore returns the ring role store for this unit of work
func (u *unitOfWork) RingRoleStore() service.DocumentStore {
	u.mustBegin()
	return u.stores.RingRoles
}

// EventBus returns the transactional event bus for this unit of work
func (u *unitOfWork) EventBus() service.EventPublisher {
	u.mustBegin()
	return u.transactionalBus
}

func (u *unitOfWork) mustBegin() {
	if !u.begun {
		panic("unit of work not started - call Begin() first")
	}
}
