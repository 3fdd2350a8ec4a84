// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package sdd

import (
	"log"

	"github.com/google/uuid"
)

// Manager owns every unique table and operation cache a family of diagrams
// is built from. A Manager is parameterized by the Value type its diagrams
// are labeled with and the Domain implementing that type's delta-group
// contract; all diagrams exchanged between operations must come from the
// same Manager — mixing Handles from two Managers is a programming error
// this package makes no attempt to detect, exactly as the data model
// describes (no hidden manager lookups, no global registry).
//
// A Manager is not safe for concurrent use by multiple goroutines; it is
// single-threaded per instance. Independent Manager instances may be driven
// concurrently from separate goroutines without any shared state between
// them.
type Manager[V Value[V]] struct {
	id     uuid.UUID
	domain Domain[V]
	cfg    *configs

	valuesTable *uniqueTable[[]V]
	envTable    *uniqueTable[envData[V]]
	sddTable    *uniqueTable[protoNodeData[V]]

	unionCache        *opCache[V]
	intersectionCache *opCache[V]
	differenceCache   *opCache[V]
	arcCache          *arcView[V]

	baseEnv Env[V]

	closed bool
}

// New creates a Manager for diagrams labeled with V, using domain for the
// delta-group operations the kernel needs (value shifting, displacement
// factoring). Options configure the initial unique-table sizes and the cache
// capacities;
// see config.go.
func New[V Value[V]](domain Domain[V], opts ...func(*configs)) *Manager[V] {
	cfg := makeconfigs()
	for _, opt := range opts {
		opt(cfg)
	}
	m := &Manager[V]{
		id:     uuid.New(),
		domain: domain,
		cfg:    cfg,
	}
	m.valuesTable = newUniqueTable[[]V]("values", cfg.valuesUniqueSize, 0, hashValueSlice[V], equalValueSlices[V])
	m.envTable = newUniqueTable[envData[V]]("env", cfg.envUniqueSize, 0, hashEnvData[V], equalEnvData[V])
	m.sddTable = newUniqueTable[protoNodeData[V]]("sdd", cfg.sddUniqueSize, cfg.maxSddUnique, hashProtoNodeData[V], equalProtoNodeData[V])
	m.unionCache = newOpCache[V]("union", cfg.unionCacheSize)
	m.intersectionCache = newOpCache[V]("intersection", cfg.intersectionCacheSize)
	m.differenceCache = newOpCache[V]("difference", cfg.differenceCacheSize)
	m.arcCache = newArcView[V](cfg.arcViewCacheSize)
	// The level-0 environment is never produced by unify (every real node
	// sits at level >= 1), but it is kept permanently interned from startup
	// so there is always exactly one canonical "no displacement" environment
	// available, and so that Close's dangling check has a well-known
	// baseline entry to exclude rather than expecting an empty table.
	base, err := m.emptyEnv()
	if err != nil {
		panic(err)
	}
	m.baseEnv = base
	if _DEBUG {
		log.Printf("sdd: manager %s initialized", m.id)
	}
	return m
}

// ID returns the Manager's unique identifier, stable for its lifetime.
// Useful for telling apart log lines and metrics from several Managers
// running in the same process.
func (m *Manager[V]) ID() uuid.UUID {
	return m.id
}

// checkOpen returns ErrManagerUninitialized once the Manager has been
// closed. Only Close calls it; the other exported operations do not check
// whether the Manager is still open.
func (m *Manager[V]) checkOpen() error {
	if m == nil || m.closed {
		return ErrManagerUninitialized
	}
	return nil
}

// Close tears the Manager down. It fails with ErrDanglingOnTeardown if any
// Handle the caller holds has not been released (gc.go, Manager.Release):
// a Manager does not silently drop live diagrams on teardown. Operation and
// arc-view caches are drained first, dropping their own owning references,
// so a manager that has only ever had its externally held handles released
// tears down clean regardless of how much internal caching happened along
// the way.
func (m *Manager[V]) Close() error {
	if err := m.checkOpen(); err != nil {
		return err
	}
	m.unionCache.release(m)
	m.intersectionCache.release(m)
	m.differenceCache.release(m)
	m.arcCache.release(m)

	dangling := len(m.sddTable.dangling()) + len(m.valuesTable.dangling())
	for _, e := range m.envTable.dangling() {
		if e != m.baseEnv.entry {
			dangling++
		}
	}
	if dangling > 0 {
		return danglingOnTeardownError(dangling)
	}
	m.closed = true
	if _DEBUG {
		log.Printf("sdd: manager %s torn down", m.id)
	}
	return nil
}
