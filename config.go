// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package sdd

// Default table and cache sizes, chosen to be large enough for small test
// diagrams without over-allocating. A unique table grows past its initial
// size as needed (see unique.go); ErrOutOfMemory is returned only when the
// prototype-node table would exceed the cap set with MaxUniqueTableSize (0
// meaning "no cap"). A cache size is a capacity: once an operation cache or
// the arc-view cache holds that many entries, further results are not
// stored (see opcache.go and arcs.go).
const (
	_DEFAULTUNIQUESIZE   = 1009
	_DEFAULTCACHESIZE    = 1009
	_DEFAULTARCCACHESIZE = 1009
)

// configs stores the values of the different parameters a Manager is built
// with. Unexported: configured only through the functional options below,
// passed to New.
type configs struct {
	sddUniqueSize    int // initial size of the prototype-node unique table
	envUniqueSize    int // initial size of the environment unique table
	valuesUniqueSize int // initial size of the value-set unique table

	unionCacheSize        int // capacity of the union operation cache
	intersectionCacheSize int // capacity of the intersection operation cache
	differenceCacheSize   int // capacity of the difference operation cache
	arcViewCacheSize      int // capacity of the arc-view reconstruction cache

	maxSddUnique int // hard cap on the prototype-node unique table (0: no cap)
}

func makeconfigs() *configs {
	return &configs{
		sddUniqueSize:         _DEFAULTUNIQUESIZE,
		envUniqueSize:         _DEFAULTUNIQUESIZE,
		valuesUniqueSize:      _DEFAULTUNIQUESIZE,
		unionCacheSize:        _DEFAULTCACHESIZE,
		intersectionCacheSize: _DEFAULTCACHESIZE,
		differenceCacheSize:   _DEFAULTCACHESIZE,
		arcViewCacheSize:      _DEFAULTARCCACHESIZE,
	}
}

// UniqueTableSize is a configuration option (function). Used as a parameter
// in New, it sets the initial size of the prototype-node unique table
// (sdd_unique_table_size). The table grows as needed; this is only a sizing
// hint to avoid early resizes.
func UniqueTableSize(size int) func(*configs) {
	return func(c *configs) {
		if size > 0 {
			c.sddUniqueSize = size
		}
	}
}

// MaxUniqueTableSize is a configuration option (function). Used as a
// parameter in New, it caps the number of live entries the prototype-node
// unique table may hold. An intern request that would exceed the cap fails
// with ErrOutOfMemory instead of growing the table. The default value (0)
// means no cap.
func MaxUniqueTableSize(size int) func(*configs) {
	return func(c *configs) {
		c.maxSddUnique = size
	}
}

// EnvUniqueTableSize is a configuration option (function). Used as a
// parameter in New, it sets the initial size of the environment unique
// table (env_unique_table_size).
func EnvUniqueTableSize(size int) func(*configs) {
	return func(c *configs) {
		if size > 0 {
			c.envUniqueSize = size
		}
	}
}

// ValuesUniqueTableSize is a configuration option (function). Used as a
// parameter in New, it sets the initial size of the value-set unique table
// (values_unique_table_size).
func ValuesUniqueTableSize(size int) func(*configs) {
	return func(c *configs) {
		if size > 0 {
			c.valuesUniqueSize = size
		}
	}
}

// UnionCacheSize is a configuration option (function). Used as a parameter
// in New, it sets the capacity of the union operation cache
// (union_cache_size).
func UnionCacheSize(size int) func(*configs) {
	return func(c *configs) {
		if size > 0 {
			c.unionCacheSize = size
		}
	}
}

// IntersectionCacheSize is a configuration option (function). Used as a
// parameter in New, it sets the capacity of the intersection operation
// cache (intersection_cache_size).
func IntersectionCacheSize(size int) func(*configs) {
	return func(c *configs) {
		if size > 0 {
			c.intersectionCacheSize = size
		}
	}
}

// DifferenceCacheSize is a configuration option (function). Used as a
// parameter in New, it sets the capacity of the difference operation
// cache (difference_cache_size).
func DifferenceCacheSize(size int) func(*configs) {
	return func(c *configs) {
		if size > 0 {
			c.differenceCacheSize = size
		}
	}
}

// ArcViewCacheSize is a configuration option (function). Used as a parameter
// in New, it sets the capacity of the arc-view reconstruction cache
// (arc_view_cache_size).
func ArcViewCacheSize(size int) func(*configs) {
	return func(c *configs) {
		if size > 0 {
			c.arcViewCacheSize = size
		}
	}
}
