// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package sdd

// hashCombine folds x into seed the way a hash over a sequence of fields is
// built up field by field: order-sensitive, so that swapping two fields of
// different hash generally changes the result. Same constant (the fractional part of
// the golden ratio, scaled to 32 bits) and shifts as the classic
// boost::hash_combine formula.
func hashCombine(seed, x uint64) uint64 {
	return seed ^ (x + 0x9e3779b9 + (seed << 6) + (seed >> 2))
}

// hashInt hashes a signed int through a fixed-width conversion so it mixes
// the same way regardless of platform int size.
func hashInt(v int) uint64 {
	return uint64(int64(v))
}
