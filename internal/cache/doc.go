// Package cache provides a small generic cache with a soft size limit.
//
//	kernels := cache.New[int, []float32](64)
//	k := kernels.GetOrCreate(key, func() []float32 { return build(key) })
//
// When the limit is exceeded, the least recently used quarter of the
// entries is evicted. Cache is safe for concurrent use and must not be
// copied after creation.
package cache
