// Package cache provides a small generic key-value store with an in-memory
// LRU backend and a Redis backend behind one [Cache] interface.
//
// The editor keeps per-visitor drafts in it: the memory store for local
// runs, Redis when several server instances share state.
//
//	store, err := cache.New[string](cfg, redisClient)
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	_ = store.Set(ctx, "01J...:body", body, 0) // zero TTL = default TTL
//	body, err := cache.Lookup(ctx, store, "01J...:body", defaultBody)
//
// TTL semantics for Set:
//   - Positive duration: entry expires after this duration
//   - Zero: use the configured default TTL
//   - Negative: entry never expires
//
// Values pass through a [Codec] on the Redis backend. [JSONCodec] stores
// strings verbatim and everything else as JSON.
package cache
