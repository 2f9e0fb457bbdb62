// Package cache is a small generic TTL cache used for short-lived login
// state and parsed provider secrets.
//
// [Memory] keeps entries in process with optional LRU bounds and a janitor.
// [Redis] encodes entries with a [Codec] (JSON by default) and relies on key
// expiry, so every instance behind a load balancer sees the same state:
//
//	sessions := cache.NewRedis[authsession.Record](client, nil, cache.WithPrefix("oauth:state"))
//
// A [Loader] adds read-through loading where concurrent misses on one key
// share a single call:
//
//	secrets := cache.NewLoader[Secret](cache.NewMemory[Secret]())
//	s, err := secrets.Load(ctx, "oauth/google", func(ctx context.Context) (Secret, time.Duration, error) {
//	    s, err := fetch(ctx)
//	    return s, 5 * time.Minute, err
//	})
package cache
