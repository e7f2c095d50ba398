// Package redis provides a Redis client wrapper built on go-redis with
// structured logging and configuration conventions.
//
// TypedStore layers generic JSON-serialized get/set operations on top of
// the client. Session persistence uses it with the "aurascribe:session"
// key prefix:
//
//	store := redis.NewTypedStore[session.Session](client, "aurascribe:session")
//	store.Save(ctx, id, &sess, 24*time.Hour)
package redis
