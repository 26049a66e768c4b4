// Package redis implements the key-value fixture driver on go-redis.
//
// Every key the driver may touch is declared up front with a KeyType, which
// selects how fixtures are written:
//
//	driver, err := redis.NewDriver(client, map[string]redis.KeyType{
//	    "greeting": redis.KeyTypeString,
//	    "queue":    redis.KeyTypeList,
//	    "tags":     redis.KeyTypeSet,
//	    "profile":  redis.KeyTypeHash,
//	    "events":   redis.KeyTypeStream,
//	}, log)
//
// Hash and stream fixtures are field maps (map[string]string or
// map[string]any). Scalar, list and set fixtures are rendered to strings.
package redis
