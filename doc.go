// Package dbfixtures seeds and resets test data across heterogeneous data
// stores before automated test runs.
//
// Every backend is wrapped in a Driver that can truncate named targets,
// insert fixtures for one target, and release its connections. DbFixtures
// fans work out to all registered drivers:
//
//	fx := dbfixtures.New([]dbfixtures.Driver{
//	    redisDriver,
//	    dbfixtures.Adapt[bson.D](mongoDriver),
//	    dbfixtures.Adapt[kafka.Message[string, Event]](kafkaDriver),
//	})
//	defer fx.CloseDrivers()
//
//	err := fx.InsertFixtures(ctx, []string{"users"}, map[string][]any{
//	    "users": {alice, bob},
//	})
//
// Backend drivers live in the redis, mongodb and kafka packages.
package dbfixtures
