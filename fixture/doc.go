// Package fixture reads JSON fixture files.
//
// A path may name a file, a directory of .json files or a glob. Several
// files are merged in name order; for keys present in more than one file
// the later file wins, merging nested objects key by key. Objects keep their
// field order, so documents written to MongoDB keep the order of the file.
//
// Fixture files are sectioned by backend:
//
//	{
//	  "redis":   {"queue": ["a", "b"]},
//	  "mongodb": {"users": [{"_id": {"$oid": true}, "name": "ada"}]},
//	  "kafka":   {"events": [{"key": "u1", "value": {"type": "created"}}]}
//	}
package fixture
