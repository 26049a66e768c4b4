// Package mongodb implements the document fixture driver on the official
// MongoDB Go driver.
//
// Each target name is a collection in a single database. Truncate drops the
// named collections and InsertFixtures writes a batch with one InsertMany.
// Fixtures loaded from JSON files are converted to bson.D with ToDocuments;
// {"$oid": "..."} values become ObjectIDs when ObjectIDDirective is
// registered on the decoding registry.
package mongodb
