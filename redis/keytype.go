package redis

import (
	"fmt"
	"strings"
)

// KeyType selects how fixtures are written to a key.
type KeyType int

const (
	// KeyTypeString stores the first fixture with SET.
	KeyTypeString KeyType = iota + 1
	// KeyTypeList pushes every fixture with a single LPUSH.
	KeyTypeList
	// KeyTypeSet adds every fixture with a single SADD.
	KeyTypeSet
	// KeyTypeHash writes each fixture's fields with HSET.
	KeyTypeHash
	// KeyTypeStream appends each fixture as one stream entry.
	KeyTypeStream
)

var keyTypeNames = map[KeyType]string{
	KeyTypeString: "string",
	KeyTypeList:   "list",
	KeyTypeSet:    "set",
	KeyTypeHash:   "hash",
	KeyTypeStream: "stream",
}

// String returns the configuration name of the key type.
func (t KeyType) String() string {
	if name, ok := keyTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("KeyType(%d)", int(t))
}

// Valid reports whether t is one of the declared key types.
func (t KeyType) Valid() bool {
	_, ok := keyTypeNames[t]
	return ok
}

// ParseKeyType parses a key type name as used in configuration files.
// "scalar" is accepted as an alias of "string".
func ParseKeyType(s string) (KeyType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "string", "scalar":
		return KeyTypeString, nil
	case "list":
		return KeyTypeList, nil
	case "set":
		return KeyTypeSet, nil
	case "hash":
		return KeyTypeHash, nil
	case "stream":
		return KeyTypeStream, nil
	}
	return 0, fmt.Errorf("unknown redis key type %q", s)
}
