package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/kbukum/dbfixtures/errors"
	"github.com/kbukum/dbfixtures/logger"
)

var testKeys = map[string]KeyType{
	"greeting": KeyTypeString,
	"queue":    KeyTypeList,
	"tags":     KeyTypeSet,
	"profile":  KeyTypeHash,
	"events":   KeyTypeStream,
}

// newTestDriver creates a Driver backed by miniredis for testing.
func newTestDriver(t *testing.T) (*Driver, *miniredis.Miniredis) {
	t.Helper()
	mini, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(func() { mini.Close() })

	client := goredis.NewClient(&goredis.Options{Addr: mini.Addr()})
	d, err := NewDriver(client, testKeys, logger.NewNop())
	if err != nil {
		t.Fatalf("NewDriver failed: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d, mini
}

func TestInsert_String_StoresFirstOnly(t *testing.T) {
	d, mini := newTestDriver(t)

	if err := d.InsertFixtures(context.Background(), "greeting", []any{"hello", "ignored"}); err != nil {
		t.Fatalf("InsertFixtures failed: %v", err)
	}
	got, err := mini.Get("greeting")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != "hello" {
		t.Errorf("expected hello, got %q", got)
	}
}

func TestInsert_List_SingleLPush(t *testing.T) {
	d, mini := newTestDriver(t)

	if err := d.InsertFixtures(context.Background(), "queue", []any{"a", "b", 3}); err != nil {
		t.Fatalf("InsertFixtures failed: %v", err)
	}
	got, err := mini.List("queue")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	want := []string{"3", "b", "a"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestInsert_Set(t *testing.T) {
	d, mini := newTestDriver(t)

	if err := d.InsertFixtures(context.Background(), "tags", []any{"x", "y", "x"}); err != nil {
		t.Fatalf("InsertFixtures failed: %v", err)
	}
	members, err := mini.Members("tags")
	if err != nil {
		t.Fatalf("Members failed: %v", err)
	}
	if len(members) != 2 || members[0] != "x" || members[1] != "y" {
		t.Errorf("expected [x y], got %v", members)
	}
}

func TestInsert_Hash_LastWriteWins(t *testing.T) {
	d, mini := newTestDriver(t)

	err := d.InsertFixtures(context.Background(), "profile", []any{
		map[string]string{"name": "ada", "role": "admin"},
		map[string]any{"role": "owner", "age": 36},
	})
	if err != nil {
		t.Fatalf("InsertFixtures failed: %v", err)
	}
	if got := mini.HGet("profile", "name"); got != "ada" {
		t.Errorf("expected name=ada, got %q", got)
	}
	if got := mini.HGet("profile", "role"); got != "owner" {
		t.Errorf("expected role=owner, got %q", got)
	}
	if got := mini.HGet("profile", "age"); got != "36" {
		t.Errorf("expected age=36, got %q", got)
	}
}

func TestInsert_Stream_OneEntryPerFixture(t *testing.T) {
	d, mini := newTestDriver(t)

	err := d.InsertFixtures(context.Background(), "events", []any{
		map[string]string{"type": "created", "id": "1"},
		map[string]string{"type": "deleted", "id": "1"},
	})
	if err != nil {
		t.Fatalf("InsertFixtures failed: %v", err)
	}
	entries, err := mini.Stream("events")
	if err != nil {
		t.Fatalf("Stream failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	want := [][]string{
		{"id", "1", "type", "created"},
		{"id", "1", "type", "deleted"},
	}
	for i, e := range entries {
		if len(e.Values) != len(want[i]) {
			t.Fatalf("entry %d: expected %v, got %v", i, want[i], e.Values)
		}
		for j := range want[i] {
			if e.Values[j] != want[i][j] {
				t.Errorf("entry %d: expected %v, got %v", i, want[i], e.Values)
				break
			}
		}
	}
}

func TestInsert_EmptyIsNoop(t *testing.T) {
	d, mini := newTestDriver(t)

	for key := range testKeys {
		if err := d.InsertFixtures(context.Background(), key, nil); err != nil {
			t.Fatalf("%s: expected no error, got %v", key, err)
		}
		if mini.Exists(key) {
			t.Errorf("%s: expected key to be absent", key)
		}
	}
	if err := d.InsertFixtures(context.Background(), "undeclared", []any{}); err != nil {
		t.Errorf("expected empty insert on undeclared key to succeed, got %v", err)
	}
}

func TestInsert_UndeclaredKey(t *testing.T) {
	// Nothing listens on this address: any backend call would fail as a
	// backend error instead of a configuration error.
	client := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	d, err := NewDriver(client, testKeys, nil)
	if err != nil {
		t.Fatalf("NewDriver failed: %v", err)
	}
	defer d.Close()

	err = d.InsertFixtures(context.Background(), "sessions", []any{"x"})
	if !errors.IsConfiguration(err) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestInsert_HashRejectsNonMap(t *testing.T) {
	d, mini := newTestDriver(t)

	err := d.InsertFixtures(context.Background(), "profile", []any{"not a map"})
	if !errors.IsInvalidFixture(err) {
		t.Fatalf("expected invalid fixture error, got %v", err)
	}
	err = d.InsertFixtures(context.Background(), "events", []any{map[string]string{}})
	if !errors.IsInvalidFixture(err) {
		t.Fatalf("expected invalid fixture error for empty map, got %v", err)
	}
	if mini.Exists("profile") || mini.Exists("events") {
		t.Error("expected no keys written")
	}
}

func TestTruncate(t *testing.T) {
	d, mini := newTestDriver(t)
	ctx := context.Background()

	if err := d.InsertFixtures(ctx, "tags", []any{"x"}); err != nil {
		t.Fatalf("InsertFixtures failed: %v", err)
	}
	if err := mini.Set("unrelated", "keep"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if err := d.Truncate(ctx, []string{"tags", "missing"}); err != nil {
		t.Fatalf("Truncate failed: %v", err)
	}
	if mini.Exists("tags") {
		t.Error("expected tags to be deleted")
	}
	if !mini.Exists("unrelated") {
		t.Error("expected unrelated key to survive")
	}
	if err := d.Truncate(ctx, nil); err != nil {
		t.Errorf("expected empty truncate to succeed, got %v", err)
	}
}

func TestTruncate_BackendError(t *testing.T) {
	d, mini := newTestDriver(t)
	mini.Close()

	err := d.Truncate(context.Background(), []string{"tags"})
	if !errors.IsBackend(err) {
		t.Fatalf("expected backend error, got %v", err)
	}
}

func TestNewDriver_InvalidKeyType(t *testing.T) {
	client := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:1"})
	defer client.Close()

	_, err := NewDriver(client, map[string]KeyType{"bad": KeyType(42)}, nil)
	if !errors.IsConfiguration(err) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestNewDriver_CopiesDeclaration(t *testing.T) {
	decl := map[string]KeyType{"a": KeyTypeList}
	client := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:1"})
	d, err := NewDriver(client, decl, nil)
	if err != nil {
		t.Fatalf("NewDriver failed: %v", err)
	}
	defer d.Close()

	decl["b"] = KeyTypeSet
	if _, ok := d.KeyType("b"); ok {
		t.Error("expected later declaration changes to be ignored")
	}
}
