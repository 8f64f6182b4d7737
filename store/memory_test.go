package store

import (
	"context"
	"testing"
	"time"

	"github.com/rushteam/recipekit/core"
)

func TestMemoryStoreBasic(t *testing.T) {
	ctx := context.Background()
	ms := NewMemoryStore()
	defer ms.Close()

	if ms.Name() != "memory" {
		t.Errorf("Name = %q", ms.Name())
	}

	if err := ms.Set(ctx, "k1", []byte("v1")); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := ms.Get(ctx, "k1")
	if err != nil || string(got) != "v1" {
		t.Fatalf("get = (%q, %v)", got, err)
	}

	if _, err := ms.Get(ctx, "missing"); !core.IsStoreNotFound(err) {
		t.Errorf("missing key should be store NOT_FOUND, got %v", err)
	}

	if err := ms.Delete(ctx, "k1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := ms.Get(ctx, "k1"); !core.IsStoreNotFound(err) {
		t.Error("deleted key should be gone")
	}
}

func TestMemoryStoreBatch(t *testing.T) {
	ctx := context.Background()
	ms := NewMemoryStore()
	defer ms.Close()

	kvs := map[string][]byte{"a": []byte("1"), "b": []byte("2")}
	if err := ms.BatchSet(ctx, kvs); err != nil {
		t.Fatalf("batch set: %v", err)
	}

	got, err := ms.BatchGet(ctx, []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("batch get: %v", err)
	}
	if len(got) != 2 || string(got["a"]) != "1" || string(got["b"]) != "2" {
		t.Errorf("batch get = %v", got)
	}
}

func TestMemoryStoreTTL(t *testing.T) {
	ctx := context.Background()
	ms := NewMemoryStore()
	defer ms.Close()

	if err := ms.Set(ctx, "ephemeral", []byte("x"), 1); err != nil {
		t.Fatalf("set with ttl: %v", err)
	}
	if _, err := ms.Get(ctx, "ephemeral"); err != nil {
		t.Fatalf("key should exist before expiry: %v", err)
	}

	time.Sleep(1100 * time.Millisecond)
	if _, err := ms.Get(ctx, "ephemeral"); !core.IsStoreNotFound(err) {
		t.Errorf("expired key should be store NOT_FOUND, got %v", err)
	}
}

func TestMemoryStoreCloseStopsCleanup(t *testing.T) {
	ctx := context.Background()
	ms := NewMemoryStore()

	if err := ms.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := ms.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// 清理 goroutine 收到 done 后退出
	select {
	case <-ms.done:
	default:
		t.Fatal("done channel should be closed after Close")
	}

	// Close 幂等，已有数据仍可读
	if err := ms.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	got, err := ms.Get(ctx, "k")
	if err != nil || string(got) != "v" {
		t.Errorf("get after close = (%q, %v)", got, err)
	}
}

func TestMemoryStoreHash(t *testing.T) {
	ctx := context.Background()
	ms := NewMemoryStore()
	defer ms.Close()

	if err := ms.HSet(ctx, "ratings", "1", []byte(`{"1":5}`)); err != nil {
		t.Fatalf("hset: %v", err)
	}
	if err := ms.HSet(ctx, "ratings", "2", []byte(`{"2":4}`)); err != nil {
		t.Fatalf("hset: %v", err)
	}

	got, err := ms.HGet(ctx, "ratings", "1")
	if err != nil || string(got) != `{"1":5}` {
		t.Fatalf("hget = (%q, %v)", got, err)
	}
	if _, err := ms.HGet(ctx, "ratings", "9"); !core.IsStoreNotFound(err) {
		t.Errorf("missing field should be store NOT_FOUND, got %v", err)
	}

	all, err := ms.HGetAll(ctx, "ratings")
	if err != nil {
		t.Fatalf("hgetall: %v", err)
	}
	if len(all) != 2 || string(all["2"]) != `{"2":4}` {
		t.Errorf("hgetall = %v", all)
	}

	// Hash 与普通 key 空间互不可见
	if _, err := ms.Get(ctx, "ratings"); !core.IsStoreNotFound(err) {
		t.Error("hash key must not leak into the plain key space")
	}
}
