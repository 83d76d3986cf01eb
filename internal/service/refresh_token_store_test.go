package service

import (
	"testing"
	"time"
)

func TestMemoryRefreshTokenStore(t *testing.T) {
	t.Run("store exists revoke", func(t *testing.T) {
		store := NewMemoryRefreshTokenStore()
		if err := store.Store("jti-1", "u-1", time.Hour); err != nil {
			t.Fatalf("store failed: %v", err)
		}

		ok, err := store.Exists("jti-1")
		if err != nil || !ok {
			t.Fatalf("exists = %v, %v; want true", ok, err)
		}

		if err := store.Revoke("jti-1"); err != nil {
			t.Fatalf("revoke failed: %v", err)
		}
		ok, _ = store.Exists("jti-1")
		if ok {
			t.Fatalf("revoked jti must not exist")
		}
	})

	t.Run("expired ttl", func(t *testing.T) {
		store := NewMemoryRefreshTokenStore()
		if err := store.Store("jti-2", "u-1", -time.Second); err != nil {
			t.Fatalf("store failed: %v", err)
		}
		ok, _ := store.Exists("jti-2")
		if ok {
			t.Fatalf("expired jti must not exist")
		}
	})

	t.Run("empty jti is a no-op", func(t *testing.T) {
		store := NewMemoryRefreshTokenStore()
		if err := store.Store("", "u-1", time.Hour); err != nil {
			t.Fatalf("store failed: %v", err)
		}
		ok, _ := store.Exists("")
		if ok {
			t.Fatalf("empty jti must not exist")
		}
	})
}
