package blobstore_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/playperu/moneybags/internal/blobstore"
	"github.com/playperu/moneybags/internal/database"
	"github.com/playperu/moneybags/internal/migrations"
)

func newSQLite(t *testing.T) *blobstore.SQLite {
	t.Helper()
	db, err := database.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := migrations.Run(context.Background(), db); err != nil {
		t.Fatalf("running migrations: %v", err)
	}
	return blobstore.NewSQLite(db)
}

func TestStores(t *testing.T) {
	stores := map[string]func(t *testing.T) blobstore.Store{
		"sqlite": func(t *testing.T) blobstore.Store { return newSQLite(t) },
		"memory": func(*testing.T) blobstore.Store { return blobstore.NewMemory() },
	}

	for name, open := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := open(t)

			if err := s.Ping(ctx); err != nil {
				t.Fatalf("ping: %v", err)
			}

			if _, err := s.Get(ctx, "game"); !errors.Is(err, blobstore.ErrNotFound) {
				t.Fatalf("get missing: err = %v, want ErrNotFound", err)
			}

			first := `{"players":[],"totalPassedGo":0}`
			if err := s.Put(ctx, "game", []byte(first)); err != nil {
				t.Fatalf("put: %v", err)
			}
			got, err := s.Get(ctx, "game")
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if string(got) != first {
				t.Errorf("get = %s, want %s", got, first)
			}

			second := `{"players":[],"totalPassedGo":3}`
			if err := s.Put(ctx, "game", []byte(second)); err != nil {
				t.Fatalf("overwrite: %v", err)
			}
			got, _ = s.Get(ctx, "game")
			if string(got) != second {
				t.Errorf("after overwrite = %s, want %s", got, second)
			}

			if _, err := s.Get(ctx, "other"); !errors.Is(err, blobstore.ErrNotFound) {
				t.Errorf("keys must be independent, got err = %v", err)
			}

			if err := s.Delete(ctx, "game"); err != nil {
				t.Fatalf("delete: %v", err)
			}
			if err := s.Delete(ctx, "game"); !errors.Is(err, blobstore.ErrNotFound) {
				t.Errorf("second delete: err = %v, want ErrNotFound", err)
			}
			if _, err := s.Get(ctx, "game"); !errors.Is(err, blobstore.ErrNotFound) {
				t.Errorf("get after delete: err = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestMemoryCopiesData(t *testing.T) {
	ctx := context.Background()
	m := blobstore.NewMemory()

	data := []byte(`{"a":1}`)
	if err := m.Put(ctx, "k", data); err != nil {
		t.Fatal(err)
	}
	data[5] = '2'

	got, _ := m.Get(ctx, "k")
	if string(got) != `{"a":1}` {
		t.Errorf("stored blob aliased caller slice: %s", got)
	}
}

func TestSQLiteRejectsInvalidJSON(t *testing.T) {
	s := newSQLite(t)
	if err := s.Put(context.Background(), "game", []byte("not json")); err == nil {
		t.Error("expected an error for a non-JSON blob")
	}
}

func TestOpenRedisUnreachable(t *testing.T) {
	if _, err := blobstore.OpenRedis(context.Background(), "redis://127.0.0.1:1/0"); err == nil {
		t.Error("expected an error connecting to a closed port")
	}
	if _, err := blobstore.OpenRedis(context.Background(), "http://nope"); err == nil {
		t.Error("expected an error for a non-redis url")
	}
}

func TestOpenSQLitePersists(t *testing.T) {
	ctx := context.Background()
	opts := blobstore.Options{
		Backend: blobstore.BackendSQLite,
		DBPath:  filepath.Join(t.TempDir(), "nested", "moneybags.db"),
	}

	s, closeFn, err := blobstore.Open(ctx, opts)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Put(ctx, "game", []byte(`{"totalPassedGo":2}`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}

	s, closeFn, err = blobstore.Open(ctx, opts)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer closeFn()

	got, err := s.Get(ctx, "game")
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if string(got) != `{"totalPassedGo":2}` {
		t.Errorf("got %s after reopen", got)
	}
}

func TestOpenBackends(t *testing.T) {
	ctx := context.Background()

	s, closeFn, err := blobstore.Open(ctx, blobstore.Options{Backend: blobstore.BackendMemory})
	if err != nil {
		t.Fatalf("open memory: %v", err)
	}
	if err := s.Ping(ctx); err != nil {
		t.Errorf("ping memory: %v", err)
	}
	if err := closeFn(); err != nil {
		t.Errorf("close memory: %v", err)
	}

	if _, _, err := blobstore.Open(ctx, blobstore.Options{Backend: "etcd"}); err == nil {
		t.Error("unknown backend: expected error")
	}
	if blobstore.Backend("etcd").Valid() || !blobstore.BackendRedis.Valid() {
		t.Error("Valid disagrees with the known backends")
	}
}
