package persist

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/angelmondragon/lavka-miniapp/pkg/blobstore"
	"github.com/angelmondragon/lavka-miniapp/pkg/logger"
)

type countingRecorder struct {
	stores []string
}

func (c *countingRecorder) IncPersistFailure(store string) {
	c.stores = append(c.stores, store)
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("backend down")
}

func (failingStore) Put(context.Context, string, []byte) error {
	return errors.New("backend down")
}

func TestMirrorRoundTrip(t *testing.T) {
	ctx := context.Background()
	blobs := blobstore.NewMemory()
	m := NewMirror("orders", "lavka-orders", Params{Blobs: blobs})

	var empty []string
	if status := m.Load(ctx, &empty); status != StatusMissing {
		t.Fatalf("expected missing, got %v", status)
	}

	m.Save(ctx, []string{"a", "b"})
	var got []string
	if status := m.Load(ctx, &got); status != StatusLoaded {
		t.Fatalf("expected loaded, got %v", status)
	}
	if len(got) != 2 || got[0] != "a" {
		t.Fatalf("unexpected snapshot %v", got)
	}
}

func TestMirrorDiscardsMalformedSnapshot(t *testing.T) {
	ctx := context.Background()
	blobs := blobstore.NewMemory()
	if err := blobs.Put(ctx, "lavka-favorites", []byte("{not json")); err != nil {
		t.Fatalf("seed blob: %v", err)
	}
	buf := &bytes.Buffer{}
	rec := &countingRecorder{}
	m := NewMirror("favorites", "lavka-favorites", Params{
		Blobs:   blobs,
		Logger:  logger.New(logger.Options{ServiceName: "test", Output: buf}),
		Metrics: rec,
	})

	var got []string
	if status := m.Load(ctx, &got); status != StatusDiscarded {
		t.Fatalf("expected discarded, got %v", status)
	}
	if got != nil {
		t.Fatalf("destination should stay empty, got %v", got)
	}
	if len(rec.stores) != 1 || rec.stores[0] != "favorites" {
		t.Fatalf("expected one failure for favorites, got %v", rec.stores)
	}
	if !bytes.Contains(buf.Bytes(), []byte("persist.load_discarded")) {
		t.Fatalf("expected warning to be logged; entry=%s", buf.String())
	}
}

func TestMirrorSaveFailureIsSwallowed(t *testing.T) {
	rec := &countingRecorder{}
	m := NewMirror("reviews", "lavka-reviews", Params{Blobs: failingStore{}, Metrics: rec})

	m.Save(context.Background(), []int{1})

	if len(rec.stores) != 1 {
		t.Fatalf("expected save failure to be counted, got %v", rec.stores)
	}
}

func TestMirrorWithoutBackend(t *testing.T) {
	m := NewMirror("orders", "lavka-orders", Params{})
	m.Save(context.Background(), []int{1})
	var got []int
	if status := m.Load(context.Background(), &got); status != StatusMissing {
		t.Fatalf("expected missing without backend, got %v", status)
	}
}
