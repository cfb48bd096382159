package save

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/samdwyer/profitpilgrim/internal/clock"
	"github.com/samdwyer/profitpilgrim/internal/engine"
	"github.com/samdwyer/profitpilgrim/internal/gamedata"
)

func openTestStore(t *testing.T, clk clock.Clock) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "saves.db"), clk)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPutAndGet(t *testing.T) {
	clk := clock.NewManual(time.UnixMilli(1_700_000_000_000))
	s := openTestStore(t, clk)
	ctx := context.Background()

	stored, err := s.Put(ctx, Slot{ID: "main", Name: "Main", Data: []byte(`{"a":1}`)})
	if err != nil {
		t.Fatalf("Put() error: %v", err)
	}
	if !stored.CreatedAt.Equal(clk.Now()) || !stored.UpdatedAt.Equal(clk.Now()) {
		t.Errorf("timestamps = %v/%v, want %v", stored.CreatedAt, stored.UpdatedAt, clk.Now())
	}

	got, err := s.Get(ctx, "main")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.Name != "Main" || string(got.Data) != `{"a":1}` {
		t.Errorf("Get() = %+v", got)
	}
}

func TestPutOverwritesAndKeepsCreatedAt(t *testing.T) {
	start := time.UnixMilli(1_700_000_000_000)
	clk := clock.NewManual(start)
	s := openTestStore(t, clk)
	ctx := context.Background()

	if _, err := s.Put(ctx, Slot{ID: "main", Name: "v1", Data: []byte("1")}); err != nil {
		t.Fatalf("Put() error: %v", err)
	}
	clk.Advance(time.Minute)
	stored, err := s.Put(ctx, Slot{ID: "main", Name: "v2", Data: []byte("2")})
	if err != nil {
		t.Fatalf("Put() error: %v", err)
	}

	if stored.Name != "v2" || string(stored.Data) != "2" {
		t.Errorf("Put() = %+v, want v2", stored)
	}
	if !stored.CreatedAt.Equal(start) {
		t.Errorf("CreatedAt = %v, want %v", stored.CreatedAt, start)
	}
	if !stored.UpdatedAt.Equal(start.Add(time.Minute)) {
		t.Errorf("UpdatedAt = %v, want %v", stored.UpdatedAt, start.Add(time.Minute))
	}
}

func TestPutAssignsUUID(t *testing.T) {
	s := openTestStore(t, nil)

	stored, err := s.Put(context.Background(), Slot{Name: "unnamed", Data: []byte("{}")})
	if err != nil {
		t.Fatalf("Put() error: %v", err)
	}
	if _, err := uuid.Parse(stored.ID); err != nil {
		t.Errorf("Put() ID = %q is not a UUID: %v", stored.ID, err)
	}
}

func TestListOrdersByUpdate(t *testing.T) {
	clk := clock.NewManual(time.UnixMilli(1_700_000_000_000))
	s := openTestStore(t, clk)
	ctx := context.Background()

	for _, id := range []string{"old", "mid", "new"} {
		if _, err := s.Put(ctx, Slot{ID: id, Name: id}); err != nil {
			t.Fatalf("Put(%s) error: %v", id, err)
		}
		clk.Advance(time.Second)
	}

	slots, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	want := []string{"new", "mid", "old"}
	if len(slots) != len(want) {
		t.Fatalf("List() returned %d slots, want %d", len(slots), len(want))
	}
	for i, id := range want {
		if slots[i].ID != id {
			t.Errorf("List()[%d] = %s, want %s", i, slots[i].ID, id)
		}
	}
}

func TestMissingSlot(t *testing.T) {
	s := openTestStore(t, nil)
	ctx := context.Background()

	if _, err := s.Get(ctx, "ghost"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(ghost) error = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, "ghost"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete(ghost) error = %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	s := openTestStore(t, nil)
	ctx := context.Background()

	if _, err := s.Put(ctx, Slot{ID: "main"}); err != nil {
		t.Fatalf("Put() error: %v", err)
	}
	if err := s.Delete(ctx, "main"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, err := s.Get(ctx, "main"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after Delete error = %v, want ErrNotFound", err)
	}
}

func TestEngineSaveSurvivesStore(t *testing.T) {
	clk := clock.NewManual(time.UnixMilli(1_700_000_000_000))
	s := openTestStore(t, clk)
	ctx := context.Background()

	e, err := engine.New(engine.Options{
		Catalog:    gamedata.MustLoadCatalog(),
		Clock:      clk,
		ClickValue: 5,
		IdleRate:   1,
	})
	if err != nil {
		t.Fatalf("engine.New() error: %v", err)
	}
	for i := 0; i < 4; i++ {
		e.Click()
	}
	e.PurchaseBusiness("farm")

	data, err := engine.EncodeSave(e.Save())
	if err != nil {
		t.Fatalf("EncodeSave() error: %v", err)
	}
	if _, err := s.Put(ctx, Slot{ID: "main", Data: data}); err != nil {
		t.Fatalf("Put() error: %v", err)
	}

	slot, err := s.Get(ctx, "main")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	decoded, err := engine.DecodeSave(slot.Data)
	if err != nil {
		t.Fatalf("DecodeSave() error: %v", err)
	}
	restored, err := engine.Restore(decoded, engine.Options{Catalog: gamedata.MustLoadCatalog(), Clock: clk})
	if err != nil {
		t.Fatalf("Restore() error: %v", err)
	}
	if restored.Currency().String() != "10" {
		t.Errorf("restored currency = %s, want 10", restored.Currency())
	}
}
