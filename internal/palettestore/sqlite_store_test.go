package palettestore

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/customcolour/colormaps/pkg/colormap"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(filepath.Join(t.TempDir(), "palettes.sqlite"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveGetRoundTrip(t *testing.T) {
	s := newTestStore(t)

	m := colormap.Grayscale(colormap.Jet, 16)
	if err := s.Save(m); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := s.Get("gjet")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Name() != "gjet" {
		t.Errorf("unexpected name %q", got.Name())
	}
	if !reflect.DeepEqual(got.Stops(), m.Stops()) {
		t.Fatal("stops changed across store round trip")
	}
}

func TestSaveReplaces(t *testing.T) {
	s := newTestStore(t)

	first := colormap.Gray.Renamed("mine")
	if err := s.Save(first); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	second := colormap.Invert(colormap.Gray).Renamed("mine")
	if err := s.Save(second); err != nil {
		t.Fatalf("re-Save failed: %v", err)
	}

	got, err := s.Get("mine")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !reflect.DeepEqual(got.Stops(), second.Stops()) {
		t.Fatal("save did not replace previous definition")
	}
}

func TestGetNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Get("absent")
	var nfe *colormap.NotFoundError
	if !errors.As(err, &nfe) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestListAndDelete(t *testing.T) {
	s := newTestStore(t)

	for _, m := range []*colormap.Map{
		colormap.Gray.Renamed("one"),
		colormap.Gray.Renamed("two"),
	} {
		if err := s.Save(m); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	maps, err := s.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(maps) != 2 {
		t.Fatalf("expected 2 maps, got %d", len(maps))
	}

	if err := s.Delete("one"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := s.Get("one"); err == nil {
		t.Fatal("deleted map still present")
	}

	var nfe *colormap.NotFoundError
	if err := s.Delete("one"); !errors.As(err, &nfe) {
		t.Fatalf("expected NotFoundError on double delete, got %v", err)
	}
}
