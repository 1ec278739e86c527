package service

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/customcolour/colormaps/internal/cache"
	"github.com/customcolour/colormaps/internal/palettestore"
	"github.com/customcolour/colormaps/internal/render"
	"github.com/customcolour/colormaps/pkg/colormap"
)

func newTestService(t *testing.T, withStore bool) *SwatchService {
	t.Helper()

	cacheManager, err := cache.NewManager(cache.Config{
		SwatchCacheSizeMB: 16,
		SwatchTTL:         1 * time.Minute,
		LUTCacheSize:      16,
	})
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}
	t.Cleanup(func() { cacheManager.Close() })

	var store *palettestore.Store
	if withStore {
		store, err = palettestore.NewStore(filepath.Join(t.TempDir(), "palettes.sqlite"))
		if err != nil {
			t.Fatalf("failed to create store: %v", err)
		}
		t.Cleanup(func() { store.Close() })
	}

	return NewSwatchService(SwatchServiceConfig{
		Registry: colormap.Builtin(),
		Store:    store,
		Cache:    cacheManager,
		Renderer: render.NewSwatchRenderer(render.Config{Width: 64, Height: 8}),
	})
}

func TestDerive(t *testing.T) {
	svc := newTestService(t, false)

	t.Run("plain", func(t *testing.T) {
		m, err := svc.Derive("viridis", TransformOptions{})
		if err != nil {
			t.Fatalf("Derive failed: %v", err)
		}
		if m.Name() != "viridis" {
			t.Errorf("unexpected name %q", m.Name())
		}
	})

	t.Run("chain", func(t *testing.T) {
		m, err := svc.Derive("jet", TransformOptions{Transforms: []string{"reverse", "gray"}})
		if err != nil {
			t.Fatalf("Derive failed: %v", err)
		}
		if m.Name() != "gjet_r" {
			t.Errorf("unexpected name %q", m.Name())
		}
		c := m.At(0.3)
		if c.R != c.G || c.G != c.B {
			t.Errorf("grayscale output has unequal channels: %#v", c)
		}
	})

	t.Run("blendWhiteMid", func(t *testing.T) {
		m, err := svc.Derive("jet", TransformOptions{Blend: "white", Loc: "mid"})
		if err != nil {
			t.Fatalf("Derive failed: %v", err)
		}
		if m.Name() != "wjet" {
			t.Errorf("unexpected name %q", m.Name())
		}
	})

	t.Run("blendHex", func(t *testing.T) {
		m, err := svc.Derive("jet", TransformOptions{Blend: "#ffff00", Loc: "0.2"})
		if err != nil {
			t.Fatalf("Derive failed: %v", err)
		}
		if m.Name() != "ajet" {
			t.Errorf("unexpected name %q", m.Name())
		}
	})

	t.Run("unknownTransform", func(t *testing.T) {
		if _, err := svc.Derive("jet", TransformOptions{Transforms: []string{"sepia"}}); err == nil {
			t.Fatal("expected error for unknown transform")
		}
	})

	t.Run("badLoc", func(t *testing.T) {
		if _, err := svc.Derive("jet", TransformOptions{Blend: "white", Loc: "far"}); err == nil {
			t.Fatal("expected error for bad loc")
		}
	})

	t.Run("notFound", func(t *testing.T) {
		_, err := svc.Derive("nonexistent", TransformOptions{})
		var nfe *colormap.NotFoundError
		if !errors.As(err, &nfe) {
			t.Fatalf("expected NotFoundError, got %v", err)
		}
	})
}

func TestSwatchCached(t *testing.T) {
	svc := newTestService(t, false)

	first, err := svc.Swatch("viridis", TransformOptions{})
	if err != nil {
		t.Fatalf("Swatch failed: %v", err)
	}
	second, err := svc.Swatch("viridis", TransformOptions{})
	if err != nil {
		t.Fatalf("cached Swatch failed: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatal("cached swatch differs from rendered swatch")
	}
}

func TestLUT(t *testing.T) {
	svc := newTestService(t, false)

	data, err := svc.LUT("gray", 8)
	if err != nil {
		t.Fatalf("LUT failed: %v", err)
	}

	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("LUT is not valid gzip: %v", err)
	}
	raw, err := io.ReadAll(gz)
	if err != nil {
		t.Fatalf("failed to decompress LUT: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(raw)).ReadAll()
	if err != nil {
		t.Fatalf("LUT is not valid CSV: %v", err)
	}
	if len(records) != 9 { // header + 8 rows
		t.Fatalf("expected 9 records, got %d", len(records))
	}
	if records[0][0] != "t" || records[0][4] != "a" {
		t.Fatalf("unexpected header %v", records[0])
	}
	if records[1][1] != "0" || records[8][1] != "1" {
		t.Fatalf("unexpected gray endpoints: %v .. %v", records[1], records[8])
	}
}

func TestSaveDelete(t *testing.T) {
	svc := newTestService(t, true)

	custom := colormap.Grayscale(colormap.Jet, 16).Renamed("mygray")
	if err := svc.Save(custom); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	m, err := svc.Lookup("mygray")
	if err != nil {
		t.Fatalf("Lookup of saved map failed: %v", err)
	}
	if m.Name() != "mygray" {
		t.Errorf("unexpected name %q", m.Name())
	}

	entries, err := svc.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	found := false
	for _, e := range entries {
		if e.Name == "mygray" && !e.Builtin {
			found = true
		}
	}
	if !found {
		t.Fatal("saved map missing from list")
	}

	if err := svc.Save(colormap.Gray.Renamed("viridis")); !errors.Is(err, ErrReadOnly) {
		t.Fatalf("expected ErrReadOnly, got %v", err)
	}
	if err := svc.Delete("viridis"); !errors.Is(err, ErrReadOnly) {
		t.Fatalf("expected ErrReadOnly, got %v", err)
	}

	if err := svc.Delete("mygray"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := svc.Lookup("mygray"); err == nil {
		t.Fatal("deleted map still resolvable")
	}
}
