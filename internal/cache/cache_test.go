package cache

import "testing"

func TestSwatchKey(t *testing.T) {
	base := "swatch:viridis"

	t.Run("noParams", func(t *testing.T) {
		got := SwatchKey("viridis", nil)
		if got != base {
			t.Fatalf("expected %q, got %q", base, got)
		}
	})

	t.Run("stableOrder", func(t *testing.T) {
		key1 := SwatchKey("viridis", map[string]string{"transform": "gray", "blend": "white"})
		key2 := SwatchKey("viridis", map[string]string{"blend": "white", "transform": "gray"})
		if key1 != key2 {
			t.Fatalf("expected stable key, got %q vs %q", key1, key2)
		}
		if key1 == base {
			t.Fatalf("expected parametrized key to differ from base, got %q", key1)
		}
	})

	t.Run("distinctParams", func(t *testing.T) {
		key1 := SwatchKey("viridis", map[string]string{"transform": "gray"})
		key2 := SwatchKey("viridis", map[string]string{"transform": "invert"})
		if key1 == key2 {
			t.Fatalf("expected distinct keys for distinct params, got %q", key1)
		}
	})
}

func TestLUTKey(t *testing.T) {
	if got := LUTKey("jet", 256); got != "lut:jet:256" {
		t.Fatalf("unexpected LUT key %q", got)
	}
}
