package cache

import (
	"strings"
	"testing"
)

func TestDefaultKeyer_Deterministic(t *testing.T) {
	k := NewDefaultKeyer()

	params := map[string]any{
		"category": "analgesics",
		"region":   "northeast",
		"limit":    50,
	}

	key1, err := k.Key("semantic-search.query", params)
	if err != nil {
		t.Fatalf("Key() error = %v", err)
	}

	// Repeated calls with the same map must yield the same key
	for i := 0; i < 10; i++ {
		key2, err := k.Key("semantic-search.query", params)
		if err != nil {
			t.Fatalf("Key() error = %v", err)
		}
		if key1 != key2 {
			t.Fatalf("Key() not deterministic: %q vs %q", key1, key2)
		}
	}
}

func TestDefaultKeyer_Format(t *testing.T) {
	k := NewDefaultKeyer()

	key, err := k.Key("drug-db.lookup", map[string]any{"ndc": "0002-3227"})
	if err != nil {
		t.Fatalf("Key() error = %v", err)
	}

	if !strings.HasPrefix(key, "lastgood:drug-db.lookup:") {
		t.Errorf("Key() = %q, want 'lastgood:drug-db.lookup:' prefix", key)
	}

	parts := strings.Split(key, ":")
	if len(parts) != 3 {
		t.Fatalf("Key() = %q, want 3 colon-separated parts", key)
	}
	if len(parts[2]) != 16 {
		t.Errorf("hash part = %q, want 16 hex chars", parts[2])
	}
}

func TestDefaultKeyer_DifferentParamsDifferentKeys(t *testing.T) {
	k := NewDefaultKeyer()

	key1, _ := k.Key("search", map[string]any{"q": "aspirin"})
	key2, _ := k.Key("search", map[string]any{"q": "ibuprofen"})

	if key1 == key2 {
		t.Error("different params produced the same key")
	}
}

func TestDefaultKeyer_NilParams(t *testing.T) {
	k := NewDefaultKeyer()

	key1, err := k.Key("search", nil)
	if err != nil {
		t.Fatalf("Key(nil) error = %v", err)
	}
	key2, _ := k.Key("search", nil)
	if key1 != key2 {
		t.Error("Key(nil) not deterministic")
	}
}

func TestDefaultKeyer_NestedStructures(t *testing.T) {
	k := NewDefaultKeyer()

	params := map[string]any{
		"filters": map[string]any{
			"b": 2,
			"a": 1,
		},
		"fields": []any{"name", "ndc"},
	}

	key1, err := k.Key("search", params)
	if err != nil {
		t.Fatalf("Key() error = %v", err)
	}
	key2, _ := k.Key("search", params)
	if key1 != key2 {
		t.Error("nested params not deterministic")
	}
}
