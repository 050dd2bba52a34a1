package router

import (
	"errors"
	"testing"

	"github.com/cheongnyamri/market/internal/storage"
)

func TestMapURLResolveDefault(t *testing.T) {
	gw := storage.NewMemoryGateway()
	m := NewMapURLStore(gw, "https://map.example.com/", "")
	if got := m.Resolve(); got != "https://map.example.com/" {
		t.Fatalf("resolve = %q", got)
	}
}

func TestMapURLOverrideWins(t *testing.T) {
	gw := storage.NewMemoryGateway()
	if err := gw.Set(keyMapURL, "https://stored.example.com/"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	m := NewMapURLStore(gw, "https://map.example.com/", "https://env.example.com/")
	if got := m.Resolve(); got != "https://env.example.com/" {
		t.Fatalf("resolve = %q, want override", got)
	}
}

func TestMapURLStoredBeatsDefault(t *testing.T) {
	gw := storage.NewMemoryGateway()
	if err := gw.Set(keyMapURL, "https://stored.example.com/"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	m := NewMapURLStore(gw, "https://map.example.com/", "")
	if got := m.Resolve(); got != "https://stored.example.com/" {
		t.Fatalf("resolve = %q, want stored", got)
	}
}

func TestMapURLSetNormalizesAndPersists(t *testing.T) {
	gw := storage.NewMemoryGateway()
	m := NewMapURLStore(gw, "https://map.example.com/", "")
	got, err := m.Set("https://naver.me/market?x=1#frag")
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	if got != "https://naver.me/market" {
		t.Fatalf("normalized = %q", got)
	}

	// A fresh store sees the persisted value.
	fresh := NewMapURLStore(gw, "https://map.example.com/", "")
	if r := fresh.Resolve(); r != "https://naver.me/market" {
		t.Fatalf("fresh resolve = %q", r)
	}
}

func TestMapURLSetRejectsRelative(t *testing.T) {
	gw := storage.NewMemoryGateway()
	m := NewMapURLStore(gw, "https://map.example.com/", "")
	for _, raw := range []string{"naver.me/abc", "ftp://example.com", "://bad", ""} {
		if _, err := m.Set(raw); !errors.Is(err, ErrInvalidMapURL) {
			t.Fatalf("Set(%q) err = %v, want ErrInvalidMapURL", raw, err)
		}
	}
	if got := m.Resolve(); got != "https://map.example.com/" {
		t.Fatalf("resolve after rejects = %q", got)
	}
}
