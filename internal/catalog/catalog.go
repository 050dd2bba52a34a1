// internal/catalog/catalog.go
//
// The catalog adapter turns raw market records (one YAML file) into the
// immutable Store/Product model the rest of the app reads. Records are loaded
// once at startup and never mutated afterwards.

package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// StoreID is the canonical store identifier. Every boundary (catalog load,
// persisted collections, UI params) normalizes to this type.
type StoreID int

// Product is one sellable item, owned by exactly one store. Price is in won.
type Product struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int    `json:"price"`
	Image string `json:"img"`
}

// Store is one market shop with its derived product list.
type Store struct {
	ID          StoreID   `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	MainTags    []string  `json:"mainTags"`
	Rating      float64   `json:"rating"`
	OrderCount  int       `json:"orders"`
	Products    []Product `json:"products"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
}

// RawProduct optionally pins a real price for a named product.
type RawProduct struct {
	Name  string `yaml:"name"`
	Price int    `yaml:"price"`
}

// RawStore mirrors one record in the catalog file.
type RawStore struct {
	ID           int          `yaml:"id"`
	Name         string       `yaml:"name"`
	Category     string       `yaml:"category"`
	MainProducts string       `yaml:"main_products"`
	Description  string       `yaml:"description"`
	URL          string       `yaml:"url"`
	Rating       float64      `yaml:"rating,omitempty"`
	OrderCount   int          `yaml:"order_count,omitempty"`
	Products     []RawProduct `yaml:"products,omitempty"`
}

type catalogFile struct {
	Stores []RawStore `yaml:"stores"`
}

// Load reads and derives the catalog at path. A missing file falls back to
// the built-in demo catalog so a fresh checkout still has data to browse.
func Load(path string) ([]Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	var parsed catalogFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("catalog: parse %s: %w", path, err)
	}
	return Derive(parsed.Stores), nil
}

// Derive builds the Store model from raw records: products come from the
// comma-delimited main_products field, tags from the first two product names.
// Records may carry real prices/ratings; anything missing is filled with a
// deterministic demo value (a stub — production data should come from the
// record itself).
func Derive(raw []RawStore) []Store {
	stores := make([]Store, 0, len(raw))
	for _, rec := range raw {
		names := splitProducts(rec.MainProducts)
		priced := map[string]int{}
		for _, p := range rec.Products {
			if name := strings.TrimSpace(p.Name); name != "" && p.Price > 0 {
				priced[name] = p.Price
			}
		}

		products := make([]Product, 0, len(names))
		for i, name := range names {
			price, ok := priced[name]
			if !ok {
				price = demoPrice(rec.ID, i)
			}
			products = append(products, Product{
				ID:    fmt.Sprintf("%d-%d", rec.ID, i),
				Name:  name,
				Price: price,
				Image: productImage(name),
			})
		}

		tags := make([]string, 0, 2)
		for _, name := range names {
			if len(tags) == 2 {
				break
			}
			tags = append(tags, "#"+name)
		}

		rating := rec.Rating
		if rating == 0 {
			rating = demoRating(rec.ID)
		}
		orders := rec.OrderCount
		if orders == 0 {
			orders = demoOrderCount(rec.ID)
		}

		stores = append(stores, Store{
			ID:          StoreID(rec.ID),
			Name:        strings.TrimSpace(rec.Name),
			Category:    strings.TrimSpace(rec.Category),
			MainTags:    tags,
			Rating:      rating,
			OrderCount:  orders,
			Products:    products,
			Description: strings.TrimSpace(rec.Description),
			URL:         strings.TrimSpace(rec.URL),
		})
	}
	return stores
}

// Find returns the store with the given id.
func Find(stores []Store, id StoreID) (Store, bool) {
	for _, s := range stores {
		if s.ID == id {
			return s, true
		}
	}
	return Store{}, false
}

func splitProducts(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func productImage(name string) string {
	initial := "?"
	for _, r := range name {
		initial = string(r)
		break
	}
	return "placeholder:" + initial
}

// Demo fill-in values are derived from the record id so a catalog renders the
// same on every launch.

func demoPrice(storeID, index int) int {
	h := mix(storeID*31 + index)
	return (50 + h%250) * 100
}

func demoRating(storeID int) float64 {
	h := mix(storeID * 7)
	return 4.0 + float64(h%11)/10
}

func demoOrderCount(storeID int) int {
	h := mix(storeID * 13)
	return 10 + h%500
}

func mix(v int) int {
	h := uint32(v) //nolint:gosec
	h ^= h >> 16
	h *= 0x45d9f3b
	h ^= h >> 16
	return int(h & 0x7fffffff)
}
