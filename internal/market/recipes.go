package market

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cheongnyamri/market/internal/storage"
)

// Sentinel errors for recipe mutations. Validation failures surface as
// blocking messages; a missing id is a reported no-op.
var (
	ErrRecipeName        = errors.New("recipe: name is required")
	ErrRecipeIngredients = errors.New("recipe: at least one ingredient is required")
	ErrRecipeNotFound    = errors.New("recipe: not found")
)

// Ingredient is one recipe line: what to buy and how to ask for it.
type Ingredient struct {
	Name    string `json:"name"`
	Request string `json:"request"`
}

// Recipe is a named shopping list the smart search can replay.
type Recipe struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Ingredients []Ingredient `json:"ingredients"`
}

// Recipes is the persisted recipe collection with full CRUD.
type Recipes struct {
	gw   storage.Gateway
	now  func() time.Time
	list []Recipe
}

// NewRecipes builds the store around a gateway.
func NewRecipes(gw storage.Gateway, now func() time.Time) *Recipes {
	if now == nil {
		now = time.Now
	}
	return &Recipes{gw: gw, now: now}
}

// Load reads the persisted collection. Corrupt data resets to empty.
func (r *Recipes) Load() error {
	r.list = nil
	if _, err := r.gw.Get(keyRecipes, &r.list); err != nil {
		if errors.Is(err, storage.ErrCorrupt) {
			r.list = nil
			return nil
		}
		return err
	}
	return nil
}

// Save writes the full collection back.
func (r *Recipes) Save() error {
	return r.gw.Set(keyRecipes, r.list)
}

// Upsert inserts a recipe when its id is empty, otherwise replaces the
// existing recipe in place, preserving its position. The name and at least
// one non-empty ingredient are required. Persists on success.
func (r *Recipes) Upsert(recipe Recipe) (Recipe, error) {
	recipe.Name = strings.TrimSpace(recipe.Name)
	if recipe.Name == "" {
		return Recipe{}, ErrRecipeName
	}
	kept := make([]Ingredient, 0, len(recipe.Ingredients))
	for _, ing := range recipe.Ingredients {
		ing.Name = strings.TrimSpace(ing.Name)
		ing.Request = strings.TrimSpace(ing.Request)
		if ing.Name != "" {
			kept = append(kept, ing)
		}
	}
	if len(kept) == 0 {
		return Recipe{}, ErrRecipeIngredients
	}
	recipe.Ingredients = kept

	if recipe.ID == "" {
		recipe.ID = fmt.Sprintf("recipe-%d", r.now().UnixMilli())
		r.list = append(r.list, recipe)
		return recipe, r.Save()
	}
	for i := range r.list {
		if r.list[i].ID == recipe.ID {
			r.list[i] = recipe
			return recipe, r.Save()
		}
	}
	return Recipe{}, ErrRecipeNotFound
}

// Delete removes a recipe by id and persists. Deleting an unknown id is a
// no-op that still reports success.
func (r *Recipes) Delete(id string) error {
	for i := range r.list {
		if r.list[i].ID == id {
			r.list = append(r.list[:i], r.list[i+1:]...)
			return r.Save()
		}
	}
	return nil
}

// Get looks a recipe up by id.
func (r *Recipes) Get(id string) (Recipe, bool) {
	for _, rec := range r.list {
		if rec.ID == id {
			return rec, true
		}
	}
	return Recipe{}, false
}

// All returns a copy of the collection in stored order.
func (r *Recipes) All() []Recipe {
	out := make([]Recipe, len(r.list))
	copy(out, r.list)
	return out
}

// SearchInput joins a recipe's ingredient names into the comma-separated
// form the smart search consumes.
func (rec Recipe) SearchInput() string {
	names := make([]string, 0, len(rec.Ingredients))
	for _, ing := range rec.Ingredients {
		names = append(names, ing.Name)
	}
	return strings.Join(names, ", ")
}
