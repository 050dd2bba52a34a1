package catalog

// Category groups raw store categories under one shopper-facing shortcut.
type Category struct {
	Name     string
	Emoji    string
	Color    string
	Keywords []string
}

// CategoryAll is the pseudo-key selecting every store.
const CategoryAll = "all"

var categories = []Category{
	{Name: "정육", Emoji: "🥩", Color: "red", Keywords: []string{"정육점"}},
	{Name: "수산", Emoji: "🐟", Color: "blue", Keywords: []string{"수산물"}},
	{Name: "청과/야채", Emoji: "🥬", Color: "green", Keywords: []string{"청과물", "농산물"}},
	{Name: "반찬/김치", Emoji: "🍚", Color: "yellow", Keywords: []string{"반찬/김치", "가공식품"}},
	{Name: "음식점", Emoji: "🍲", Color: "purple", Keywords: []string{"음식점(한식)", "음식점(간식/디저트)", "음식점(제과제빵)", "음식점(카페/음료)"}},
	{Name: "건강식품", Emoji: "🌿", Color: "teal", Keywords: []string{"건강식품", "한약재"}},
	{Name: "생활용품", Emoji: "🛍️", Color: "pink", Keywords: []string{"생활용품(잡화)", "생활용품(의류/패션)", "철물"}},
	{Name: "기타", Emoji: "🏪", Color: "gray", Keywords: []string{"서비스", "편의시설"}},
}

// Categories returns the fixed taxonomy in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// CategoryByName looks a category up by its shortcut name.
func CategoryByName(name string) (Category, bool) {
	for _, c := range categories {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}

// StoresInCategory filters stores whose raw category belongs to the named
// group. The CategoryAll key returns every store.
func StoresInCategory(stores []Store, key string) ([]Store, bool) {
	if key == CategoryAll {
		out := make([]Store, len(stores))
		copy(out, stores)
		return out, true
	}
	cat, ok := CategoryByName(key)
	if !ok {
		return nil, false
	}
	var out []Store
	for _, s := range stores {
		for _, kw := range cat.Keywords {
			if s.Category == kw {
				out = append(out, s)
				break
			}
		}
	}
	return out, true
}
