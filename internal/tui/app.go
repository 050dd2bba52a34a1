// internal/tui/app.go
//
// This is the main TUI (Terminal User Interface) for the market.
// It uses bubbletea, which follows The Elm Architecture:
//
// 1. Model: Your application state
// 2. Update: A function that updates state based on messages
// 3. View: A function that renders state to a string
//
// The flow is: User Input -> Message -> Update -> New Model -> View -> Screen
//
// Screen selection lives in the router; the App only holds the snapshots
// the router hands it and turns key presses into intents.

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cheongnyamri/market/internal/catalog"
	"github.com/cheongnyamri/market/internal/journal"
	"github.com/cheongnyamri/market/internal/market"
	"github.com/cheongnyamri/market/internal/router"
)

// overlay is a layer drawn over the active screen.
type overlay int

const (
	overlayNone overlay = iota
	overlayCart
	overlayNotices
)

// storeItem implements list.Item for store rosters.
type storeItem struct {
	store catalog.Store
}

func (i storeItem) Title() string {
	return fmt.Sprintf("%s  ★%.1f", i.store.Name, i.store.Rating)
}

func (i storeItem) Description() string {
	tags := strings.Join(i.store.MainTags, " ")
	if tags == "" {
		tags = i.store.Category
	}
	return fmt.Sprintf("%s · 주문 %d건", tags, i.store.OrderCount)
}

func (i storeItem) FilterValue() string { return i.store.Name }

// productItem implements list.Item for the store detail product list.
type productItem struct {
	product catalog.Product
}

func (i productItem) Title() string       { return i.product.Name }
func (i productItem) Description() string { return market.FormatWon(i.product.Price) + "원" }
func (i productItem) FilterValue() string { return i.product.Name }

// App is the main application model. In bubbletea, this holds ALL your state.
type App struct {
	router *router.Router
	state  *market.State
	jr     *journal.Journal

	// Latest snapshots, filled by the router through the Renderer methods.
	home      router.HomeSnapshot
	search    router.SearchSnapshot
	category  router.CategoryListSnapshot
	detail    router.StoreDetailSnapshot
	favorites router.FavoritesSnapshot
	recent    router.RecentStoresSnapshot
	smart     router.SmartShoppingSnapshot
	editor    router.RecipeEditorSnapshot
	pickup    router.PickupSnapshot
	myOrders  router.MyOrdersSnapshot
	mapSnap   router.MapSnapshot

	// UI components
	storeList    list.Model
	productList  list.Model
	searchInput  textinput.Model
	smartInput   textinput.Model
	nameInput    textinput.Model
	itemsInput   textinput.Model
	mapInput     textinput.Model
	requestInput textinput.Model

	// Special-request prompt on the store detail screen.
	requestEntry   bool
	pendingProduct catalog.Product

	smartResults []market.TermResult
	flatMatches  []market.SearchMatch
	matchIndex   int
	recipeIndex  int
	editorFocus  int
	mapEditing   bool

	overlay       overlay
	cartView      router.CartViewSnapshot
	cartSelection int

	statusMsg string
	err       error

	width  int
	height int
}

// NewApp builds the model. The router is attached afterward with SetRouter
// because the router needs the App as its renderer.
func NewApp(state *market.State, jr *journal.Journal) *App {
	storeList := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	storeList.SetShowStatusBar(false)
	storeList.SetFilteringEnabled(false)
	storeList.SetShowTitle(false)

	productList := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	productList.SetShowStatusBar(false)
	productList.SetFilteringEnabled(false)
	productList.SetShowTitle(false)

	searchInput := textinput.New()
	searchInput.Placeholder = "가게, 상품, 키워드 검색"
	smartInput := textinput.New()
	smartInput.Placeholder = "예: 돼지고기, 김치, 두부"
	nameInput := textinput.New()
	nameInput.Placeholder = "레시피 이름"
	itemsInput := textinput.New()
	itemsInput.Placeholder = "재료1:요청사항, 재료2, ..."
	mapInput := textinput.New()
	mapInput.Placeholder = "https://..."
	requestInput := textinput.New()
	requestInput.Placeholder = "요청사항 (비워두면 없음)"

	return &App{
		state:        state,
		jr:           jr,
		storeList:    storeList,
		productList:  productList,
		searchInput:  searchInput,
		smartInput:   smartInput,
		nameInput:    nameInput,
		itemsInput:   itemsInput,
		mapInput:     mapInput,
		requestInput: requestInput,
	}
}

// Renderer implementation. The router calls these when a screen activates;
// the App caches the snapshot and refreshes the list component behind it.

func (a *App) RenderHome(s router.HomeSnapshot) { a.home = s }

func (a *App) RenderSearch(s router.SearchSnapshot) {
	a.search = s
	a.searchInput.SetValue("")
	a.searchInput.Focus()
	a.setStores(s.Stores)
}

func (a *App) RenderCategoryList(s router.CategoryListSnapshot) {
	a.category = s
	a.setStores(s.Stores)
}

func (a *App) RenderStoreDetail(s router.StoreDetailSnapshot) {
	a.detail = s
	a.requestEntry = false
	items := make([]list.Item, len(s.Store.Products))
	for i, p := range s.Store.Products {
		items[i] = productItem{product: p}
	}
	a.productList.SetItems(items)
}

func (a *App) RenderFavorites(s router.FavoritesSnapshot) {
	a.favorites = s
	a.setStores(s.Stores)
}

func (a *App) RenderRecentStores(s router.RecentStoresSnapshot) { a.recent = s }

func (a *App) RenderSmartShopping(s router.SmartShoppingSnapshot) {
	a.smart = s
	if a.recipeIndex >= len(s.Recipes) {
		a.recipeIndex = 0
	}
	a.smartInput.Focus()
}

func (a *App) RenderRecipeEditor(s router.RecipeEditorSnapshot) {
	a.editor = s
	a.nameInput.SetValue(s.Recipe.Name)
	var parts []string
	for _, ing := range s.Recipe.Ingredients {
		if ing.Request != "" {
			parts = append(parts, ing.Name+":"+ing.Request)
		} else {
			parts = append(parts, ing.Name)
		}
	}
	a.itemsInput.SetValue(strings.Join(parts, ", "))
	a.editorFocus = 0
	a.nameInput.Focus()
	a.itemsInput.Blur()
}

func (a *App) RenderPickup(s router.PickupSnapshot)     { a.pickup = s }
func (a *App) RenderMyOrders(s router.MyOrdersSnapshot) { a.myOrders = s }

func (a *App) RenderMap(s router.MapSnapshot) {
	a.mapSnap = s
	a.mapEditing = false
	a.mapInput.SetValue("")
}

// SetRouter attaches the router once it has been built with this App as
// its renderer.
func (a *App) SetRouter(r *router.Router) {
	a.router = r
}

func (a *App) setStores(stores []catalog.Store) {
	items := make([]list.Item, len(stores))
	for i, s := range stores {
		items[i] = storeItem{store: s}
	}
	a.storeList.SetItems(items)
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return nil
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.storeList.SetSize(maxInt(0, msg.Width-6), maxInt(0, msg.Height-12))
		a.productList.SetSize(maxInt(0, msg.Width-6), maxInt(0, msg.Height-14))
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, a.updateComponents(msg)
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return a, tea.Quit
	}

	if a.overlay != overlayNone {
		return a.handleOverlayKey(key)
	}

	// Text inputs swallow printable keys while focused.
	if a.textEntryActive() {
		return a.handleTextEntryKey(msg, key)
	}

	switch key {
	case "q":
		if a.router.Current() == router.ScreenHome {
			return a, tea.Quit
		}
	case "esc":
		return a, a.goBack()
	case "c":
		a.openCart()
		return a, nil
	case "n":
		a.overlay = overlayNotices
		return a, nil
	}

	if cmd, handled := a.handleScreenKey(key); handled {
		return a, cmd
	}

	return a, a.updateComponents(msg)
}

// handleScreenKey maps keys that depend on the active screen.
func (a *App) handleScreenKey(key string) (tea.Cmd, bool) {
	switch a.router.Current() {

	case router.ScreenHome:
		switch key {
		case "1", "2", "3", "4", "5", "6", "7", "8":
			idx := int(key[0] - '1')
			if idx < len(a.home.Categories) {
				a.dispatchNavigate(router.ScreenCategoryList, a.home.Categories[idx].Name)
			}
			return nil, true
		case "0":
			a.dispatchNavigate(router.ScreenCategoryList, catalog.CategoryAll)
			return nil, true
		case "s":
			a.dispatchNavigate(router.ScreenSearch, nil)
			return nil, true
		case "f":
			a.dispatchNavigate(router.ScreenFavorites, nil)
			return nil, true
		case "r":
			a.dispatchNavigate(router.ScreenRecentStores, nil)
			return nil, true
		case "p":
			a.dispatchNavigate(router.ScreenSmartShopping, nil)
			return nil, true
		case "o":
			a.dispatchNavigate(router.ScreenMyOrders, nil)
			return nil, true
		case "m":
			a.dispatchNavigate(router.ScreenMap, nil)
			return nil, true
		}

	case router.ScreenCategoryList:
		switch key {
		case "enter":
			a.openSelectedStore(router.ScreenCategoryList, a.category.Key)
			return nil, true
		case "d":
			a.dispatchErr(a.router.SetCategorySort(router.SortDefault))
			return nil, true
		case "u":
			a.dispatchErr(a.router.SetCategorySort(router.SortOrders))
			return nil, true
		case "t":
			a.dispatchErr(a.router.SetCategorySort(router.SortRating))
			return nil, true
		}

	case router.ScreenSearch, router.ScreenFavorites:
		if key == "enter" {
			a.openSelectedStore(a.router.Current(), "")
			return nil, true
		}

	case router.ScreenStoreDetail:
		switch key {
		case "enter":
			a.openRequestPrompt()
			return nil, true
		case "f":
			a.dispatch(router.IntentFavoriteToggle, router.Payload{StoreID: a.detail.Store.ID})
			return nil, true
		case "g":
			if link, err := router.OutboundURL(a.detail.Store.URL); err != nil {
				a.statusMsg = "길찾기 링크가 없는 가게입니다"
			} else {
				a.statusMsg = "길찾기: " + link
			}
			return nil, true
		}

	case router.ScreenSmartShopping:
		// Only non-printable keys here; the search input owns the rest.
		// With the input blurred, the arrow keys walk the search matches.
		if !a.smartInput.Focused() {
			switch key {
			case "tab":
				a.smartInput.Focus()
				return nil, true
			case "up":
				if a.matchIndex > 0 {
					a.matchIndex--
				}
				return nil, true
			case "down":
				if a.matchIndex < len(a.flatMatches)-1 {
					a.matchIndex++
				}
				return nil, true
			case "enter":
				a.openSelectedMatch()
				return nil, true
			}
			return nil, false
		}
		switch key {
		case "up":
			if a.recipeIndex > 0 {
				a.recipeIndex--
			}
			return nil, true
		case "down":
			if a.recipeIndex < len(a.smart.Recipes)-1 {
				a.recipeIndex++
			}
			return nil, true
		case "ctrl+n":
			a.dispatchNavigate(router.ScreenRecipeEditor, "")
			return nil, true
		case "ctrl+e":
			if r, ok := a.selectedRecipe(); ok {
				a.dispatchNavigate(router.ScreenRecipeEditor, r.ID)
			}
			return nil, true
		case "ctrl+d":
			if r, ok := a.selectedRecipe(); ok {
				a.dispatch(router.IntentRecipeDelete, router.Payload{RecipeID: r.ID})
			}
			return nil, true
		case "ctrl+r":
			if r, ok := a.selectedRecipe(); ok {
				a.smartInput.SetValue(r.SearchInput())
				a.runSmartSearch()
			}
			return nil, true
		}

	case router.ScreenMap:
		if key == "e" && !a.mapEditing {
			a.mapEditing = true
			a.mapInput.SetValue(a.mapSnap.URL)
			a.mapInput.Focus()
			return nil, true
		}

	case router.ScreenPickup:
		if key == "enter" {
			a.dispatchNavigate(router.ScreenHome, nil)
			return nil, true
		}
	}

	return nil, false
}

// handleTextEntryKey routes keys while a text input has focus.
func (a *App) handleTextEntryKey(msg tea.KeyMsg, key string) (tea.Model, tea.Cmd) {
	switch a.router.Current() {

	case router.ScreenSearch:
		switch key {
		case "esc":
			return a, a.goBack()
		case "enter":
			a.setStores(a.router.SearchStores(a.searchInput.Value()))
			return a, nil
		}
		// Arrow keys go to the result list so it stays reachable while typing.
		if key == "down" || key == "up" {
			var cmd tea.Cmd
			a.storeList, cmd = a.storeList.Update(msg)
			return a, cmd
		}
		var cmd tea.Cmd
		a.searchInput, cmd = a.searchInput.Update(msg)
		a.setStores(a.router.SearchStores(a.searchInput.Value()))
		return a, cmd

	case router.ScreenSmartShopping:
		switch key {
		case "esc":
			return a, a.goBack()
		case "enter":
			a.runSmartSearch()
			return a, nil
		case "tab":
			if len(a.flatMatches) > 0 {
				a.smartInput.Blur()
			}
			return a, nil
		}
		if cmd, handled := a.handleScreenKey(key); handled {
			return a, cmd
		}
		var cmd tea.Cmd
		a.smartInput, cmd = a.smartInput.Update(msg)
		return a, cmd

	case router.ScreenStoreDetail:
		switch key {
		case "esc":
			a.requestEntry = false
			a.requestInput.Blur()
			return a, nil
		case "enter":
			a.confirmAddToCart()
			return a, nil
		}
		var cmd tea.Cmd
		a.requestInput, cmd = a.requestInput.Update(msg)
		return a, cmd

	case router.ScreenRecipeEditor:
		switch key {
		case "esc":
			a.dispatchNavigate(router.ScreenSmartShopping, nil)
			return a, nil
		case "tab", "shift+tab":
			a.editorFocus = 1 - a.editorFocus
			if a.editorFocus == 0 {
				a.nameInput.Focus()
				a.itemsInput.Blur()
			} else {
				a.nameInput.Blur()
				a.itemsInput.Focus()
			}
			return a, nil
		case "enter":
			a.saveRecipe()
			return a, nil
		}
		var cmd tea.Cmd
		if a.editorFocus == 0 {
			a.nameInput, cmd = a.nameInput.Update(msg)
		} else {
			a.itemsInput, cmd = a.itemsInput.Update(msg)
		}
		return a, cmd

	case router.ScreenMap:
		switch key {
		case "esc":
			a.mapEditing = false
			a.mapInput.Blur()
			return a, nil
		case "enter":
			a.dispatch(router.IntentMapSetURL, router.Payload{URL: a.mapInput.Value()})
			return a, nil
		}
		var cmd tea.Cmd
		a.mapInput, cmd = a.mapInput.Update(msg)
		return a, cmd
	}

	return a, nil
}

func (a *App) handleOverlayKey(key string) (tea.Model, tea.Cmd) {
	switch a.overlay {
	case overlayNotices:
		switch key {
		case "esc", "n":
			a.overlay = overlayNone
		case "enter":
			a.dispatch(router.IntentNoticesRead, router.Payload{})
			a.overlay = overlayNone
		}
		return a, nil

	case overlayCart:
		switch key {
		case "esc", "c":
			a.overlay = overlayNone
		case "up", "k":
			if a.cartSelection > 0 {
				a.cartSelection--
			}
		case "down", "j":
			if a.cartSelection < a.cartLineCount()-1 {
				a.cartSelection++
			}
		case "+", "=":
			a.changeSelectedQuantity(1)
		case "-":
			a.changeSelectedQuantity(-1)
		case "x":
			if storeID, itemID, ok := a.selectedCartLine(); ok {
				a.dispatch(router.IntentCartRemove, router.Payload{StoreID: storeID, ItemID: itemID})
				a.refreshCart()
			}
		case "enter":
			a.dispatch(router.IntentCheckout, router.Payload{})
			if a.err == nil {
				a.overlay = overlayNone
			}
		}
		return a, nil
	}
	return a, nil
}

func (a *App) updateComponents(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	switch a.router.Current() {
	case router.ScreenCategoryList, router.ScreenSearch, router.ScreenFavorites:
		var cmd tea.Cmd
		a.storeList, cmd = a.storeList.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	case router.ScreenStoreDetail:
		var cmd tea.Cmd
		a.productList, cmd = a.productList.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

func (a *App) textEntryActive() bool {
	switch a.router.Current() {
	case router.ScreenSearch:
		return a.searchInput.Focused()
	case router.ScreenStoreDetail:
		return a.requestEntry
	case router.ScreenSmartShopping:
		return a.smartInput.Focused()
	case router.ScreenRecipeEditor:
		return true
	case router.ScreenMap:
		return a.mapEditing
	}
	return false
}

func (a *App) goBack() tea.Cmd {
	switch a.router.Current() {
	case router.ScreenStoreDetail:
		from := a.detail.From
		if from == "" {
			from = router.ScreenHome
		}
		var param any
		if from == router.ScreenCategoryList {
			param = a.detail.Category
		}
		a.dispatch(router.IntentNavigate, router.Payload{Screen: from, ScreenParam: param})
	case router.ScreenRecipeEditor:
		a.dispatchNavigate(router.ScreenSmartShopping, nil)
	case router.ScreenHome:
		// Nothing behind home.
	default:
		a.dispatchNavigate(router.ScreenHome, nil)
	}
	return nil
}

func (a *App) openSelectedStore(from router.Screen, category string) {
	item, ok := a.storeList.SelectedItem().(storeItem)
	if !ok {
		return
	}
	a.dispatch(router.IntentNavigate, router.Payload{
		Screen: router.ScreenStoreDetail,
		ScreenParam: router.StoreDetailParam{
			StoreID:  item.store.ID,
			From:     from,
			Category: category,
		},
	})
}

// openRequestPrompt starts the special-request step of adding the selected
// product; an empty entry means no request.
func (a *App) openRequestPrompt() {
	item, ok := a.productList.SelectedItem().(productItem)
	if !ok {
		return
	}
	a.pendingProduct = item.product
	a.requestEntry = true
	a.requestInput.SetValue("")
	a.requestInput.Focus()
}

func (a *App) confirmAddToCart() {
	product := a.pendingProduct
	request := strings.TrimSpace(a.requestInput.Value())
	a.requestEntry = false
	a.requestInput.Blur()
	a.dispatch(router.IntentCartAdd, router.Payload{
		StoreID:   a.detail.Store.ID,
		StoreName: a.detail.Store.Name,
		Product:   product,
		Request:   request,
	})
	if a.err == nil {
		a.statusMsg = fmt.Sprintf("%s 담았습니다", product.Name)
	}
}

func (a *App) selectedRecipe() (market.Recipe, bool) {
	if a.recipeIndex < 0 || a.recipeIndex >= len(a.smart.Recipes) {
		return market.Recipe{}, false
	}
	return a.smart.Recipes[a.recipeIndex], true
}

func (a *App) runSmartSearch() {
	a.smartResults = a.router.SmartSearch(a.smartInput.Value())
	a.flatMatches = a.flatMatches[:0]
	for _, result := range a.smartResults {
		a.flatMatches = append(a.flatMatches, result.Matches...)
	}
	a.matchIndex = 0
}

// openSelectedMatch jumps from a search match to its store's detail screen.
func (a *App) openSelectedMatch() {
	if a.matchIndex < 0 || a.matchIndex >= len(a.flatMatches) {
		return
	}
	match := a.flatMatches[a.matchIndex]
	a.dispatch(router.IntentNavigate, router.Payload{
		Screen: router.ScreenStoreDetail,
		ScreenParam: router.StoreDetailParam{
			StoreID: match.StoreID,
			From:    router.ScreenSmartShopping,
		},
	})
}

func (a *App) saveRecipe() {
	recipe := market.Recipe{
		ID:   a.editor.Recipe.ID,
		Name: a.nameInput.Value(),
	}
	for _, part := range strings.Split(a.itemsInput.Value(), ",") {
		name, request, _ := strings.Cut(part, ":")
		recipe.Ingredients = append(recipe.Ingredients, market.Ingredient{
			Name:    strings.TrimSpace(name),
			Request: strings.TrimSpace(request),
		})
	}
	a.dispatch(router.IntentRecipeSave, router.Payload{Recipe: recipe})
}

func (a *App) openCart() {
	a.refreshCart()
	a.cartSelection = 0
	a.overlay = overlayCart
}

func (a *App) refreshCart() {
	a.cartView = a.router.CartView()
	if n := a.cartLineCount(); a.cartSelection >= n && n > 0 {
		a.cartSelection = n - 1
	}
}

func (a *App) cartLineCount() int {
	total := 0
	for _, s := range a.cartView.Stores {
		total += len(s.Lines)
	}
	return total
}

func (a *App) selectedCartLine() (catalog.StoreID, string, bool) {
	idx := a.cartSelection
	for _, s := range a.cartView.Stores {
		if idx < len(s.Lines) {
			return s.StoreID, s.Lines[idx].ItemID, true
		}
		idx -= len(s.Lines)
	}
	return 0, "", false
}

func (a *App) changeSelectedQuantity(delta int) {
	storeID, itemID, ok := a.selectedCartLine()
	if !ok {
		return
	}
	a.dispatch(router.IntentCartQuantity, router.Payload{StoreID: storeID, ItemID: itemID, Delta: delta})
	a.refreshCart()
}

func (a *App) dispatchNavigate(screen router.Screen, param any) {
	a.dispatch(router.IntentNavigate, router.Payload{Screen: screen, ScreenParam: param})
}

func (a *App) dispatch(intent router.Intent, payload router.Payload) {
	a.err = a.router.Dispatch(intent, payload)
	if a.err != nil {
		a.statusMsg = a.err.Error()
	} else {
		a.statusMsg = ""
	}
}

func (a *App) dispatchErr(err error) {
	a.err = err
	if err != nil {
		a.statusMsg = err.Error()
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
