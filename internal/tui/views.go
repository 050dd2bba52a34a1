// internal/tui/views.go
//
// Screen rendering. Every view is a pure function of the cached snapshots;
// Update never runs here.

package tui

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cheongnyamri/market/internal/catalog"
	"github.com/cheongnyamri/market/internal/market"
	"github.com/cheongnyamri/market/internal/router"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#2E7D32")).
			MarginBottom(1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA")).
			MarginTop(1)

	badgeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B"))
)

// View renders the current state to a string.
func (a *App) View() string {
	width := a.width
	if width <= 0 {
		width = 100
	}

	var content, hint string
	switch a.router.Current() {
	case router.ScreenHome:
		content, hint = a.viewHome()
	case router.ScreenSearch:
		content, hint = a.viewSearch()
	case router.ScreenCategoryList:
		content, hint = a.viewCategoryList()
	case router.ScreenStoreDetail:
		content, hint = a.viewStoreDetail()
	case router.ScreenFavorites:
		content, hint = a.viewFavorites()
	case router.ScreenRecentStores:
		content, hint = a.viewRecentStores()
	case router.ScreenSmartShopping:
		content, hint = a.viewSmartShopping()
	case router.ScreenRecipeEditor:
		content, hint = a.viewRecipeEditor()
	case router.ScreenPickup:
		content, hint = a.viewPickup()
	case router.ScreenMyOrders:
		content, hint = a.viewMyOrders()
	case router.ScreenMap:
		content, hint = a.viewMap()
	default:
		content = "불러오는 중..."
	}

	switch a.overlay {
	case overlayCart:
		content, hint = a.viewCartOverlay()
	case overlayNotices:
		content, hint = a.viewNoticesOverlay()
	}

	sections := []string{
		a.renderHeader(),
		boxStyle.Width(maxInt(24, width-2)).Render(content),
	}
	if logPanel := a.renderLogPanel(); logPanel != "" {
		sections = append(sections, logPanel)
	}
	if hint != "" {
		sections = append(sections, hintStyle.Render(hint))
	}
	if a.statusMsg != "" {
		sections = append(sections, dimStyle.Render(a.statusMsg))
	}
	return strings.Join(sections, "\n")
}

func (a *App) renderHeader() string {
	ind := a.router.Indicators()
	title := "🧺 청량리시장"
	badges := fmt.Sprintf("장바구니 %d", ind.CartCount)
	if ind.HasUnread {
		badges += "  " + badgeStyle.Render("● 알림")
	}
	return headerStyle.Render(title) + "  " + dimStyle.Render(badges)
}

func (a *App) renderLogPanel() string {
	if a.jr == nil {
		return ""
	}
	lines := a.jr.Tail(5)
	if len(lines) == 0 {
		return ""
	}
	fileName := filepath.Base(a.jr.Path())
	head := titleStyle.Render("기록 · " + fileName)
	body := dimStyle.Render(strings.Join(lines, "\n"))
	return boxStyle.Render(head + "\n" + body)
}

func (a *App) viewHome() (string, string) {
	var rows []string
	rows = append(rows, titleStyle.Render("카테고리"))
	for i, c := range a.home.Categories {
		rows = append(rows, fmt.Sprintf("%d. %s %s", i+1, c.Emoji, c.Name))
	}
	rows = append(rows, "", dimStyle.Render("0. 전체 가게"))
	hint := "s 검색  f 단골가게  r 최근 본 가게  p 스마트장보기  o 주문내역  m 지도  c 장바구니  n 알림  q 종료"
	return strings.Join(rows, "\n"), hint
}

func (a *App) viewSearch() (string, string) {
	header := titleStyle.Render("가게 검색")
	content := lipgloss.JoinVertical(lipgloss.Left,
		header,
		a.searchInput.View(),
		"",
		a.storeList.View(),
	)
	return content, "Enter 가게 열기  ↑/↓ 이동  Esc 홈"
}

func (a *App) viewCategoryList() (string, string) {
	sortLabel := map[router.SortMode]string{
		router.SortDefault: "기본순",
		router.SortOrders:  "주문많은순",
		router.SortRating:  "별점높은순",
	}[a.category.Sort]
	header := titleStyle.Render(a.category.Title) + dimStyle.Render("  · "+sortLabel)
	if len(a.category.Stores) == 0 {
		return header + "\n\n" + dimStyle.Render("이 카테고리에 등록된 가게가 없습니다."), "Esc 홈"
	}
	content := lipgloss.JoinVertical(lipgloss.Left, header, a.storeList.View())
	return content, "Enter 가게 열기  d 기본순  u 주문많은순  t 별점높은순  Esc 홈"
}

func (a *App) viewStoreDetail() (string, string) {
	s := a.detail.Store
	heart := "♡"
	if a.detail.Favorited {
		heart = badgeStyle.Render("♥")
	}
	head := fmt.Sprintf("%s %s  ★%.1f · 주문 %d건", titleStyle.Render(s.Name), heart, s.Rating, s.OrderCount)
	var lines []string
	lines = append(lines, head)
	if s.Description != "" {
		lines = append(lines, dimStyle.Render(s.Description))
	}
	if len(s.MainTags) > 0 {
		lines = append(lines, dimStyle.Render(strings.Join(s.MainTags, " ")))
	}
	lines = append(lines, "", a.productList.View())
	if a.requestEntry {
		lines = append(lines, "",
			titleStyle.Render(a.pendingProduct.Name+" 담기"),
			"요청사항: "+a.requestInput.View(),
		)
		return strings.Join(lines, "\n"), "Enter 담기  Esc 취소"
	}
	return strings.Join(lines, "\n"), "Enter 장바구니 담기  f 단골 등록/해제  g 길찾기  Esc 뒤로"
}

func (a *App) viewFavorites() (string, string) {
	header := titleStyle.Render("단골가게")
	if len(a.favorites.Stores) == 0 {
		return header + "\n\n" + dimStyle.Render("아직 단골가게가 없습니다. 가게에서 ♥를 눌러 등록하세요."), "Esc 홈"
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, a.storeList.View()), "Enter 가게 열기  Esc 홈"
}

func (a *App) viewRecentStores() (string, string) {
	header := titleStyle.Render("최근 본 가게")
	if len(a.recent.Groups) == 0 {
		return header + "\n\n" + dimStyle.Render("최근 본 가게가 없습니다."), "Esc 홈"
	}
	var lines []string
	lines = append(lines, header)
	for _, group := range a.recent.Groups {
		lines = append(lines, "", titleStyle.Render(group.Label))
		for _, store := range group.Stores {
			lines = append(lines, fmt.Sprintf("  %s  ★%.1f", store.Name, store.Rating))
		}
	}
	return strings.Join(lines, "\n"), "Esc 홈"
}

func (a *App) viewSmartShopping() (string, string) {
	var lines []string
	lines = append(lines, titleStyle.Render("스마트 장보기"))
	lines = append(lines, dimStyle.Render("쉼표로 구분해 여러 품목을 한 번에 검색합니다."))
	lines = append(lines, a.smartInput.View(), "")

	if len(a.smart.Recipes) > 0 {
		lines = append(lines, titleStyle.Render("내 레시피"))
		for i, r := range a.smart.Recipes {
			marker := "  "
			if i == a.recipeIndex {
				marker = "> "
			}
			lines = append(lines, fmt.Sprintf("%s%s (%d가지 재료)", marker, r.Name, len(r.Ingredients)))
		}
		lines = append(lines, "")
	}

	browsing := !a.smartInput.Focused()
	idx := 0
	for _, result := range a.smartResults {
		lines = append(lines, titleStyle.Render("“"+result.Term+"”"))
		if len(result.Matches) == 0 {
			lines = append(lines, dimStyle.Render("  일치하는 상품이 없습니다."))
			continue
		}
		for _, m := range result.Matches {
			marker := "  "
			if browsing && idx == a.matchIndex {
				marker = "> "
			}
			lines = append(lines, fmt.Sprintf("%s%s  %s원 · %s ★%.1f",
				marker, m.Product.Name, market.FormatWon(m.Product.Price), m.StoreName, m.Rating))
			idx++
		}
	}

	if browsing {
		return strings.Join(lines, "\n"), "↑/↓ 결과 이동  Enter 가게 열기  Tab 입력으로  Esc 홈"
	}
	hint := "Enter 검색  Tab 결과로  ^R 레시피로 검색  ^N 새 레시피  ^E 수정  ^D 삭제  ↑/↓ 레시피 선택  Esc 홈"
	return strings.Join(lines, "\n"), hint
}

func (a *App) viewRecipeEditor() (string, string) {
	title := "레시피 수정"
	if a.editor.IsNew {
		title = "새 레시피"
	}
	content := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(title),
		"이름: "+a.nameInput.View(),
		"재료: "+a.itemsInput.View(),
		dimStyle.Render("재료는 쉼표로 구분, 요청사항은 콜론 뒤에 적습니다 (예: 돼지고기:앞다리살)"),
	)
	return content, "Tab 입력칸 이동  Enter 저장  Esc 취소"
}

func (a *App) viewPickup() (string, string) {
	header := titleStyle.Render("주문 완료 · 픽업 안내")
	if len(a.pickup.Orders) == 0 {
		return header + "\n\n" + dimStyle.Render("주문 내역이 없습니다."), "Esc 홈"
	}
	order := a.pickup.Orders[0]
	var lines []string
	lines = append(lines, header, "",
		fmt.Sprintf("주문번호  %s", order.OrderID),
		fmt.Sprintf("주문일자  %s", order.PlacedAt),
	)
	lines = append(lines, a.renderOrderCart(order)...)
	lines = append(lines, "", fmt.Sprintf("총 결제금액  %s원", market.FormatWon(order.TotalPrice)))
	lines = append(lines, dimStyle.Render("각 가게에 방문해 주문번호를 보여주시면 상품을 받아가실 수 있습니다."))
	return strings.Join(lines, "\n"), "Enter 홈으로"
}

func (a *App) viewMyOrders() (string, string) {
	header := titleStyle.Render("주문 내역")
	if len(a.myOrders.Orders) == 0 {
		return header + "\n\n" + dimStyle.Render("아직 주문한 내역이 없습니다."), "Esc 홈"
	}
	var lines []string
	lines = append(lines, header)
	for _, order := range a.myOrders.Orders {
		lines = append(lines, "",
			fmt.Sprintf("%s · %s · %s원", order.OrderID, order.PlacedAt, market.FormatWon(order.TotalPrice)))
		lines = append(lines, a.renderOrderCart(order)...)
	}
	return strings.Join(lines, "\n"), "Esc 홈"
}

func (a *App) renderOrderCart(order market.Order) []string {
	ids := make([]catalog.StoreID, 0, len(order.Cart))
	for id := range order.Cart {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	var lines []string
	for _, id := range ids {
		bucket := order.Cart[id]
		lines = append(lines, dimStyle.Render("  "+bucket.StoreName))
		for _, line := range bucket.OrderedLines() {
			item := line.Item
			label := fmt.Sprintf("    %s × %d  %s원", item.Name, item.Quantity, market.FormatWon(item.Price*item.Quantity))
			if item.Request != "" {
				label += dimStyle.Render("  (" + item.Request + ")")
			}
			lines = append(lines, label)
		}
	}
	return lines
}

func (a *App) viewMap() (string, string) {
	header := titleStyle.Render("시장 지도")
	if a.mapEditing {
		content := lipgloss.JoinVertical(lipgloss.Left,
			header,
			"지도 주소: "+a.mapInput.View(),
		)
		return content, "Enter 저장  Esc 취소"
	}
	content := lipgloss.JoinVertical(lipgloss.Left,
		header,
		"브라우저에서 열기: "+a.mapSnap.URL,
	)
	return content, "e 주소 변경  Esc 홈"
}

func (a *App) viewCartOverlay() (string, string) {
	header := titleStyle.Render("장바구니")
	if a.cartView.Empty {
		return header + "\n\n" + dimStyle.Render("장바구니가 비어 있습니다."), "Esc 닫기"
	}
	var lines []string
	lines = append(lines, header)
	idx := 0
	for _, store := range a.cartView.Stores {
		lines = append(lines, "", titleStyle.Render(store.StoreName))
		for _, line := range store.Lines {
			marker := "  "
			if idx == a.cartSelection {
				marker = "> "
			}
			item := line.Item
			label := fmt.Sprintf("%s%s × %d  %s원", marker, item.Name, item.Quantity, market.FormatWon(item.Price*item.Quantity))
			if item.Request != "" {
				label += dimStyle.Render("  (" + item.Request + ")")
			}
			lines = append(lines, label)
			idx++
		}
	}
	lines = append(lines, "", fmt.Sprintf("합계  %s원", market.FormatWon(a.cartView.TotalPrice)))
	return strings.Join(lines, "\n"), "+/- 수량  x 삭제  Enter 주문하기  Esc 닫기"
}

func (a *App) viewNoticesOverlay() (string, string) {
	header := titleStyle.Render("알림")
	notices := a.router.Notifications()
	if len(notices) == 0 {
		return header + "\n\n" + dimStyle.Render("알림이 없습니다."), "Esc 닫기"
	}
	var lines []string
	lines = append(lines, header)
	for _, n := range notices {
		marker := dimStyle.Render("  ")
		if !n.Read {
			marker = badgeStyle.Render("● ")
		}
		lines = append(lines, marker+n.Message)
	}
	return strings.Join(lines, "\n"), "Enter 모두 읽음  Esc 닫기"
}
