package catalog

// Default returns the built-in demo catalog used when no catalog file exists
// yet. Prices and ratings are pinned so the first-run experience is stable.
func Default() []Store {
	raw := []RawStore{
		{
			ID:           1,
			Name:         "형제축산",
			Category:     "정육점",
			MainProducts: "한우등심, 삼겹살, 고추장 1kg",
			Description:  "30년 전통의 한우 전문점. 당일 도축 고기만 취급합니다.",
			URL:          "https://map.naver.com/p/hyungje",
			Rating:       4.8,
			OrderCount:   214,
			Products: []RawProduct{
				{Name: "한우등심", Price: 28000},
				{Name: "삼겹살", Price: 12000},
				{Name: "고추장 1kg", Price: 5000},
			},
		},
		{
			ID:           2,
			Name:         "청량수산",
			Category:     "수산물",
			MainProducts: "고등어, 갈치, 오징어",
			Description:  "매일 아침 공수하는 싱싱한 생물 생선.",
			URL:          "https://map.naver.com/p/cheongnyangsusan",
			Rating:       4.6,
			OrderCount:   151,
		},
		{
			ID:           3,
			Name:         "할머니청과",
			Category:     "청과물",
			MainProducts: "대파, 양파, 감자, 사과",
			Description:  "산지 직송 채소와 제철 과일.",
			URL:          "",
			Rating:       4.9,
			OrderCount:   342,
			Products: []RawProduct{
				{Name: "대파", Price: 3000},
				{Name: "양파", Price: 4000},
			},
		},
		{
			ID:           4,
			Name:         "엄마손반찬",
			Category:     "반찬/김치",
			MainProducts: "두부, 포기김치, 멸치볶음",
			Description:  "매일 만드는 집밥 반찬.",
			URL:          "https://map.naver.com/p/eommason",
			Rating:       4.7,
			OrderCount:   198,
		},
		{
			ID:           5,
			Name:         "시장할매국밥",
			Category:     "음식점(한식)",
			MainProducts: "순대국밥, 소머리국밥",
			Description:  "새벽 시장 상인들이 찾는 국밥집.",
			URL:          "https://map.naver.com/p/halmae",
			Rating:       4.5,
			OrderCount:   412,
		},
	}
	return Derive(raw)
}
