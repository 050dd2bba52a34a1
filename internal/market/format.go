package market

import (
	"fmt"
	"strconv"
	"time"
)

var koreanWeekdays = [7]string{"일", "월", "화", "수", "목", "금", "토"}

// FormatWon renders an amount with thousands separators: 12345 → "12,345".
func FormatWon(amount int) string {
	s := strconv.Itoa(amount)
	neg := false
	if amount < 0 {
		neg = true
		s = s[1:]
	}
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}

// FormatOrderDate renders a timestamp the way order history shows it:
// "2026년 8월 29일 (토)".
func FormatOrderDate(t time.Time) string {
	return fmt.Sprintf("%d년 %d월 %d일 (%s)",
		t.Year(), int(t.Month()), t.Day(), koreanWeekdays[int(t.Weekday())])
}

// RelativeDateLabel buckets a visit time for the recently-viewed screen:
// 오늘, 어제, or "M월 D일 X요일".
func RelativeDateLabel(now, viewed time.Time) string {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	yesterday := today.AddDate(0, 0, -1)
	v := viewed.In(now.Location())
	if !v.Before(today) {
		return "오늘"
	}
	if !v.Before(yesterday) {
		return "어제"
	}
	return fmt.Sprintf("%d월 %d일 %s요일", int(v.Month()), v.Day(), koreanWeekdays[int(v.Weekday())])
}
