package journal

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestJournalAppendAndTail(t *testing.T) {
	j, err := Open(filepath.Join(t.TempDir(), "logs", "session.log"))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	j.Action("장바구니 담기 · %s", "삼겹살")
	j.Warn("레시피 저장 거부: 이름 없음")
	j.Fail("지도 URL 형식 오류")

	lines := j.Tail(10)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "삼겹살") {
		t.Fatalf("first line should carry the action, got %q", lines[0])
	}
	if !strings.Contains(lines[2], "지도 URL") {
		t.Fatalf("last line should be the failure, got %q", lines[2])
	}

	if got := j.Tail(2); len(got) != 2 || !strings.Contains(got[0], "레시피") {
		t.Fatalf("Tail must keep only the newest lines, got %v", got)
	}
}

func TestJournalNilSafe(t *testing.T) {
	var j *Journal
	j.Action("dropped")
	j.Warn("dropped")
	j.Fail("dropped")
	if j.Tail(5) != nil {
		t.Fatal("nil journal must tail nothing")
	}
	if j.Path() != "" {
		t.Fatal("nil journal has no path")
	}
}
