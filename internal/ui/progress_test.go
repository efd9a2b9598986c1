package ui

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"aspkit/internal/driver"
)

func TestApplyEventCounts(t *testing.T) {
	files := []string{"a.asp", "b.asp", "c.inc"}
	m := NewProgressModel("checking", files, nil).(*progressModel)

	m.applyEvent(driver.Event{File: "a.asp", Stage: driver.StageParse, Status: driver.StatusWorking})
	if m.items[0].status != "parsing" {
		t.Fatalf("status = %q", m.items[0].status)
	}
	m.applyEvent(driver.Event{File: "a.asp", Stage: driver.StageBlocks, Status: driver.StatusDone})
	m.applyEvent(driver.Event{File: "b.asp", Stage: driver.StageCache, Status: driver.StatusDone})
	m.applyEvent(driver.Event{File: "c.inc", Stage: driver.StageLoad, Status: driver.StatusError, Err: errors.New("denied")})
	// повторное событие не считается дважды
	m.applyEvent(driver.Event{File: "c.inc", Stage: driver.StageLoad, Status: driver.StatusError})
	m.applyEvent(driver.Event{File: "zzz.asp", Stage: driver.StageParse, Status: driver.StatusDone})

	if m.finished != 3 || m.cached != 1 || m.errors != 1 {
		t.Fatalf("finished=%d cached=%d errors=%d", m.finished, m.cached, m.errors)
	}
	view := m.View()
	for _, want := range []string{"checking 3/3", "1 cached", "1 with errors", "c.inc"} {
		if !strings.Contains(view, want) {
			t.Errorf("view lacks %q:\n%s", want, view)
		}
	}
}

func TestVisibleRowsPreferActive(t *testing.T) {
	files := make([]string, 40)
	for i := range files {
		files[i] = fmt.Sprintf("p%02d.asp", i)
	}
	m := NewProgressModel("checking", files, nil).(*progressModel)
	m.applyEvent(driver.Event{File: "p30.asp", Stage: driver.StageParse, Status: driver.StatusWorking})
	m.applyEvent(driver.Event{File: "p31.asp", Stage: driver.StageBlocks, Status: driver.StatusError})

	rows := m.visible()
	if len(rows) != maxRows {
		t.Fatalf("rows = %d", len(rows))
	}
	if rows[0].path != "p30.asp" || rows[1].path != "p31.asp" || rows[2].path != "p00.asp" {
		t.Fatalf("unexpected order %v", rows[:3])
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("admin/reports/monthly.asp", 12); got != "admin/rep..." {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("short.asp", 20); got != "short.asp" {
		t.Fatalf("truncate = %q", got)
	}
}
