package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/agbru/resmon/internal/metrics"
)

func TestFooterModel_View(t *testing.T) {
	f := NewFooterModel(DefaultKeyMap())
	f.SetWidth(160)
	f.SetPoll(12*time.Millisecond, metrics.MemorySnapshot{HeapAlloc: 2048})

	view := f.View()
	for _, want := range []string{"LIVE", "tick", "12ms", "heap", "2.0 KiB"} {
		if !strings.Contains(view, want) {
			t.Errorf("footer missing %q: %q", want, view)
		}
	}

	f.SetPoll(450*time.Microsecond, metrics.MemorySnapshot{})
	if view := f.View(); !strings.Contains(view, "450µs") {
		t.Errorf("sub-millisecond tick not shown in µs: %q", view)
	}

	f.SetPaused(true)
	if !strings.Contains(f.View(), "PAUSED") {
		t.Error("paused footer should say PAUSED")
	}
	f.SetError(errors.New("probe timeout"))
	if !strings.Contains(f.View(), "ERROR: probe timeout") {
		t.Error("error footer should show the error")
	}
}
