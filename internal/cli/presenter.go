package cli

import (
	"io"

	"github.com/agbru/resmon/internal/monitor"
)

// Presenter renders the one-shot outputs of -once and -info.
type Presenter interface {
	PresentSnapshot(out io.Writer, snap monitor.Snapshot, info monitor.SystemInfo) error
	PresentInfo(out io.Writer, info monitor.SystemInfo) error
}

// TextPresenter writes colorized, human-readable text.
type TextPresenter struct{}

// JSONPresenter writes the wire JSON of the snapshot or system info.
type JSONPresenter struct{}

// Verify interface compliance.
var (
	_ Presenter = TextPresenter{}
	_ Presenter = JSONPresenter{}
)

// NewPresenter selects the presenter for the -json flag.
func NewPresenter(jsonOutput bool) Presenter {
	if jsonOutput {
		return JSONPresenter{}
	}
	return TextPresenter{}
}

// PresentSnapshot implements Presenter.
func (TextPresenter) PresentSnapshot(out io.Writer, snap monitor.Snapshot, info monitor.SystemInfo) error {
	DisplaySnapshot(out, snap, info)
	return nil
}

// PresentInfo implements Presenter.
func (TextPresenter) PresentInfo(out io.Writer, info monitor.SystemInfo) error {
	DisplaySystemInfo(out, info)
	return nil
}

// PresentSnapshot implements Presenter.
func (JSONPresenter) PresentSnapshot(out io.Writer, snap monitor.Snapshot, _ monitor.SystemInfo) error {
	return WriteJSON(out, snap)
}

// PresentInfo implements Presenter.
func (JSONPresenter) PresentInfo(out io.Writer, info monitor.SystemInfo) error {
	return WriteJSON(out, info)
}
