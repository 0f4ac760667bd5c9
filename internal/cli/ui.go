//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"io"
	"time"

	"github.com/briandowns/spinner"
)

// SpinnerRefreshRate is the spinner frame interval.
const SpinnerRefreshRate = 100 * time.Millisecond

// Spinner is the progress indicator SampleOnce shows while the first rate
// interval elapses.
type Spinner interface {
	Start()
	Stop()
	// UpdateSuffix replaces the text after the spinner glyph.
	UpdateSuffix(suffix string)
}

type briandownsSpinner struct {
	*spinner.Spinner
}

func (s briandownsSpinner) UpdateSuffix(suffix string) {
	s.Lock()
	defer s.Unlock()
	s.Suffix = suffix
}

// newSpinner draws on w. Tests replace it.
var newSpinner = func(w io.Writer) Spinner {
	return briandownsSpinner{spinner.New(spinner.CharSets[11], SpinnerRefreshRate, spinner.WithWriter(w))}
}
