package progress

import (
	"github.com/schollz/progressbar/v3"
)

// Bar wraps the terminal progress bar shown while tagging files in
// non-verbose mode.
type Bar struct {
	bar *progressbar.ProgressBar
}

// New creates a progress bar sized for total files.
func New(total int) *Bar {
	return &Bar{
		bar: progressbar.NewOptions(total,
			progressbar.OptionSetDescription("tagging"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetPredictTime(true),
			progressbar.OptionClearOnFinish(),
		),
	}
}

// Increment advances the bar by one file.
func (b *Bar) Increment() {
	_ = b.bar.Add(1)
}

// Finish completes and clears the bar.
func (b *Bar) Finish() {
	_ = b.bar.Finish()
}
