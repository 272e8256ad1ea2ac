package progress

import (
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/mattn/go-isatty"
)

var spinnerSpeed = 100 * time.Millisecond
var spinnerInstance = spinner.New(spinner.CharSets[14], spinnerSpeed)

// Enabled controls whether Show draws anything. By default, it's only enabled when stdout is a terminal.
var Enabled = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

// Show starts showing a progress spinner.
func Show(text string, args ...interface{}) {
	if !Enabled {
		return
	}
	message := " " + fmt.Sprintf(text, args...)
	spinnerInstance.Suffix = message
	spinnerInstance.Stop()
	spinnerInstance.Start()
}

// Stop stops the progress spinner.
func Stop() {
	if !Enabled {
		return
	}
	spinnerInstance.Stop()
}
