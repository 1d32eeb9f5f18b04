package app

import (
	"fmt"

	"neoshelf/log"
	"neoshelf/shelf"

	"github.com/atotto/clipboard"
)

// Runner executes a button command. Outside a script host there is no
// interpreter to hand the code to, so the default runner places it on the
// system clipboard ready to paste into one.
type Runner interface {
	Run(command string, kind shelf.CommandKind) error
}

// ClipboardRunner copies the command text to the system clipboard.
type ClipboardRunner struct{}

func (ClipboardRunner) Run(command string, kind shelf.CommandKind) error {
	if command == "" {
		return fmt.Errorf("button has no command")
	}
	if err := clipboard.WriteAll(command); err != nil {
		return fmt.Errorf("failed to copy %s command to clipboard: %w", kind, err)
	}
	log.InfoLog.Printf("copied %s command to clipboard (%d bytes)", kind, len(command))
	return nil
}
