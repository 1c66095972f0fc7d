package tui

import (
	"github.com/blackwell-systems/gamedock/internal/util"
	"github.com/spf13/cobra"
)

// ShouldUseTUI returns true if the command should open the interactive
// launcher: stdout is a terminal, --no-interactive is unset and no
// machine-readable output was asked for.
func ShouldUseTUI(cmd *cobra.Command) bool {
	if !util.IsTTY() {
		return false
	}
	if noInteractive, _ := cmd.Flags().GetBool("no-interactive"); noInteractive {
		return false
	}
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return false
	}
	return true
}
