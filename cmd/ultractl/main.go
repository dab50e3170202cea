// Ultractl is a control panel for Linux desktops.
//
// It presents tabs for volume, Wi-Fi, bluetooth, display and power
// management, backed by the host utilities (nmcli, pactl, bluetoothctl,
// brightnessctl, powerprofilesctl). Tabs load lazily: content is built
// only when a tab is first visited.
//
// Usage:
//
//	ultractl [flags]
//	ultractl [command]
//
// Running without arguments opens the panel on the first enabled tab.
// A tab selector flag (--wifi, --volume, ...) opens that tab directly;
// when a panel is already running the selector is forwarded to it
// instead of starting a second instance.
//
// The process exits 0 on normal close and 42 when a settings change
// requires the launcher to restart the panel.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ultracontrol/ultractl/internal/settings"
	"github.com/ultracontrol/ultractl/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		if err == errRestartRequired {
			os.Exit(settings.RestartExitCode)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ultractl",
	Short: "Desktop control panel",
	Long: `A control panel for Linux desktops.

Presents tabs for volume, Wi-Fi, bluetooth, display and power
management. Tab content is constructed lazily on first visit, so the
panel opens instantly regardless of how slow the host utilities are.`,
	Version: version.Version,
	RunE:    runPanel,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("ultractl %s (commit: %s)\n", version.Version, version.Commit)
	},
}
