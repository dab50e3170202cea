package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ultracontrol/ultractl/internal/bluetooth"
	"github.com/ultracontrol/ultractl/internal/display"
	"github.com/ultracontrol/ultractl/internal/logging"
	"github.com/ultracontrol/ultractl/internal/power"
	"github.com/ultracontrol/ultractl/internal/server"
	"github.com/ultracontrol/ultractl/internal/settings"
	"github.com/ultracontrol/ultractl/internal/shell"
	"github.com/ultracontrol/ultractl/internal/tabs"
	"github.com/ultracontrol/ultractl/internal/ui"
	"github.com/ultracontrol/ultractl/internal/volume"
	"github.com/ultracontrol/ultractl/internal/wifi"
)

// errRestartRequired signals main to exit with the restart code.
var errRestartRequired = errors.New("restart required")

// Panel flags
var (
	flagVolume    bool
	flagWifi      bool
	flagBluetooth bool
	flagDisplay   bool
	flagPower     bool
	flagMinimal   bool
	flagFloat     bool
	flagSettings  bool
)

// Wi-Fi command flags
var (
	wifiPassword string
	wifiSecurity string
	wifiHidden   bool
)

func init() {
	rootCmd.Flags().BoolVar(&flagVolume, "volume", false, "Open the volume tab")
	rootCmd.Flags().BoolVar(&flagWifi, "wifi", false, "Open the Wi-Fi tab")
	rootCmd.Flags().BoolVar(&flagBluetooth, "bluetooth", false, "Open the bluetooth tab")
	rootCmd.Flags().BoolVar(&flagDisplay, "display", false, "Open the display tab")
	rootCmd.Flags().BoolVar(&flagPower, "power", false, "Open the power tab")
	rootCmd.Flags().BoolVar(&flagMinimal, "minimal", false, "Hide the tab bar")
	rootCmd.Flags().BoolVar(&flagFloat, "float", false, "Request a floating window")
	rootCmd.Flags().BoolVar(&flagSettings, "settings", false, "Print the effective settings and exit")

	rootCmd.AddCommand(wifiCmd)
	rootCmd.AddCommand(settingsCmd)

	wifiCmd.AddCommand(wifiScanCmd)
	wifiCmd.AddCommand(wifiConnectCmd)
	wifiCmd.AddCommand(wifiDisconnectCmd)
	wifiCmd.AddCommand(wifiForgetCmd)
	wifiCmd.AddCommand(wifiQRCmd)
	wifiCmd.AddCommand(wifiRadioCmd)

	wifiConnectCmd.Flags().StringVar(&wifiPassword, "password", "", "Network password (prompted when required and omitted)")
	wifiConnectCmd.Flags().StringVar(&wifiSecurity, "security", "wpa-psk", "Key management scheme for new profiles")
	wifiQRCmd.Flags().BoolVar(&wifiHidden, "hidden", false, "Mark the network hidden in the QR payload")

	settingsCmd.AddCommand(settingsListCmd)
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
}

// initialSelection resolves the tab selector flags. At most one may be
// set.
func initialSelection() (tabs.ID, error) {
	var picked []tabs.ID
	for _, sel := range []struct {
		set bool
		id  tabs.ID
	}{
		{flagVolume, tabs.Volume},
		{flagWifi, tabs.Wifi},
		{flagBluetooth, tabs.Bluetooth},
		{flagDisplay, tabs.Display},
		{flagPower, tabs.Power},
	} {
		if sel.set {
			picked = append(picked, sel.id)
		}
	}
	switch len(picked) {
	case 0:
		return "", nil
	case 1:
		return picked[0], nil
	}
	return "", fmt.Errorf("at most one tab selector flag may be given")
}

func runPanel(cmd *cobra.Command, args []string) error {
	if err := logging.InitializeFromEnv(); err != nil {
		return err
	}
	defer logging.Sync()
	logger := logging.GetLogger()

	cfg, err := settings.Load()
	if err != nil {
		return err
	}
	if flagSettings {
		return printSettings(cfg)
	}
	if flagFloat {
		cfg.SetFloating(true)
	}

	initial, err := initialSelection()
	if err != nil {
		return err
	}

	// Forward to a running instance instead of opening a second panel.
	if server.Running(server.DefaultAddr) {
		c := server.Command{Action: server.ActionRaise}
		if initial != "" {
			c = server.Command{Action: server.ActionSwitchTab, Tab: string(initial)}
		}
		return server.Send(server.DefaultAddr, c)
	}

	runner := shell.NewExecRunner(logger)
	app, program := ui.NewAppProgram(ui.Services{
		Volume:    volume.NewController(runner, logger),
		Power:     power.NewController(runner, cfg, logger),
		Bluetooth: bluetooth.NewController(runner, logger),
		Display:   display.NewController(runner, logger),
	}, ui.Options{
		Initial:  initial,
		Minimal:  flagMinimal || cfg.GetBool(settings.KeyMinimal, false),
		Settings: cfg,
		Logger:   logger,
	})

	// The Wi-Fi controller marshals its callbacks through the program
	// queue, so it is wired once the app exists.
	wifiCtl := wifi.NewController(runner, app.Queue(), logger)
	defer wifiCtl.Close()
	app.SetWifi(wifiCtl)

	control := server.NewControl(server.DefaultAddr, controlHandler(app), logger)
	if err := control.Start(); err != nil {
		return err
	}
	defer control.Close(cmd.Context())

	if _, err := program.Run(); err != nil {
		return err
	}

	saveLastTab(app.CurrentTab())

	if app.Restart() {
		return errRestartRequired
	}
	return nil
}

// controlHandler translates control-endpoint commands into app requests
// marshalled onto the update loop.
func controlHandler(app *ui.App) server.Handler {
	return func(cmd server.Command) error {
		switch cmd.Action {
		case server.ActionRaise:
			// Terminal focus is the compositor's business; reaching the
			// running instance is all a second invocation needs.
			return nil
		case server.ActionSwitchTab:
			id, err := tabs.ParseSelector(cmd.Tab)
			if err != nil {
				return err
			}
			app.Dispatch(func() { app.RequestSwitch(id) })
			return nil
		case server.ActionSettingsChanged:
			app.Dispatch(app.RequestRestart)
			return nil
		}
		return fmt.Errorf("unknown control action %q", cmd.Action)
	}
}

func printSettings(cfg *settings.Settings) error {
	path, err := settings.SettingsPath()
	if err != nil {
		return err
	}
	fmt.Printf("# %s\n", path)
	fmt.Printf("floating %v\n", cfg.Floating())
	fmt.Printf("minimal %v\n", cfg.GetBool(settings.KeyMinimal, false))
	var order []string
	for _, id := range cfg.TabOrder() {
		order = append(order, string(id))
	}
	fmt.Printf("tab_order %s\n", strings.Join(order, ","))
	for _, id := range tabs.All {
		fmt.Printf("tab.%s %v\n", id, cfg.TabEnabled(id))
	}
	for _, action := range []string{power.ActionLock, power.ActionSuspend, power.ActionReboot, power.ActionShutdown} {
		fmt.Printf("command.%s %s\n", action, cfg.Command(action))
	}
	return nil
}

func saveLastTab(id tabs.ID) {
	if id == "" {
		return
	}
	st, err := settings.LoadState()
	if err != nil {
		return
	}
	st.LastTab = string(id)
	_ = st.Save()
}

// newWifiController builds a blocking-use controller for the CLI
// subcommands.
func newWifiController() *wifi.Controller {
	_ = logging.InitializeFromEnv()
	logger := logging.GetLogger()
	return wifi.NewController(shell.NewExecRunner(logger), nil, logger)
}

var wifiCmd = &cobra.Command{
	Use:   "wifi",
	Short: "Wi-Fi operations without opening the panel",
}

var wifiScanCmd = &cobra.Command{
	Use:   "scan",
	Short: "List visible Wi-Fi networks",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newWifiController()
		defer c.Close()

		if !c.IsEnabled() {
			fmt.Println("Wi-Fi radio is off. Enable it with 'ultractl wifi radio on'.")
			return nil
		}
		nets := c.Scan()
		wifi.SortNetworks(nets)
		if len(nets) == 0 {
			fmt.Println("No networks found.")
			return nil
		}
		for _, n := range nets {
			marker := " "
			if n.Connected {
				marker = "*"
			}
			security := "open"
			if n.Secured {
				security = "secured"
			}
			ssid := n.SSID
			if ssid == "" {
				ssid = "<hidden>"
			}
			fmt.Printf("%s %-32s %3d%%  %s\n", marker, ssid, n.Signal, security)
		}
		return nil
	},
}

var wifiConnectCmd = &cobra.Command{
	Use:   "connect <ssid>",
	Short: "Connect to a network",
	Long: `Connect to a Wi-Fi network.

Saved credentials are tried first. If that fails on a secured network
and no --password was given, a password is prompted for and a new
profile is created.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ssid := args[0]
		c := newWifiController()
		defer c.Close()

		if wifiPassword != "" {
			return connectReport(c, wifi.ConnectRequest{
				SSID: ssid, Password: wifiPassword, SecurityType: wifiSecurity,
			})
		}

		// Saved-credential attempt first.
		if err := c.Connect(wifi.ConnectRequest{SSID: ssid}); err == nil {
			fmt.Printf("Connected to %s\n", ssid)
			return nil
		}

		secured := true
		for _, n := range c.Networks() {
			if n.SSID == ssid {
				secured = n.Secured
				break
			}
		}
		if !secured {
			return fmt.Errorf("failed to connect to %s", ssid)
		}

		pw, err := promptPassword(fmt.Sprintf("Password for %s: ", ssid))
		if err != nil {
			return err
		}
		return connectReport(c, wifi.ConnectRequest{
			SSID: ssid, Password: pw, SecurityType: wifiSecurity,
		})
	},
}

func connectReport(c *wifi.Controller, req wifi.ConnectRequest) error {
	if err := c.Connect(req); err != nil {
		return fmt.Errorf("failed to connect to %s: %w", req.SSID, err)
	}
	fmt.Printf("Connected to %s\n", req.SSID)
	return nil
}

// promptPassword reads a password without echo when stdin is a
// terminal, falling back to a plain line read otherwise (pipes,
// scripts).
func promptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(raw), nil
	}
	var line string
	if _, err := fmt.Fscanln(os.Stdin, &line); err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return line, nil
}

var wifiDisconnectCmd = &cobra.Command{
	Use:   "disconnect",
	Short: "Disconnect the Wi-Fi interface",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newWifiController()
		defer c.Close()
		if err := c.Disconnect(); err != nil {
			return err
		}
		fmt.Println("Disconnected.")
		return nil
	},
}

var wifiForgetCmd = &cobra.Command{
	Use:   "forget <ssid>",
	Short: "Delete saved profiles for a network",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newWifiController()
		defer c.Close()
		if err := c.Forget(args[0]); err != nil {
			return err
		}
		fmt.Printf("Forgot %s\n", args[0])
		return nil
	},
}

var wifiQRCmd = &cobra.Command{
	Use:   "qr <ssid>",
	Short: "Print the Wi-Fi QR share payload for a network",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ssid := args[0]
		c := newWifiController()
		defer c.Close()

		secured := false
		for _, n := range c.Scan() {
			if n.SSID == ssid {
				secured = n.Secured
				break
			}
		}
		password := ""
		if secured {
			password = c.GetPassword(ssid)
		}
		fmt.Println(wifi.FormatQRPayload(ssid, password, wifiHidden, wifi.AuthFor(secured)))
		return nil
	},
}

var wifiRadioCmd = &cobra.Command{
	Use:   "radio [on|off]",
	Short: "Show or set the Wi-Fi radio state",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newWifiController()
		defer c.Close()

		if len(args) == 0 {
			state := "disabled"
			if c.IsEnabled() {
				state = "enabled"
			}
			fmt.Println(state)
			return nil
		}
		switch args[0] {
		case "on":
			return c.Enable()
		case "off":
			return c.Disable()
		}
		return fmt.Errorf("invalid radio state %q (want on or off)", args[0])
	},
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Inspect and edit panel settings",
}

var settingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the effective settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := settings.Load()
		if err != nil {
			return err
		}
		return printSettings(cfg)
	},
}

var settingsGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one setting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := settings.Load()
		if err != nil {
			return err
		}
		fmt.Println(cfg.Get(args[0], ""))
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Long: `Change one setting and save the file.

When a panel instance is running it is notified and exits with code 42
so its launcher can restart it with the new configuration.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := settings.Load()
		if err != nil {
			return err
		}
		cfg.Set(args[0], args[1])
		if err := cfg.Save(); err != nil {
			return err
		}

		if server.Running(server.DefaultAddr) {
			if err := server.Send(server.DefaultAddr, server.Command{
				Action: server.ActionSettingsChanged,
			}); err != nil {
				fmt.Fprintf(os.Stderr, "warning: running panel not notified: %v\n", err)
			}
		}
		return nil
	},
}

