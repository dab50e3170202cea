package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ultracontrol/ultractl/internal/wifi"
)

// WifiService is the slice of the Wi-Fi controller the tab consumes.
type WifiService interface {
	IsEnabled() bool
	Networks() []wifi.Network
	ScanAsync(cb wifi.UpdateCallback)
	ConnectAsync(req wifi.ConnectRequest, cb wifi.ConnectionCallback)
	ForgetAsync(ssid string, done func(err error))
	SetEnabledAsync(enable bool, done func(err error))
	GetPassword(ssid string) string
	IsEthernetConnected() bool
}

type wifiViewMode int

const (
	wifiModeList wifiViewMode = iota
	wifiModePassword
	wifiModeShare
)

// shareMsg carries a built QR payload back onto the update loop.
type shareMsg struct {
	ssid    string
	payload string
}

// wiredMsg reports the ethernet probe result.
type wiredMsg struct {
	connected bool
}

// wifiModel is the Wi-Fi tab: a sorted network list with connect,
// forget, radio toggle and QR share flows.
type wifiModel struct {
	svc WifiService

	mode     wifiViewMode
	networks []wifi.Network
	cursor   int
	enabled  bool
	scanning bool
	wired    bool
	status   string

	// password prompt state
	password textinput.Model
	target   wifi.Network

	// share state
	sharePayload string
	shareSSID    string
}

func newWifiModel(svc WifiService) *wifiModel {
	pw := textinput.New()
	pw.Placeholder = "password"
	pw.EchoMode = textinput.EchoPassword
	pw.CharLimit = 128

	m := &wifiModel{
		svc:      svc,
		password: pw,
		enabled:  svc.IsEnabled(),
		networks: svc.Networks(),
	}
	m.sort()
	m.rescan()
	return m
}

// capturingInput reports whether the password prompt owns the keyboard.
func (m *wifiModel) capturingInput() bool {
	return m.mode == wifiModePassword
}

// Init probes the wired state off the update loop.
func (m *wifiModel) Init() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		return wiredMsg{connected: svc.IsEthernetConnected()}
	}
}

// rescan requests a scan; the result lands back on the update loop via
// the program queue.
func (m *wifiModel) rescan() {
	if m.scanning {
		// The controller coalesces; just reflect that a scan is queued.
		return
	}
	m.scanning = true
	m.svc.ScanAsync(func(nets []wifi.Network) {
		m.scanning = false
		m.networks = nets
		m.sort()
		if m.cursor >= len(m.networks) {
			m.cursor = 0
		}
	})
}

func (m *wifiModel) sort() {
	wifi.SortNetworks(m.networks)
}

func (m *wifiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case wiredMsg:
		m.wired = msg.connected
		return m, nil

	case shareMsg:
		m.mode = wifiModeShare
		m.shareSSID = msg.ssid
		m.sharePayload = msg.payload
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case wifiModePassword:
			return m.updatePassword(msg)
		case wifiModeShare:
			if msg.String() == "esc" || msg.String() == "q" {
				m.mode = wifiModeList
			}
			return m, nil
		default:
			return m.updateList(msg)
		}
	}
	return m, nil
}

func (m *wifiModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.networks)-1 {
			m.cursor++
		}
	case "r":
		m.status = "scanning..."
		m.rescan()
	case "t":
		enable := !m.enabled
		m.status = "toggling radio..."
		m.svc.SetEnabledAsync(enable, func(err error) {
			if err != nil {
				m.status = "radio toggle failed: " + err.Error()
				return
			}
			m.enabled = enable
			m.status = ""
			if !enable {
				m.networks = nil
				m.cursor = 0
			}
		})
	case "enter":
		if net, ok := m.selected(); ok {
			m.connect(net)
		}
	case "f":
		if net, ok := m.selected(); ok && net.SSID != "" {
			ssid := net.SSID
			m.status = "forgetting " + ssid + "..."
			m.svc.ForgetAsync(ssid, func(err error) {
				if err != nil {
					m.status = "forget failed: " + err.Error()
					return
				}
				m.status = "forgot " + ssid
				m.networks = m.svc.Networks()
				m.sort()
			})
		}
	case "s":
		if net, ok := m.selected(); ok && net.SSID != "" {
			return m, m.buildShare(net)
		}
	}
	return m, nil
}

func (m *wifiModel) selected() (wifi.Network, bool) {
	if m.cursor < 0 || m.cursor >= len(m.networks) {
		return wifi.Network{}, false
	}
	return m.networks[m.cursor], true
}

// connect runs the two-phase flow: try saved credentials first, prompt
// for a password only when that fails on a secured network.
func (m *wifiModel) connect(net wifi.Network) {
	if net.Connected {
		m.status = "already connected to " + net.SSID
		return
	}
	m.status = "connecting to " + net.SSID + "..."
	req := wifi.ConnectRequest{SSID: net.SSID}
	m.svc.ConnectAsync(req, func(success bool, ssid string) {
		m.networks = m.svc.Networks()
		m.sort()
		if success {
			m.status = "connected to " + ssid
			return
		}
		if net.Secured {
			m.target = net
			m.password.SetValue("")
			m.password.Focus()
			m.mode = wifiModePassword
			m.status = ""
			return
		}
		m.status = "failed to connect to " + ssid
	})
}

func (m *wifiModel) updatePassword(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = wifiModeList
		m.status = ""
		return m, nil
	case "enter":
		net := m.target
		pw := m.password.Value()
		m.mode = wifiModeList
		m.status = "connecting to " + net.SSID + "..."
		req := wifi.ConnectRequest{SSID: net.SSID, Password: pw, SecurityType: "wpa-psk"}
		m.svc.ConnectAsync(req, func(success bool, ssid string) {
			m.networks = m.svc.Networks()
			m.sort()
			if success {
				m.status = "connected to " + ssid
			} else {
				m.status = "failed to connect to " + ssid
			}
		})
		return m, nil
	}
	var cmd tea.Cmd
	m.password, cmd = m.password.Update(msg)
	return m, cmd
}

// buildShare resolves the saved passphrase off the update loop, then
// reports the payload back as a shareMsg.
func (m *wifiModel) buildShare(net wifi.Network) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		password := ""
		if net.Secured {
			password = svc.GetPassword(net.SSID)
		}
		payload := wifi.FormatQRPayload(net.SSID, password, false, wifi.AuthFor(net.Secured))
		return shareMsg{ssid: net.SSID, payload: payload}
	}
}

func (m *wifiModel) View() string {
	switch m.mode {
	case wifiModePassword:
		return m.viewPassword()
	case wifiModeShare:
		return m.viewShare()
	}
	return m.viewList()
}

func (m *wifiModel) viewList() string {
	var b strings.Builder

	radio := "off"
	if m.enabled {
		radio = "on"
	}
	b.WriteString(TitleStyle.Render("Wi-Fi") + SecondaryStyle.Render("  radio "+radio))
	if m.wired {
		b.WriteString(SecondaryStyle.Render("  (wired connection active)"))
	}
	b.WriteString("\n\n")

	switch {
	case !m.enabled:
		b.WriteString(SecondaryStyle.Render("radio is off, press t to enable"))
	case len(m.networks) == 0:
		b.WriteString(SecondaryStyle.Render("no networks found, press r to scan"))
	default:
		for i, net := range m.networks {
			b.WriteString(m.renderRow(i, net) + "\n")
		}
	}

	if m.status != "" {
		b.WriteString("\n" + StatusStyle.Render(m.status))
	}
	b.WriteString("\n" + HelpStyle.Render("enter connect · r scan · t radio · f forget · s share"))
	return b.String()
}

func (m *wifiModel) renderRow(i int, net wifi.Network) string {
	marker := " "
	if net.Connected {
		marker = ConnectedStyle.Render(MarkerConnected)
	}
	lock := MarkerOpen
	if net.Secured {
		lock = MarkerSecured
	}
	ssid := net.SSID
	if ssid == "" {
		ssid = SecondaryStyle.Render("<hidden>")
	}
	row := fmt.Sprintf("%s %s %s %s", marker, ssid, lock,
		SecondaryStyle.Render(fmt.Sprintf("%3d%%", net.Signal)))
	if i == m.cursor {
		return SelectedRowStyle.Render(row)
	}
	return RowStyle.Render(row)
}

func (m *wifiModel) viewPassword() string {
	return TitleStyle.Render("Connect to "+m.target.SSID) + "\n\n" +
		m.password.View() + "\n\n" +
		HelpStyle.Render("enter connect · esc cancel")
}

func (m *wifiModel) viewShare() string {
	return TitleStyle.Render("Share "+m.shareSSID) + "\n\n" +
		QRPayloadStyle.Render(m.sharePayload) + "\n\n" +
		HelpStyle.Render("scan the payload with a QR app · esc back")
}
