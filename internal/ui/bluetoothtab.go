package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ultracontrol/ultractl/internal/bluetooth"
)

// BluetoothService is the slice of the bluetooth controller the tab
// consumes.
type BluetoothService interface {
	Powered() bool
	SetPowered(on bool) error
	Devices() ([]bluetooth.Device, error)
	Connect(address string) error
	Disconnect(address string) error
}

type bluetoothStateMsg struct {
	powered bool
	devices []bluetooth.Device
	err     error
}

// bluetoothModel is the bluetooth tab: adapter power and the paired
// device list.
type bluetoothModel struct {
	svc BluetoothService

	powered bool
	devices []bluetooth.Device
	cursor  int
	status  string
	err     error
}

func newBluetoothModel(svc BluetoothService) *bluetoothModel {
	return &bluetoothModel{svc: svc}
}

func (m *bluetoothModel) Init() tea.Cmd {
	return m.refresh()
}

func (m *bluetoothModel) refresh() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		powered := svc.Powered()
		if !powered {
			return bluetoothStateMsg{powered: false}
		}
		devices, err := svc.Devices()
		return bluetoothStateMsg{powered: true, devices: devices, err: err}
	}
}

func (m *bluetoothModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case bluetoothStateMsg:
		m.powered, m.devices, m.err = msg.powered, msg.devices, msg.err
		if m.cursor >= len(m.devices) {
			m.cursor = 0
		}
		return m, nil

	case tea.KeyMsg:
		svc := m.svc
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.devices)-1 {
				m.cursor++
			}
		case "t":
			on := !m.powered
			m.status = "toggling adapter..."
			return m, tea.Sequence(
				func() tea.Msg { svc.SetPowered(on); return nil },
				m.refresh(),
			)
		case "r":
			return m, m.refresh()
		case "enter":
			if m.cursor < len(m.devices) {
				dev := m.devices[m.cursor]
				m.status = "updating " + dev.Name + "..."
				return m, tea.Sequence(
					func() tea.Msg {
						if dev.Connected {
							svc.Disconnect(dev.Address)
						} else {
							svc.Connect(dev.Address)
						}
						return nil
					},
					m.refresh(),
				)
			}
		}
	}
	return m, nil
}

func (m *bluetoothModel) View() string {
	var b strings.Builder

	state := "off"
	if m.powered {
		state = "on"
	}
	b.WriteString(TitleStyle.Render("Bluetooth") + SecondaryStyle.Render("  adapter "+state) + "\n\n")

	switch {
	case !m.powered:
		b.WriteString(SecondaryStyle.Render("adapter is off, press t to enable"))
	case m.err != nil:
		b.WriteString(ErrorStyle.Render("device listing failed: " + m.err.Error()))
	case len(m.devices) == 0:
		b.WriteString(SecondaryStyle.Render("no paired devices"))
	default:
		for i, dev := range m.devices {
			marker := " "
			if dev.Connected {
				marker = ConnectedStyle.Render(MarkerConnected)
			}
			row := marker + " " + dev.Name + " " + SecondaryStyle.Render(dev.Address)
			if i == m.cursor {
				row = SelectedRowStyle.Render(row)
			}
			b.WriteString(row + "\n")
		}
	}

	if m.status != "" {
		b.WriteString("\n" + StatusStyle.Render(m.status))
	}
	b.WriteString("\n" + HelpStyle.Render("enter connect/disconnect · t adapter · r refresh"))
	return b.String()
}
