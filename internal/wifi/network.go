package wifi

import "sort"

// Network is one Wi-Fi scan result.
type Network struct {
	// SSID is the network name. Empty for hidden SSIDs.
	SSID string
	// BSSID is the access point MAC address when known.
	BSSID string
	// Signal is the signal strength percentage, 0-100.
	Signal int
	// Connected is true for the in-use network.
	Connected bool
	// Secured is false only when the security column is empty or "--".
	Secured bool
}

// ConnectRequest describes a connection attempt.
type ConnectRequest struct {
	SSID string
	// Password may be empty; nmcli then falls back to saved credentials.
	Password string
	// SecurityType is the key management scheme, e.g. "wpa-psk".
	// Empty for open networks.
	SecurityType string
}

// State is the process-wide Wi-Fi snapshot, replaced atomically on each
// scan completion.
type State struct {
	Enabled  bool
	LastScan []Network
}

// SortNetworks orders a scan for display: connected first, then by
// descending signal. The sort is stable so equal entries keep their scan
// order.
func SortNetworks(nets []Network) {
	sort.SliceStable(nets, func(i, j int) bool {
		if nets[i].Connected != nets[j].Connected {
			return nets[i].Connected
		}
		return nets[i].Signal > nets[j].Signal
	})
}
