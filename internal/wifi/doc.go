// Package wifi drives NetworkManager's command line interface to scan,
// connect, forget and share wireless networks.
//
// The Controller is the single owner of Wi-Fi state. Blocking methods
// (Scan, Connect, Disconnect, Forget, Enable, Disable, GetPassword,
// IsEthernetConnected) execute nmcli synchronously and belong on a worker;
// the Async variants run them on the controller's worker goroutine and
// deliver results on the UI queue. Scans are single-flight: one in flight,
// one coalesced pending request, intermediate requests dropped.
//
// nmcli failures never escape as panics. Operations report a CommandError
// or NoInterfaceError and the controller re-scans afterwards so observers
// always see a fresh network list.
package wifi
