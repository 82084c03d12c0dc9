package scan

import (
	"net"

	"github.com/google/gopacket/macs"
	"github.com/mostlygeek/arp"
)

// Device is what the local ARP cache knows about a host.
type Device struct {
	MAC          string
	Manufacturer string
}

// LookupDevice searches the ARP cache for ip and resolves the vendor of its
// MAC address. Only hosts on a directly attached network can be found; for
// anything else the returned Device is empty.
func LookupDevice(ip net.IP) Device {
	var device Device

	if ip == nil || ip.IsLoopback() || ip.IsUnspecified() {
		return device
	}

	macStr := arp.Search(ip.String())
	if macStr == "" || macStr == "00:00:00:00:00:00" {
		return device
	}

	mac, err := net.ParseMAC(macStr)
	if err != nil || len(mac) < 3 {
		return device
	}

	device.MAC = mac.String()

	prefix := [3]byte{
		mac[0],
		mac[1],
		mac[2],
	}

	if manufacturer, ok := macs.ValidMACPrefixMap[prefix]; ok {
		device.Manufacturer = manufacturer
	}

	return device
}
