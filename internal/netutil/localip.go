package netutil

import "net"

// LocalIP returns the first non-loopback IPv4 address of this host, or
// "localhost" when there is none.
func LocalIP() string {
	ifaces, err := net.Interfaces()
	if err != nil {
		return "localhost"
	}
	return firstIPv4(ifaces, addrsOf)
}

type ifaceAddrs func(net.Interface) ([]net.Addr, error)

func addrsOf(i net.Interface) ([]net.Addr, error) { return i.Addrs() }

func firstIPv4(ifaces []net.Interface, addrs ifaceAddrs) string {
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		list, err := addrs(iface)
		if err != nil {
			continue
		}
		for _, a := range list {
			var ip net.IP
			switch v := a.(type) {
			case *net.IPNet:
				ip = v.IP
			case *net.IPAddr:
				ip = v.IP
			}
			if ip4 := ip.To4(); ip4 != nil && !ip4.IsLoopback() {
				return ip4.String()
			}
		}
	}
	return "localhost"
}
