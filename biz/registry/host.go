package registry

import (
	"net"
	"os"
)

// hostEnvKeys are checked in order before probing interfaces.
var hostEnvKeys = []string{"POD_IP", "HOST_IP", "SERVICE_HOST"}

// AdvertiseHost picks the address Consul should health-check: the first
// set env var, else the first non-loopback IPv4, else 127.0.0.1.
func AdvertiseHost() string {
	for _, k := range hostEnvKeys {
		if ip := os.Getenv(k); ip != "" {
			return ip
		}
	}
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "127.0.0.1"
	}
	for _, addr := range addrs {
		if ipnet, ok := addr.(*net.IPNet); ok && !ipnet.IP.IsLoopback() && ipnet.IP.To4() != nil {
			return ipnet.IP.String()
		}
	}
	return "127.0.0.1"
}
