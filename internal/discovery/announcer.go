package discovery

import (
	"fmt"
	"os"

	"github.com/grandcat/zeroconf"
)

const (
	// ServiceType is the mDNS service type the server registers under
	ServiceType = "_http._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."
)

// Announcer registers the running HTTP server as an mDNS service so clients
// on the local network can find it without knowing the address.
type Announcer struct {
	server *zeroconf.Server
}

// Announce registers the service on all multicast-capable interfaces.
// When instance is empty, a name is derived from the hostname.
func Announce(instance string, port int) (*Announcer, error) {
	srv, err := zeroconf.Register(instanceName(instance), ServiceType, ServiceDomain, port,
		[]string{"path=/"}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to register mDNS service: %w", err)
	}

	return &Announcer{server: srv}, nil
}

// Shutdown withdraws the mDNS registration.
func (a *Announcer) Shutdown() {
	if a.server != nil {
		a.server.Shutdown()
	}
}

// instanceName returns the given instance name, or one derived from the
// hostname when empty.
func instanceName(instance string) string {
	if instance != "" {
		return instance
	}
	host, err := os.Hostname()
	if err != nil {
		host = "beginner-http-server"
	}
	return fmt.Sprintf("Beginner HTTP Server on %s", host)
}
