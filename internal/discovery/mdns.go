// Package discovery advertises the server on the local network so nearby
// clients can find a drawing session without typing an address.
package discovery

import (
	"fmt"
	"os"

	"github.com/hashicorp/mdns"
)

// Advertise publishes service on port via mDNS until the returned server is
// shut down.
func Advertise(service string, port int) (*mdns.Server, error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("get hostname: %w", err)
	}

	zone, err := mdns.NewMDNSService(host, service, "", "", port, nil, []string{"simpledraw"})
	if err != nil {
		return nil, fmt.Errorf("create mdns service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: zone})
	if err != nil {
		return nil, fmt.Errorf("start mdns server: %w", err)
	}
	return server, nil
}

// Browse reports the address of every instance of service that answers
// within the default lookup timeout.
func Browse(service string, found func(addr string)) error {
	entries := make(chan *mdns.ServiceEntry, 8)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for e := range entries {
			if e.AddrV4 == nil || e.Port == 0 {
				continue
			}
			found(fmt.Sprintf("%s:%d", e.AddrV4, e.Port))
		}
	}()
	err := mdns.Lookup(service, entries)
	close(entries)
	<-done
	if err != nil {
		return fmt.Errorf("mdns lookup: %w", err)
	}
	return nil
}
