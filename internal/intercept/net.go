package intercept

import (
	"context"
	"net"
	"strconv"
	"time"

	"github.com/bb1nfosec/bheeshma/pkg/signal"
)

var (
	netDial        = net.Dial
	netDialTimeout = net.DialTimeout
)

var netDialContext = func(ctx context.Context, network, address string) (net.Conn, error) {
	var d net.Dialer
	return d.DialContext(ctx, network, address)
}

// NetView is the monitored facade over outbound TCP/UDP dials (spec.md
// §4.3's "Net hook"). Every method extracts {host, port} from the Go
// `network, address` calling convention and emits NetConnect with
// protocol="tcp" regardless of the underlying network string, matching
// the spec's Node-derived assumption that the low-level connect entry
// point is TCP-oriented.
type NetView struct{}

// Net returns the monitored net facade.
func Net() NetView { return NetView{} }

func (NetView) Dial(network, address string) (net.Conn, error) {
	conn, err := netDial(network, address)
	emitNet(address)
	return conn, err
}

func (NetView) DialTimeout(network, address string, timeout time.Duration) (net.Conn, error) {
	conn, err := netDialTimeout(network, address, timeout)
	emitNet(address)
	return conn, err
}

func (NetView) DialContext(ctx context.Context, network, address string) (net.Conn, error) {
	conn, err := netDialContext(ctx, network, address)
	emitNet(address)
	return conn, err
}

func emitNet(address string) {
	host, port := splitHostPort(address)
	emit(signal.NetConnect, signal.Metadata{Host: host, Port: port, Protocol: "tcp"}, 2, cfgNet())
}

// splitHostPort parses a "host:port" address, defaulting to
// localhost/0 on parse failure per spec.md §4.3's Net hook fallback.
func splitHostPort(address string) (string, int) {
	host, portStr, err := net.SplitHostPort(address)
	if err != nil {
		return "localhost", 0
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return host, 0
	}
	if host == "" {
		host = "localhost"
	}
	return host, port
}
