package model

import (
	"context"
	"net"
)

// SecurityLayer opens the listener a server accepts connections on.
type SecurityLayer interface {
	Listen(protocol, addr string) (net.Listener, error)
}

// Server is a long-running listener managed by cmd/main.go.
type Server interface {
	// Start blocks until the server stops.
	Start(securityLayer SecurityLayer) error
	Stop(ctx context.Context) error
	Address() string
}
