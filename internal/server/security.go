// Package server provides the listeners shared by the HTTP and gRPC servers.
package server

import (
	"crypto/tls"
	"fmt"
	"net"

	"github.com/parishkeeper/parish-server/internal/config"
	"github.com/parishkeeper/parish-server/internal/model"
)

// NewSecurityLayer picks a TLS or plain listener from configuration.
func NewSecurityLayer(cfg config.TLS) model.SecurityLayer {
	if cfg.Enabled {
		return NewTLSListener(cfg.CertFileName, cfg.PrivateKeyFileName)
	}
	return NewPlainListener()
}

// TLSListener listens with a certificate loaded from disk on every Listen call.
type TLSListener struct {
	certFileName       string
	privateKeyFileName string
}

func NewTLSListener(certFileName, privateKeyFileName string) *TLSListener {
	return &TLSListener{
		certFileName:       certFileName,
		privateKeyFileName: privateKeyFileName,
	}
}

func (l *TLSListener) Listen(protocol, addr string) (net.Listener, error) {
	cert, err := tls.LoadX509KeyPair(l.certFileName, l.privateKeyFileName)
	if err != nil {
		return nil, fmt.Errorf("failed to load TLS certificate: %w", err)
	}
	return tls.Listen(protocol, addr, &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	})
}

// PlainListener listens without encryption.
type PlainListener struct{}

func NewPlainListener() *PlainListener {
	return &PlainListener{}
}

func (l *PlainListener) Listen(protocol, addr string) (net.Listener, error) {
	return net.Listen(protocol, addr)
}
