package config

import (
	"net"
	"time"

	"github.com/urfave/cli/v3"
)

// Server holds server configuration
type Server struct {
	Addr        string
	Port        string
	Async       bool
	HTTPTimeout time.Duration
}

// Flags returns CLI flags for server configuration
func (c *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Server address",
			Value:       "0.0.0.0:5000",
			Destination: &c.Addr,
			Sources:     cli.EnvVars("COURIER_ADDR"),
		},
		&cli.StringFlag{
			Name:        "port",
			Usage:       "Listen port; replaces the port of --addr",
			Destination: &c.Port,
			Sources:     cli.EnvVars("PORT"),
		},
		&cli.BoolFlag{
			Name:        "async",
			Usage:       "Queue push events on a worker pool and respond immediately",
			Destination: &c.Async,
			Sources:     cli.EnvVars("COURIER_ASYNC"),
		},
		&cli.DurationFlag{
			Name:        "http-timeout",
			Usage:       "Timeout of each outbound API call",
			Value:       30 * time.Second,
			Destination: &c.HTTPTimeout,
			Sources:     cli.EnvVars("COURIER_HTTP_TIMEOUT"),
		},
	}
}

// ListenAddr returns Addr with its port replaced by Port when Port is set
func (c *Server) ListenAddr() string {
	if c.Port == "" {
		return c.Addr
	}

	host, _, err := net.SplitHostPort(c.Addr)
	if err != nil {
		host = c.Addr
	}
	return net.JoinHostPort(host, c.Port)
}
