// Package server binds a listener and runs a Fiber app on it.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/gofiber/fiber/v2"
)

// BindError reports that the listening socket could not be created.
type BindError struct {
	Addr string
	Err  error
}

func (e *BindError) Error() string {
	return fmt.Sprintf("bind %s: %v", e.Addr, e.Err)
}

func (e *BindError) Unwrap() error { return e.Err }

// Server is a Fiber app serving on a bound listener.
type Server struct {
	app  *fiber.App
	ln   net.Listener
	done chan error
}

// Start binds addr and serves app on it in the background. Binding happens
// before Start returns, so a port conflict is reported immediately.
func Start(addr string, app *fiber.App) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, &BindError{Addr: addr, Err: err}
	}

	s := &Server{app: app, ln: ln, done: make(chan error, 1)}
	go func() {
		s.done <- app.Listener(ln)
	}()
	return s, nil
}

// Addr returns the bound address, useful when addr asked for port 0.
func (s *Server) Addr() net.Addr {
	return s.ln.Addr()
}

// Wait blocks until the server stops serving and returns the serve error, if any.
// A listener closed by Shutdown is not an error.
func (s *Server) Wait() error {
	err := <-s.done
	if errors.Is(err, net.ErrClosed) {
		return nil
	}
	return err
}

// Shutdown stops accepting connections and waits for in-flight requests
// until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.app.ShutdownWithContext(ctx)
	// The app only tracks the listener once serving has begun.
	if cerr := s.ln.Close(); cerr != nil && !errors.Is(cerr, net.ErrClosed) && err == nil {
		err = cerr
	}
	return err
}
