// Package tcp hosts a challenge as a remote service: every connection is
// one independent attempt, prompt and all, like running the program with
// its standard streams attached to the socket.
package tcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/atinyakov/flaggate/internal/models"
)

// Player plays one attempt of a named challenge over a stream.
type Player interface {
	Play(ctx context.Context, name, remote string, r io.Reader, w io.Writer) (models.Attempt, error)
}

// Server accepts connections and hands each to the Player.
type Server struct {
	// Addr is the listen address used by ListenAndServe.
	Addr string
	// Challenge is the name of the challenge served.
	Challenge string
	// Player runs the attempts.
	Player Player
	// Logger reports session failures.
	Logger *zap.Logger
	// SessionTimeout bounds a whole session; zero means no limit.
	SessionTimeout time.Duration
}

// ListenAndServe listens on s.Addr and serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then closes ln and
// waits for running sessions to finish. It returns nil after a cancellation.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	var wg sync.WaitGroup
	defer wg.Wait()

	stop := context.AfterFunc(ctx, func() { _ = ln.Close() })
	defer stop()

	s.Logger.Info("serving challenge",
		zap.String("challenge", s.Challenge),
		zap.String("addr", ln.Addr().String()))

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			s.handle(ctx, conn)
		}()
	}
}

func (s *Server) handle(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	remote := conn.RemoteAddr().String()
	if s.SessionTimeout > 0 {
		_ = conn.SetDeadline(time.Now().Add(s.SessionTimeout))
	}
	// A cancelled server unblocks the session instead of waiting out its timeout.
	stop := context.AfterFunc(ctx, func() { _ = conn.SetDeadline(time.Now()) })
	defer stop()

	a, err := s.Player.Play(ctx, s.Challenge, remote, conn, conn)
	if err != nil {
		s.Logger.Error("session failed", zap.String("remote", remote), zap.Error(err))
		return
	}
	s.Logger.Debug("session closed",
		zap.String("remote", remote),
		zap.String("attempt", a.ID.String()),
		zap.Bool("accepted", a.Accepted))
}
