package serve

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/broady/valtype/cmd/valtype/internal/engine"
	"github.com/broady/valtype/internal/server"
)

type Cmd struct {
	engine.Flags `embed:""`

	Addr        string        `help:"Address to listen on." default:"localhost:9000"`
	CORSOrigins []string      `help:"Origins allowed to call the server; * allows all." name:"cors-origin"`
	Timeout     time.Duration `help:"Maximum duration of a request." default:"10s"`
}

func (c *Cmd) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", c.Addr)
	if err != nil {
		return err
	}
	return c.serve(ctx, ln)
}

// serve serves on ln until ctx is done, then shuts down gracefully.
func (c *Cmd) serve(ctx context.Context, ln net.Listener) error {
	e, err := c.New()
	if err != nil {
		ln.Close()
		return err
	}
	logger := c.Logger()

	var cors *server.CORSConfig
	if len(c.CORSOrigins) > 0 {
		cors = &server.CORSConfig{AllowOrigins: c.CORSOrigins}
	}
	handler := server.New(e, logger).Handler(cors)
	if c.Timeout > 0 {
		handler = http.TimeoutHandler(handler, c.Timeout, `{"error":{"code":"deadline_exceeded","message":"request timeout"}}`)
	}

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	logger.Warn("valtype listening", slog.String("addr", ln.Addr().String()))

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
