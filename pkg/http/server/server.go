package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port          int
	WebsocketPort int
	ProxyPort     int
	Timeout       time.Duration
}

// New build an *http.Server for the api port, or for the websocket port when
// isWs is set. read/write/idle timeouts come from config (HTTP_SERVER_* keys).
func New(ctx context.Context, handler http.Handler, config Config, isWs bool) *http.Server {
	port := config.Port
	if isWs {
		port = config.WebsocketPort
	}

	return &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: handler,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},

		ReadTimeout:       viper.GetDuration("HTTP_SERVER_READ_TIMEOUT"),
		WriteTimeout:      config.Timeout + viper.GetDuration("HTTP_SERVER_WRITE_TIMEOUT"),
		IdleTimeout:       viper.GetDuration("HTTP_SERVER_IDLE_TIMEOUT"),
		ReadHeaderTimeout: viper.GetDuration("HTTP_SERVER_READ_HEADER_TIMEOUT"),
	}
}

// GracefulShutdown block until SIGINT/SIGTERM.
func GracefulShutdown() os.Signal {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	return <-quit
}
