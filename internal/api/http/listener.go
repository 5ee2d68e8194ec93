package http

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Listen binds the configured port and serves the app. When the port is
// already taken it increments and retries, up to retries extra attempts;
// only exhausting the whole range is fatal to startup.
func Listen(app *fiber.App, logger *zap.Logger, host string, port, retries int) error {
	ln, err := acquireListener(logger, host, port, retries)
	if err != nil {
		return err
	}
	logger.Info("listening", zap.String("addr", ln.Addr().String()))
	return app.Listener(ln)
}

func acquireListener(logger *zap.Logger, host string, port, retries int) (net.Listener, error) {
	if retries < 0 {
		retries = 0
	}
	for attempt := 0; attempt <= retries; attempt++ {
		addr := net.JoinHostPort(host, strconv.Itoa(port+attempt))
		ln, err := net.Listen("tcp", addr)
		if err == nil {
			return ln, nil
		}
		if !isAddrInUse(err) {
			return nil, err
		}
		logger.Warn("port in use, trying next", zap.String("addr", addr))
	}
	return nil, fmt.Errorf("no free port between %d and %d", port, port+retries)
}

func isAddrInUse(err error) bool {
	return errors.Is(err, syscall.EADDRINUSE)
}
