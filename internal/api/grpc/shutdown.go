package grpc

import (
	"time"

	gogrpc "google.golang.org/grpc"

	"github.com/olyamironova/electricity-trading-client/internal/core"
)

// Shutdown ends the engine's subscriptions so stream handlers return, then
// stops srv gracefully. In-flight calls still running after timeout are
// cut off. It reports whether the graceful stop finished in time.
func Shutdown(srv *gogrpc.Server, eng *core.Engine, timeout time.Duration) bool {
	eng.Close()

	done := make(chan struct{})
	go func() {
		srv.GracefulStop()
		close(done)
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-done:
		return true
	case <-timer.C:
		srv.Stop()
		<-done
		return false
	}
}
