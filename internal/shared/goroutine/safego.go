// Package goroutine provides goroutine helpers with panic recovery.
package goroutine

import (
	"fmt"
	"runtime/debug"

	"github.com/claimdesk/claimdesk/internal/shared/logger"
)

// SafeGo runs fn on a new goroutine and logs a panic instead of crashing.
func SafeGo(log logger.Interface, name string, fn func()) {
	go func() {
		defer Recover(log, name)
		fn()
	}()
}

// Recover logs a recovered panic with its stack. It must be deferred directly.
func Recover(log logger.Interface, name string) {
	if r := recover(); r != nil {
		log.Errorw("goroutine panicked",
			"goroutine", name,
			"panic", fmt.Sprintf("%v", r),
			"stack", string(debug.Stack()),
		)
	}
}
