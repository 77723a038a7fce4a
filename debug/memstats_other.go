//go:build !windows

package debug

import (
	"log/slog"
	"time"
)

// StartWorkingSetLogger is a no-op outside Windows; the portable runtime
// logger covers heap stats there.
func StartWorkingSetLogger(interval time.Duration, logger *slog.Logger) {}
