package imgproc

import (
	"log/slog"

	"github.com/nvr-ai/go-imgproc/internal/logger"
)

// SetLogger configures the logger for every package of the module. Pass nil
// to restore the default silent behaviour. Safe for concurrent use.
//
// Log levels used:
//   - [slog.LevelDebug]: distortion-map rebuilds, engine construction, blur
//     partitioning.
func SetLogger(l *slog.Logger) {
	logger.Set(l)
}
