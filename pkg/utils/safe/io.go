package safe

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/minutia-lab/minutia/pkg/utils/logging"
)

// Close safely closes an io.Closer and logs any errors.
// It handles nil closers gracefully.
func Close(ctx context.Context, closer io.Closer) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.From(ctx).Error("Failed to close", logging.ErrAttr(err))
	}
}

// Remove deletes a file and logs any errors. A missing file is not an error.
// Cleanup failures must never abort the caller, so they are logged only.
func Remove(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logging.From(ctx).Warn("Failed to remove file", slog.String("path", path), logging.ErrAttr(err))
	}
}
