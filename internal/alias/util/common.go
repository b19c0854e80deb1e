package util

import (
	"os"

	"go.uber.org/zap"
)

// CloseFileFunc closes f and reports a failure on the global zap logger.
func CloseFileFunc(f *os.File) {
	if err := f.Close(); err != nil {
		zap.L().Warn("close file", zap.String("name", f.Name()), zap.Error(err))
	}
}
