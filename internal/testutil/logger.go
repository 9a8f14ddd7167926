package testutil

import (
	"bytes"
	"io"

	"github.com/parishkeeper/parish-server/internal/logger"
)

// MakeNoopLogger returns a logger that discards every record.
func MakeNoopLogger() *logger.Logger {
	return logger.NewWithWriter(io.Discard, 0)
}

// MakeBufferLogger returns a debug-level logger and the buffer it writes to.
func MakeBufferLogger() (*logger.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return logger.NewWithWriter(buf, -4), buf
}
