package internal

import (
	"bytes"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LogLevelError, ParseLevel("error"))
	assert.Equal(t, LogLevelTrace, ParseLevel(" TRACE "))
	assert.Equal(t, LogLevelInfo, ParseLevel(""))
	assert.Equal(t, LogLevelInfo, ParseLevel("verbose"))
}

func TestNamedLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	flags := log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	defer func() {
		log.SetOutput(os.Stderr)
		log.SetFlags(flags)
	}()

	logger := NewLogger(LogLevelWarn).Named("Theme")
	logger.Debug("hidden")
	logger.Warn("persist failed: %s", "disk")

	assert.Equal(t, "[WARN] [Theme] persist failed: disk\n", buf.String())
}
