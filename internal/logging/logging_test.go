package logging_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nikbrunner/quotes/internal/logging"
	"go.uber.org/zap/zapcore"
	"gotest.tools/v3/assert"
)

func TestNew_Levels(t *testing.T) {
	logger, err := logging.New(logging.Options{Level: "warn"})
	assert.NilError(t, err)
	assert.Assert(t, !logger.Core().Enabled(zapcore.DebugLevel))
	assert.Assert(t, logger.Core().Enabled(zapcore.WarnLevel))

	logger, err = logging.New(logging.Options{Level: "warn", Verbose: true})
	assert.NilError(t, err)
	assert.Assert(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := logging.New(logging.Options{Level: "loud"})
	assert.ErrorContains(t, err, "invalid log level")
}

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "quotes.log")

	logger, err := logging.New(logging.Options{File: path})
	assert.NilError(t, err)
	logger.Info("sync committed")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	assert.NilError(t, err)
	assert.Assert(t, strings.Contains(string(data), "sync committed"))
}
