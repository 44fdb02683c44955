package test

import (
	"io"
	"os"
	"testing"

	"raycaster/internal/logger"
)

// TestMain runs the suite from the repository root so config.yaml and the
// asset paths it names resolve.
func TestMain(m *testing.M) {
	if err := os.Chdir(".."); err != nil {
		panic(err)
	}
	logger.Init("warn", "text", io.Discard)
	os.Exit(m.Run())
}
