package cli

import (
	"os"
	"testing"

	"github.com/rs/zerolog"
)

// Tests don't go through logging.Setup, so per-write debug lines would
// otherwise flood the output.
func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}
