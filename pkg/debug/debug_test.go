package debug_test

import (
	"testing"
	"time"

	"github.com/vanderheijden86/clustermap/pkg/debug"
)

func TestSetEnabledToggles(t *testing.T) {
	initial := debug.Enabled()
	defer debug.SetEnabled(initial)

	debug.SetEnabled(true)
	if !debug.Enabled() {
		t.Error("Enabled() = false after SetEnabled(true)")
	}
	debug.SetEnabled(false)
	if debug.Enabled() {
		t.Error("Enabled() = true after SetEnabled(false)")
	}
}

func TestLogFunctionsAreSafeInBothStates(t *testing.T) {
	initial := debug.Enabled()
	defer debug.SetEnabled(initial)

	for _, enabled := range []bool{false, true} {
		debug.SetEnabled(enabled)
		debug.Log("probe %d", 1)
		debug.LogTiming("probe", 5*time.Millisecond)
		done := debug.LogEnterExit("probe")
		done()
	}
}
