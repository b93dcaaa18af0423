package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestSetupJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Setup(Settings{Level: "info", Format: "json", Output: &buf}); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	log.Debug().Msg("hidden")
	log.Info().Str("file", "A.cs").Msg("analyzed")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug message logged at info level: %s", out)
	}
	if !strings.Contains(out, `"file":"A.cs"`) || !strings.Contains(out, `"message":"analyzed"`) {
		t.Errorf("output = %s, want JSON fields", out)
	}
}

func TestSetupInvalidLevel(t *testing.T) {
	if err := Setup(Settings{Level: "loud"}); err == nil {
		t.Error("Setup() error = nil, want invalid level")
	}
}
