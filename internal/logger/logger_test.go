package logger

import (
	"bytes"
	"os"
	"testing"
)

func reset() {
	SetVerbose(false)
	SetQuiet(false)
	SetOutput(os.Stderr)
}

func TestSetVerbose(t *testing.T) {
	defer reset()

	SetVerbose(false)
	if IsVerbose() {
		t.Error("expected verbose to be false initially")
	}

	SetVerbose(true)
	if !IsVerbose() {
		t.Error("expected verbose to be true after SetVerbose(true)")
	}
}

func TestDebug_WhenVerbose(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Debug("loaded %d annotations", 3)

	if got := buf.String(); got != "[DEBUG] loaded 3 annotations\n" {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestDebugAndInfo_WhenNotVerbose(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Debug("hidden")
	Info("hidden")
	Section("hidden")

	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestInfo_WhenVerbose(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Info("opened %s", "captions.txt")

	if got := buf.String(); got != "[INFO] opened captions.txt\n" {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestWarn_AlwaysPrints(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Warn("save failed: %s", "disk full")

	if got := buf.String(); got != "[WARN] save failed: disk full\n" {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestQuiet_SuppressesEverything(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)
	SetQuiet(true)

	Debug("a")
	Info("b")
	Warn("c")
	Section("d")

	if buf.Len() != 0 {
		t.Errorf("expected no output in quiet mode, got %q", buf.String())
	}
}

func TestSetQuiet(t *testing.T) {
	defer reset()

	if IsQuiet() {
		t.Error("expected quiet to be false initially")
	}

	SetQuiet(true)
	if !IsQuiet() {
		t.Error("expected quiet to be true after SetQuiet(true)")
	}
}

func TestSection_WhenVerbose(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Section("Load")

	if got := buf.String(); got != "\n=== Load ===\n" {
		t.Errorf("unexpected output: %q", got)
	}
}
