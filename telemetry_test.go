package asvswarm

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTelemetryAppendAndLen(t *testing.T) {
	tel := NewTelemetry()
	if tel.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", tel.Len())
	}
	if !tel.Append(TelemetrySample{Time: 1}) {
		t.Fatal("Append should succeed under capacity")
	}
	if tel.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", tel.Len())
	}
}

func TestTelemetryAtOutOfRange(t *testing.T) {
	tel := NewTelemetry()
	tel.Append(TelemetrySample{Time: 1})
	if _, err := tel.At(5); err == nil {
		t.Fatal("expected InvalidIndex error")
	}
	if _, err := tel.At(0); err != nil {
		t.Fatal(err)
	}
}

func TestTelemetryFlushWritesHeaderOnceAndAppends(t *testing.T) {
	dir := t.TempDir()
	tel := NewTelemetry()
	tel.Append(TelemetrySample{Time: 1, COG: Vec3{X: 1, Y: 2, Z: 3}})
	if err := tel.Flush(dir, "asv-1"); err != nil {
		t.Fatal(err)
	}
	if tel.Len() != 0 {
		t.Fatal("Flush should empty the buffer")
	}

	tel.Append(TelemetrySample{Time: 2})
	if err := tel.Flush(dir, "asv-1"); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "asv-1.txt"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if lines[0] != telemetryHeader {
		t.Fatalf("first line = %q, want header", lines[0])
	}
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 samples, got %d lines", len(lines))
	}
}

func TestTelemetryFlushEmptyIsNoop(t *testing.T) {
	dir := t.TempDir()
	tel := NewTelemetry()
	if err := tel.Flush(dir, "asv-2"); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "asv-2.txt")); !os.IsNotExist(err) {
		t.Fatal("flushing an empty buffer should not create a file")
	}
}
