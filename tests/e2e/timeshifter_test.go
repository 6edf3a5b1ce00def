// Package e2e contains end-to-end tests for the timeshifter CLI.
package e2e

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// getBinaryName returns the test binary name with platform-specific extension
func getBinaryName() string {
	if runtime.GOOS == "windows" {
		return "timeshifter-test.exe"
	}
	return "timeshifter-test"
}

// getBinaryPath returns the path to execute the test binary
// If TIMESHIFTER_BINARY env var is set, use that instead (for CI with pre-built binaries)
func getBinaryPath(t *testing.T) string {
	if path := os.Getenv("TIMESHIFTER_BINARY"); path != "" {
		return path
	}
	return filepath.Join(getProjectRoot(t), getBinaryName())
}

// buildBinary builds the CLI unless a pre-built binary is provided.
func buildBinary(t *testing.T) {
	t.Helper()
	if os.Getenv("TIMESHIFTER_E2E") != "1" {
		t.Skip("Skipping E2E test (set TIMESHIFTER_E2E=1 to run)")
	}
	if os.Getenv("TIMESHIFTER_BINARY") != "" {
		return
	}

	buildCmd := exec.Command("go", "build", "-o", getBinaryName(), "./cmd/timeshifter")
	buildCmd.Dir = getProjectRoot(t)
	if out, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build CLI: %v\n%s", err, out)
	}
	t.Cleanup(func() {
		os.Remove(filepath.Join(getProjectRoot(t), getBinaryName()))
	})
}

// run executes the CLI with English messages.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := exec.Command(getBinaryPath(t), args...)
	cmd.Env = append(os.Environ(), "LANG=en_US.UTF-8", "LANGUAGE=en")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// writeFrames writes count frames of the given height, 1 pixel wide, whose
// red channel is base+i for frame i.
func writeFrames(t *testing.T, dir string, count, height int, base uint8) {
	t.Helper()
	for i := 0; i < count; i++ {
		img := image.NewNRGBA(image.Rect(0, 0, 1, height))
		for y := 0; y < height; y++ {
			img.SetNRGBA(0, y, color.NRGBA{R: base + uint8(i), A: 128})
		}
		f, err := os.Create(filepath.Join(dir, framename(i)))
		if err != nil {
			t.Fatal(err)
		}
		if err := png.Encode(f, img); err != nil {
			f.Close()
			t.Fatal(err)
		}
		f.Close()
	}
}

func framename(i int) string {
	return fmt.Sprintf("%03d.png", i)
}

func readRows(t *testing.T, path string) []uint8 {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	var rows []uint8
	for y := 0; y < img.Bounds().Dy(); y++ {
		rows = append(rows, color.NRGBAModel.Convert(img.At(0, y)).(color.NRGBA).R)
	}
	return rows
}

// TestTimeshift runs the four frame, two slice scenario through the binary
func TestTimeshift(t *testing.T) {
	buildBinary(t)

	src, out := t.TempDir(), t.TempDir()
	writeFrames(t, src, 4, 4, 10)
	writeFrames(t, out, 4, 4, 0)

	stdout, stderr, err := run(t, src, out, "4", "2")
	if err != nil {
		t.Fatalf("CLI failed: %v\nstdout: %s\nstderr: %s", err, stdout, stderr)
	}
	if !strings.Contains(stdout, "Saving Timeshifted Frames...") {
		t.Errorf("expected save notice, got: %s", stdout)
	}

	// (top band, bottom band) per slot
	want := [][2]uint8{{10, 13}, {11, 10}, {12, 11}, {13, 12}}
	for slot, w := range want {
		rows := readRows(t, filepath.Join(out, framename(slot)))
		expected := []uint8{w[0], w[0], w[1], w[1]}
		if !bytes.Equal(rows, expected) {
			t.Errorf("slot %d: expected %v, got %v", slot, expected, rows)
		}
	}
}

// TestWrongArity tests that any argument count other than four is a usage error
func TestWrongArity(t *testing.T) {
	buildBinary(t)

	for _, args := range [][]string{
		{},
		{"a", "b", "4"},
		{"a", "b", "4", "2", "extra"},
	} {
		if _, _, err := run(t, args...); err == nil {
			t.Errorf("expected failure for args %v", args)
		}
	}
}

// TestRejectsRGB tests that RGB input aborts without touching the outputs
func TestRejectsRGB(t *testing.T) {
	buildBinary(t)

	src, out := t.TempDir(), t.TempDir()
	for i := 0; i < 2; i++ {
		img := image.NewRGBA(image.Rect(0, 0, 1, 2))
		for y := 0; y < 2; y++ {
			img.SetRGBA(0, y, color.RGBA{R: 50, A: 255})
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(src, framename(i)), buf.Bytes(), 0644); err != nil {
			t.Fatal(err)
		}
	}
	writeFrames(t, out, 2, 2, 0)

	_, stderr, err := run(t, src, out, "2", "2")
	if err == nil {
		t.Fatal("expected failure for RGB input")
	}
	if !strings.Contains(stderr, "RGB") {
		t.Errorf("expected RGB diagnostic, got: %s", stderr)
	}
	if rows := readRows(t, filepath.Join(out, framename(0))); !bytes.Equal(rows, []uint8{0, 0}) {
		t.Errorf("output modified: %v", rows)
	}
}

// TestDebugAndSummary tests debug artifacts and the markdown summary
func TestDebugAndSummary(t *testing.T) {
	buildBinary(t)

	src, out, work := t.TempDir(), t.TempDir(), t.TempDir()
	writeFrames(t, src, 3, 6, 20)
	writeFrames(t, out, 3, 6, 0)

	debugDir := filepath.Join(work, "debug")
	summaryPath := filepath.Join(work, "summary.md")

	stdout, stderr, err := run(t, "-d", "--debug-dir", debugDir, "--summary", summaryPath, src, out, "3", "3")
	if err != nil {
		t.Fatalf("CLI failed: %v\nstdout: %s\nstderr: %s", err, stdout, stderr)
	}

	for _, name := range []string{"schedule.json", "schedule.png", "contact-sheet.jpg"} {
		if _, err := os.Stat(filepath.Join(debugDir, name)); err != nil {
			t.Errorf("expected %s in debug output: %v", name, err)
		}
	}

	summary, err := os.ReadFile(summaryPath)
	if err != nil {
		t.Fatalf("summary not written: %v", err)
	}
	if !strings.Contains(string(summary), "# Time-Shift Summary") {
		t.Errorf("unexpected summary:\n%s", summary)
	}
}

// TestVersionFlag tests the version flag
func TestVersionFlag(t *testing.T) {
	buildBinary(t)

	stdout, _, err := run(t, "--version")
	if err != nil {
		t.Fatalf("Version command failed: %v", err)
	}
	if !strings.Contains(stdout, "timeshifter version") {
		t.Errorf("Unexpected version output: %s", stdout)
	}
}

func getProjectRoot(t *testing.T) string {
	// Start from current working directory and find go.mod
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("Could not find project root (go.mod)")
		}
		dir = parent
	}
}
