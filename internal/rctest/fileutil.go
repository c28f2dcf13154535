package rctest

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteLines creates dir (recursively) and writes name inside it with each
// element of lines terminated by "\n". Modeled on goarista's
// test.CopyFile, which similarly exists purely to keep fixture setup out of
// the test bodies themselves.
func WriteLines(t *testing.T, dir, name string, lines []string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("creating fixture dir %q: %v", dir, err)
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating fixture file %q: %v", path, err)
	}
	defer f.Close()
	for _, line := range lines {
		if _, err := f.WriteString(line + "\n"); err != nil {
			t.Fatalf("writing fixture file %q: %v", path, err)
		}
	}
	return path
}

// TempBucketDir creates a fresh temp directory under t.TempDir() and writes
// a single bucket file into it containing lines.
func TempBucketDir(t *testing.T, lines []string) string {
	t.Helper()
	return WriteLines(t, t.TempDir(), "bucket_0000.bin", lines)
}
