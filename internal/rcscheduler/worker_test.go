package rcscheduler

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/VictorNogNog/routing-cycle-detector/internal/rctest"
)

func TestChunkPaths(t *testing.T) {
	paths := []string{"a", "b", "c", "d", "e"}
	got := chunkPaths(paths, 2)
	want := [][]string{{"a", "b"}, {"c", "d"}, {"e"}}
	if d := rctest.Diff(got, want); d != "" {
		t.Fatalf("unexpected chunking, diff: %s", d)
	}
}

func TestChunkPaths_Empty(t *testing.T) {
	if got := chunkPaths(nil, 16); len(got) != 0 {
		t.Fatalf("expected no chunks for empty input, got %v", got)
	}
}

func TestParseWorkerResultLine(t *testing.T) {
	got, err := parseWorkerResultLine("CLM001|200|3")
	if err != nil {
		t.Fatalf("parseWorkerResultLine: %v", err)
	}
	if got.ClaimID != "CLM001" || got.StatusCode != "200" || got.CycleLength != 3 {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestParseWorkerResultLine_StatusCodeContainingPipe(t *testing.T) {
	got, err := parseWorkerResultLine("CLM001|200|extra|3")
	if err != nil {
		t.Fatalf("parseWorkerResultLine: %v", err)
	}
	if got.ClaimID != "CLM001" || got.StatusCode != "200|extra" || got.CycleLength != 3 {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestParseWorkerResultLine_Malformed(t *testing.T) {
	if _, err := parseWorkerResultLine("not-a-result-line"); err == nil {
		t.Fatalf("expected an error for a malformed line")
	}
	if _, err := parseWorkerResultLine("CLM001|200|notanumber"); err == nil {
		t.Fatalf("expected an error for a non-numeric cycle length")
	}
}

func TestRunInternalWorker(t *testing.T) {
	bucketPath := writeBucketFixture(t, []string{
		"A|B|CLM001|200",
		"B|A|CLM001|200",
	})
	emptyBucketPath := writeBucketFixture(t, []string{
		"A|B|CLM001|200",
		"B|C|CLM001|200",
	})

	in := strings.NewReader(bucketPath + "\n" + emptyBucketPath + "\n")
	var out bytes.Buffer

	if err := RunInternalWorker(in, &out); err != nil {
		t.Fatalf("RunInternalWorker: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 output lines, got %d: %q", len(lines), out.String())
	}
	if lines[0] != "CLM001|200|2" {
		t.Fatalf("expected a found-cycle line, got %q", lines[0])
	}
	if lines[1] != "" {
		t.Fatalf("expected a blank line for the no-cycle bucket, got %q", lines[1])
	}
}

func writeBucketFixture(t *testing.T, lines []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bucket.bin")
	content := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}
