package rcpartition

import (
	"bufio"
	"hash/crc32"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

func writeInput(t *testing.T, lines []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.txt")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating input file: %v", err)
	}
	defer f.Close()
	for _, line := range lines {
		if _, err := f.WriteString(line + "\n"); err != nil {
			t.Fatalf("writing input file: %v", err)
		}
	}
	return path
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening %q: %v", path, err)
	}
	defer f.Close()
	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines
}

func TestPartitionToBuckets_CountersSumToLinesRead(t *testing.T) {
	input := writeInput(t, []string{
		"A|B|CLM001|200",
		"",
		"malformed-line",
		"B|A|CLM001|200",
	})
	tmp := t.TempDir()

	_, stats, err := PartitionToBuckets(input, 4, tmp)
	if err != nil {
		t.Fatalf("PartitionToBuckets: %v", err)
	}
	if stats.LinesRead != stats.EmptyLines+stats.MalformedLines+stats.LinesWritten {
		t.Fatalf("counters don't sum: %+v", stats)
	}
	if stats.EmptyLines != 1 || stats.MalformedLines != 1 || stats.LinesWritten != 2 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestPartitionToBuckets_EmptyInput(t *testing.T) {
	input := writeInput(t, nil)
	paths, stats, err := PartitionToBuckets(input, 4, t.TempDir())
	if err != nil {
		t.Fatalf("PartitionToBuckets: %v", err)
	}
	if len(paths) != 0 {
		t.Fatalf("expected no bucket files, got %v", paths)
	}
	if stats.LinesRead != 0 {
		t.Fatalf("expected 0 lines read, got %d", stats.LinesRead)
	}
}

func TestPartitionToBuckets_OnlyMalformedLines(t *testing.T) {
	input := writeInput(t, []string{"nope", "also-nope", "a|b"})
	paths, stats, err := PartitionToBuckets(input, 4, t.TempDir())
	if err != nil {
		t.Fatalf("PartitionToBuckets: %v", err)
	}
	if len(paths) != 0 {
		t.Fatalf("expected no bucket files, got %v", paths)
	}
	if stats.MalformedLines != 3 {
		t.Fatalf("expected 3 malformed lines, got %d", stats.MalformedLines)
	}
}

func TestPartitionToBuckets_SameGroupSameBucket(t *testing.T) {
	lines := []string{
		"A|B|CLM001|200",
		"B|C|CLM001|200",
		"C|A|CLM001|200",
		"W|X|CLM002|200",
		"X|W|CLM002|200",
	}
	input := writeInput(t, lines)
	paths, _, err := PartitionToBuckets(input, 16, t.TempDir())
	if err != nil {
		t.Fatalf("PartitionToBuckets: %v", err)
	}

	groupToBucket := make(map[string]string)
	for _, p := range paths {
		for _, line := range readLines(t, p) {
			parts := strings.SplitN(line, "|", 4)
			if len(parts) < 4 {
				t.Fatalf("wrote malformed line into bucket: %q", line)
			}
			key := parts[2] + "|" + parts[3]
			if existing, ok := groupToBucket[key]; ok && existing != p {
				t.Fatalf("group %q split across buckets %q and %q", key, existing, p)
			}
			groupToBucket[key] = p
		}
	}
	if len(groupToBucket) != 2 {
		t.Fatalf("expected 2 groups, saw %d", len(groupToBucket))
	}
}

func TestPartitionToBuckets_BucketIndexMatchesHash(t *testing.T) {
	input := writeInput(t, []string{"A|B|CLM001|200"})
	numBuckets := 8
	paths, _, err := PartitionToBuckets(input, numBuckets, t.TempDir())
	if err != nil {
		t.Fatalf("PartitionToBuckets: %v", err)
	}
	if len(paths) != 1 {
		t.Fatalf("expected exactly one bucket file, got %v", paths)
	}

	want := crc32.ChecksumIEEE([]byte("CLM001|200")) & uint32(numBuckets-1)
	base := filepath.Base(paths[0])
	wantName := bucketFileName(int(want))
	if base != wantName {
		t.Fatalf("expected bucket file %q, got %q", wantName, base)
	}
}

func TestPartitionToBuckets_RoundTripPreservesLineMultiset(t *testing.T) {
	lines := []string{
		"A|B|CLM001|200",
		"B|A|CLM001|200",
		"W|X|CLM002|200",
		"X|Y|CLM002|200",
		"Y|Z|CLM002|200",
		"Z|W|CLM002|200",
	}
	input := writeInput(t, lines)
	paths, _, err := PartitionToBuckets(input, 8, t.TempDir())
	if err != nil {
		t.Fatalf("PartitionToBuckets: %v", err)
	}

	var got []string
	for _, p := range paths {
		got = append(got, readLines(t, p)...)
	}
	sort.Strings(got)
	want := append([]string(nil), lines...)
	sort.Strings(want)

	if len(got) != len(want) {
		t.Fatalf("line count mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("line multiset mismatch at %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLRUFileCache_EvictsLeastRecentlyWritten(t *testing.T) {
	dir := t.TempDir()
	cache := newLRUFileCache(2, dir)

	mustWrite := func(idx int) {
		t.Helper()
		if err := cache.write(idx, []byte("x\n")); err != nil {
			t.Fatalf("write(%d): %v", idx, err)
		}
	}

	mustWrite(0)
	mustWrite(1)
	if got := cache.openCount(); got != 2 {
		t.Fatalf("expected 2 open handles, got %d", got)
	}

	mustWrite(2) // evicts bucket 0 (least recently written)
	if got := cache.openCount(); got != 2 {
		t.Fatalf("expected 2 open handles after eviction, got %d", got)
	}
	if _, ok := cache.byIndex[0]; ok {
		t.Fatalf("expected bucket 0 to have been evicted")
	}

	mustWrite(1) // re-touch bucket 1, bucket 2 now oldest
	mustWrite(3) // evicts bucket 2
	if _, ok := cache.byIndex[2]; ok {
		t.Fatalf("expected bucket 2 to have been evicted after re-touching bucket 1")
	}
	if _, ok := cache.byIndex[1]; !ok {
		t.Fatalf("expected bucket 1 to remain open")
	}

	if err := cache.closeAll(); err != nil {
		t.Fatalf("closeAll: %v", err)
	}
	if got := cache.openCount(); got != 0 {
		t.Fatalf("expected 0 open handles after closeAll, got %d", got)
	}
}

func bucketFileName(idx int) string {
	return (&lruFileCache{}).path(idx)
}
