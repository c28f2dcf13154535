package rcpartition

import (
	"bufio"
	"fmt"
	"hash/crc32"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// PartitionToBuckets streams inputPath once, writing each well-formed
// record to one of numBuckets files under tmpDir keyed by
// crc32(claim_id + "|" + status_code) & (numBuckets-1). Returns the
// non-empty bucket file paths, sorted by bucket index, and the partition
// counters.
func PartitionToBuckets(inputPath string, numBuckets int, tmpDir string) ([]string, Stats, error) {
	var stats Stats

	if err := os.MkdirAll(tmpDir, 0o755); err != nil {
		return nil, stats, err
	}

	bucketMask := uint32(numBuckets - 1)
	cache := newLRUFileCache(MaxOpenHandles, tmpDir)
	written := make(map[int]bool)

	in, err := os.Open(inputPath)
	if err != nil {
		return nil, stats, err
	}
	defer in.Close()

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	var partitionErr error
	for scanner.Scan() {
		stats.LinesRead++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			stats.EmptyLines++
			continue
		}

		parts := strings.SplitN(line, "|", 4)
		if len(parts) < 4 {
			stats.MalformedLines++
			continue
		}

		claimID, status := parts[2], parts[3]
		idx := int(crc32.ChecksumIEEE([]byte(claimID+"|"+status)) & bucketMask)

		if err := cache.write(idx, []byte(line+"\n")); err != nil {
			partitionErr = err
			break
		}
		written[idx] = true
		stats.LinesWritten++
	}
	if partitionErr == nil {
		partitionErr = scanner.Err()
	}

	closeErr := cache.closeAll()
	if partitionErr == nil {
		partitionErr = closeErr
	}
	if partitionErr != nil {
		return nil, stats, partitionErr
	}

	indices := make([]int, 0, len(written))
	for idx := range written {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	paths := make([]string, 0, len(indices))
	for _, idx := range indices {
		paths = append(paths, filepath.Join(tmpDir, fmt.Sprintf("bucket_%04d.bin", idx)))
	}
	return paths, stats, nil
}
