// Package rcpartition implements the Partitioner: streaming the input file
// once and routing each record into one of B bucket files by a stable hash
// of its group key.
package rcpartition

// BufferSize is the per-handle write buffer size: 64 KiB is adequate,
// 1 MiB is typical.
const BufferSize = 1 << 20

// MaxOpenHandles is the default LRU cache capacity for simultaneously open
// bucket file handles.
const MaxOpenHandles = 128

// Stats are the counters returned alongside the bucket file list.
// LinesRead = EmptyLines + MalformedLines + LinesWritten.
type Stats struct {
	LinesRead      int
	EmptyLines     int
	MalformedLines int
	LinesWritten   int
}
