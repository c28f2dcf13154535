// Package rcerr defines the pipeline-stage error taxonomy used across the
// partitioner, bucket processor and scheduler.
package rcerr

import "fmt"

// Stage identifies which phase of the pipeline produced an error.
type Stage string

const (
	// StageConfig covers bad CLI input, discovered before any work starts.
	StageConfig Stage = "configuration"
	// StagePartition covers the partitioning pass (input read, bucket writes).
	StagePartition Stage = "partition"
	// StageProcess covers a single bucket processor.
	StageProcess Stage = "process"
	// StageReduce covers the scheduler's result reduction.
	StageReduce Stage = "reduce"
)

// Error is a stage-tagged wrapper around an underlying cause.
type Error struct {
	Stage Stage
	Cause error
}

// New wraps cause with the given stage tag. Returns nil if cause is nil.
func New(stage Stage, cause error) error {
	if cause == nil {
		return nil
	}
	return &Error{Stage: stage, Cause: cause}
}

// Newf is New with fmt.Errorf-style formatting of the cause.
func Newf(stage Stage, format string, args ...interface{}) error {
	return &Error{Stage: stage, Cause: fmt.Errorf(format, args...)}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
