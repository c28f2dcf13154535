// Package rcscheduler selects an execution policy, dispatches bucket
// processors over a bucket file list, and reduces their results to the
// single global winner.
package rcscheduler

import (
	"os"
	"strings"
)

// Policy is one of the three supported execution policies.
type Policy int

const (
	// PolicySharedMemory runs bucket processors across a pool of
	// goroutines sharing this process's memory.
	PolicySharedMemory Policy = iota
	// PolicyProcess runs bucket processors in a pool of worker
	// processes (a self-reexec of the current binary).
	PolicyProcess
	// PolicySerial runs bucket processors one at a time in the calling
	// goroutine, for debugging and deterministic reproduction.
	PolicySerial
)

func (p Policy) String() string {
	switch p {
	case PolicyProcess:
		return "processes"
	case PolicySerial:
		return "serial"
	default:
		return "threads"
	}
}

// executorEnvVar is the environment variable that overrides policy
// selection.
const executorEnvVar = "RC_EXECUTOR"

// SelectPolicy reads RC_EXECUTOR and falls back to auto-detection.
//
// The Go runtime has no global interpreter lock: goroutines already give
// true CPU parallelism, so auto-detection always resolves to the
// shared-memory policy. The process policy remains available, explicitly,
// for operators who want hard process isolation between bucket workers.
func SelectPolicy() (policy Policy, overridden bool) {
	switch strings.ToLower(os.Getenv(executorEnvVar)) {
	case "threads":
		return PolicySharedMemory, true
	case "processes":
		return PolicyProcess, true
	case "serial":
		return PolicySerial, true
	default:
		return PolicySharedMemory, false
	}
}
