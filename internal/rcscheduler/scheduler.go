package rcscheduler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/VictorNogNog/routing-cycle-detector/internal/rcerr"
	"github.com/VictorNogNog/routing-cycle-detector/internal/rcgraph"
	"github.com/VictorNogNog/routing-cycle-detector/internal/rclogger"
	"github.com/VictorNogNog/routing-cycle-detector/internal/rcpartition"
	"github.com/VictorNogNog/routing-cycle-detector/internal/rctest"
)

// Options configure a single Solve call.
type Options struct {
	// Buckets is the partitioner's bucket count; must be a power of two.
	Buckets int
	// Workers is the worker pool size for shared-memory/process-pool
	// policies; 0 means auto (runtime.GOMAXPROCS(0)).
	Workers int
	Log     rclogger.Logger
}

// scratchPrefix names the scheduler-owned scratch directory:
// <system-temp>/routing_cycles_<unique>/.
const scratchPrefix = "routing_cycles_"

// Solve runs the full pipeline: partition inputPath into opts.Buckets
// buckets, process them under the selected execution policy, and reduce
// to the single longest cycle. Returns found=false (no error) when no
// group in any bucket contains a cycle.
func Solve(ctx context.Context, inputPath string, opts Options) (result rcgraph.Result, found bool, err error) {
	totalStart := time.Now()
	log := opts.Log
	if log == nil {
		log = noopLogger{}
	}

	if opts.Buckets <= 0 || opts.Buckets&(opts.Buckets-1) != 0 {
		return rcgraph.Result{}, false, rcerr.Newf(rcerr.StageConfig, "buckets must be a power of two, got %d", opts.Buckets)
	}

	absInput, err := filepath.Abs(inputPath)
	if err != nil {
		return rcgraph.Result{}, false, rcerr.New(rcerr.StageConfig, err)
	}

	policy, overridden := SelectPolicy()
	override := ""
	if overridden {
		override = fmt.Sprintf(", %s=%s", "RC_EXECUTOR", policy)
	}
	workersDesc := "auto"
	if opts.Workers > 0 {
		workersDesc = fmt.Sprintf("%d", opts.Workers)
	}
	log.Infof("Starting: file=%s, buckets=%d, workers=%s, executor=%s, GOMAXPROCS=%d%s",
		filepath.Base(absInput), opts.Buckets, workersDesc, policy, runtime.GOMAXPROCS(0), override)

	tmpDir, err := os.MkdirTemp("", scratchPrefix)
	if err != nil {
		return rcgraph.Result{}, false, rcerr.New(rcerr.StagePartition, err)
	}
	defer cleanupScratch(tmpDir, log)

	t1Start := time.Now()
	bucketPaths, stats, err := rcpartition.PartitionToBuckets(absInput, opts.Buckets, tmpDir)
	if err != nil {
		return rcgraph.Result{}, false, rcerr.New(rcerr.StagePartition, err)
	}
	t1 := time.Since(t1Start)

	if stats.MalformedLines > 0 {
		log.Warningf("Pass 1: %d malformed lines skipped (read=%d, written=%d)",
			stats.MalformedLines, stats.LinesRead, stats.LinesWritten)
	}
	log.Infof("Pass 1 done: %d non-empty buckets in %s", len(bucketPaths), t1)

	if len(bucketPaths) == 0 {
		log.Infof("Result: no cycles found (total %s)", time.Since(totalStart))
		return rcgraph.Result{}, false, nil
	}

	t2Start := time.Now()
	bestLogged := 0
	onResult := func(r rcgraph.Result) {
		if r.CycleLength > bestLogged {
			bestLogged = r.CycleLength
			log.Debugf("New best: %s", rctest.PrettyPrint(r))
		}
	}

	switch policy {
	case PolicySerial:
		result, found, err = runSerial(bucketPaths, onResult)
	case PolicyProcess:
		result, found, err = runProcessPool(ctx, bucketPaths, opts.Workers, onResult)
	default:
		result, found, err = runSharedMemory(ctx, bucketPaths, opts.Workers, onResult)
	}
	if err != nil {
		return rcgraph.Result{}, false, rcerr.New(rcerr.StageReduce, err)
	}
	t2 := time.Since(t2Start)
	log.Infof("Pass 2 done: %d buckets processed in %s", len(bucketPaths), t2)

	if total := t1 + t2; total > 0 {
		log.Debugf("Timing breakdown: Pass1=%s (%.0f%%), Pass2=%s (%.0f%%)",
			t1, 100*float64(t1)/float64(total), t2, 100*float64(t2)/float64(total))
	}

	if !found {
		log.Infof("Result: no cycles found (total %s)", time.Since(totalStart))
		return rcgraph.Result{}, false, nil
	}

	log.Infof("Result: cycle length %d (total %s)", result.CycleLength, time.Since(totalStart))
	return result, true, nil
}

// cleanupScratch removes dir, retrying transient failures (e.g. a loaded
// filesystem briefly refusing the removal) with a short bounded backoff
// before giving up. Cleanup errors are never promoted to a fatal pipeline
// error: they are logged and swallowed.
func cleanupScratch(dir string, log rclogger.Logger) {
	op := func() error {
		return os.RemoveAll(dir)
	}
	boff := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3)
	if err := backoff.Retry(op, boff); err != nil {
		log.Warningf("failed to remove scratch directory %s: %v", dir, err)
	}
}

type noopLogger struct{}

func (noopLogger) Debug(args ...interface{})                   {}
func (noopLogger) Debugf(format string, args ...interface{})   {}
func (noopLogger) Info(args ...interface{})                    {}
func (noopLogger) Infof(format string, args ...interface{})    {}
func (noopLogger) Warning(args ...interface{})                 {}
func (noopLogger) Warningf(format string, args ...interface{}) {}
func (noopLogger) Error(args ...interface{})                   {}
func (noopLogger) Errorf(format string, args ...interface{})   {}
func (noopLogger) Fatal(args ...interface{})                   { os.Exit(1) }
func (noopLogger) Fatalf(format string, args ...interface{})   { os.Exit(1) }
