package rcscheduler

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/VictorNogNog/routing-cycle-detector/internal/rcerr"
	"github.com/VictorNogNog/routing-cycle-detector/internal/rcgraph"
	"github.com/VictorNogNog/routing-cycle-detector/internal/syncutil"
)

// ProcessChunkSize is the number of bucket paths handed to each
// process-pool worker per dispatch.
const ProcessChunkSize = 16

// InternalWorkerFlag is the hidden flag the process-parallel policy uses
// to re-invoke the current binary as a bucket-processing worker. It is
// registered and handled in cmd/routing-cycle-detector, not here, to keep
// this package free of flag-parsing concerns.
const InternalWorkerFlag = "-internal-worker"

// dispatch runs tasks with up to workers
// concurrent in flight (via a weighted semaphore, decoupled from how many
// goroutines/tasks are launched), streaming every found result to
// onResult as it arrives, and reducing to the single best result: the
// first strictly-greater length wins; ties leave the running best
// unchanged.
func dispatch(
	ctx context.Context,
	tasks []func(ctx context.Context) ([]rcgraph.Result, error),
	workers int,
	onResult func(rcgraph.Result),
) (rcgraph.Result, bool, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	sem := syncutil.NewWeighted(int64(workers))
	g, gctx := errgroup.WithContext(ctx)
	resultsCh := make(chan rcgraph.Result, len(tasks)+1)

	for _, task := range tasks {
		task := task
		g.Go(func() error {
			if err := sem.Acquire(gctx, 1); err != nil {
				return err
			}
			defer sem.Release(1)

			results, err := task(gctx)
			if err != nil {
				return err
			}
			for _, r := range results {
				resultsCh <- r
			}
			return nil
		})
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- g.Wait()
		close(resultsCh)
	}()

	var best rcgraph.Result
	found := false
	for result := range resultsCh {
		if onResult != nil {
			onResult(result)
		}
		if !found || result.CycleLength > best.CycleLength {
			best = result
			found = true
		}
	}

	if err := <-errCh; err != nil {
		return rcgraph.Result{}, false, err
	}
	return best, found, nil
}

// runSerial processes bucketPaths one at a time in the calling goroutine.
func runSerial(bucketPaths []string, onResult func(rcgraph.Result)) (rcgraph.Result, bool, error) {
	var best rcgraph.Result
	found := false
	for _, path := range bucketPaths {
		result, ok, err := rcgraph.ProcessBucket(path)
		if err != nil {
			return rcgraph.Result{}, false, rcerr.New(rcerr.StageProcess, err)
		}
		if !ok {
			continue
		}
		if onResult != nil {
			onResult(result)
		}
		if !found || result.CycleLength > best.CycleLength {
			best = result
			found = true
		}
	}
	return best, found, nil
}

// runSharedMemory processes bucketPaths across a pool of goroutines, one
// task per bucket, bounded to workers concurrently in flight.
func runSharedMemory(ctx context.Context, bucketPaths []string, workers int, onResult func(rcgraph.Result)) (rcgraph.Result, bool, error) {
	tasks := make([]func(ctx context.Context) ([]rcgraph.Result, error), len(bucketPaths))
	for i, path := range bucketPaths {
		path := path
		tasks[i] = func(ctx context.Context) ([]rcgraph.Result, error) {
			result, ok, err := rcgraph.ProcessBucket(path)
			if err != nil {
				return nil, rcerr.New(rcerr.StageProcess, err)
			}
			if !ok {
				return nil, nil
			}
			return []rcgraph.Result{result}, nil
		}
	}
	return dispatch(ctx, tasks, workers, onResult)
}

// runProcessPool processes bucketPaths across a pool of worker processes
// (self-reexecs of the current binary), each receiving a fixed-size chunk
// of bucket paths.
func runProcessPool(ctx context.Context, bucketPaths []string, workers int, onResult func(rcgraph.Result)) (rcgraph.Result, bool, error) {
	exe, err := os.Executable()
	if err != nil {
		return rcgraph.Result{}, false, rcerr.New(rcerr.StageProcess, err)
	}

	chunks := chunkPaths(bucketPaths, ProcessChunkSize)
	tasks := make([]func(ctx context.Context) ([]rcgraph.Result, error), len(chunks))
	for i, chunk := range chunks {
		chunk := chunk
		tasks[i] = func(ctx context.Context) ([]rcgraph.Result, error) {
			results, err := runWorkerProcess(ctx, exe, chunk)
			if err != nil {
				return nil, rcerr.New(rcerr.StageProcess, err)
			}
			return results, nil
		}
	}
	return dispatch(ctx, tasks, workers, onResult)
}

func chunkPaths(paths []string, size int) [][]string {
	var chunks [][]string
	for len(paths) > 0 {
		n := size
		if n > len(paths) {
			n = len(paths)
		}
		chunks = append(chunks, paths[:n])
		paths = paths[n:]
	}
	return chunks
}

// runWorkerProcess spawns the current binary with InternalWorkerFlag,
// writes one bucket path per line to its stdin, and reads back one result
// line per path: "claimID|statusCode|cycleLength", or a blank line when
// that bucket had no cycle.
func runWorkerProcess(ctx context.Context, exe string, chunk []string) ([]rcgraph.Result, error) {
	cmd := exec.CommandContext(ctx, exe, InternalWorkerFlag)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return nil, err
	}

	writeErrCh := make(chan error, 1)
	go func() {
		w := bufio.NewWriter(stdin)
		for _, path := range chunk {
			if _, err := w.WriteString(path + "\n"); err != nil {
				writeErrCh <- err
				stdin.Close()
				return
			}
		}
		writeErrCh <- w.Flush()
		stdin.Close()
	}()

	var results []rcgraph.Result
	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		result, err := parseWorkerResultLine(line)
		if err != nil {
			cmd.Wait()
			return nil, err
		}
		results = append(results, result)
	}
	if err := scanner.Err(); err != nil {
		cmd.Wait()
		return nil, err
	}

	if err := <-writeErrCh; err != nil {
		cmd.Wait()
		return nil, err
	}
	if err := cmd.Wait(); err != nil {
		return nil, fmt.Errorf("worker process: %w", err)
	}
	return results, nil
}

// parseWorkerResultLine parses "claimID|statusCode|cycleLength" back into a
// Result. statusCode itself may legitimately contain a literal '|' (see
// ParseLine's own trailing-field collapse), so this can't be a flat
// strings.SplitN(line, "|", 3): it takes claimID up to the first '|' and
// cycleLength after the last '|', leaving everything in between, pipes
// included, as statusCode.
func parseWorkerResultLine(line string) (rcgraph.Result, error) {
	firstSep := strings.IndexByte(line, '|')
	lastSep := strings.LastIndexByte(line, '|')
	if firstSep < 0 || lastSep <= firstSep {
		return rcgraph.Result{}, fmt.Errorf("malformed worker result line: %q", line)
	}
	length, err := strconv.Atoi(line[lastSep+1:])
	if err != nil {
		return rcgraph.Result{}, fmt.Errorf("malformed worker result length: %q", line)
	}
	return rcgraph.Result{
		ClaimID:     line[:firstSep],
		StatusCode:  line[firstSep+1 : lastSep],
		CycleLength: length,
	}, nil
}

// RunInternalWorker implements the process-pool worker side:
// InternalWorkerFlag's process reads bucket paths from r (one per line)
// and writes one result line per path to w.
func RunInternalWorker(r io.Reader, w io.Writer) error {
	out := bufio.NewWriter(w)
	defer out.Flush()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		path := scanner.Text()
		if path == "" {
			continue
		}
		result, ok, err := rcgraph.ProcessBucket(path)
		if err != nil {
			return err
		}
		if !ok {
			if _, err := out.WriteString("\n"); err != nil {
				return err
			}
			continue
		}
		line := fmt.Sprintf("%s|%s|%d\n", result.ClaimID, result.StatusCode, result.CycleLength)
		if _, err := out.WriteString(line); err != nil {
			return err
		}
		if err := out.Flush(); err != nil {
			return err
		}
	}
	return scanner.Err()
}
