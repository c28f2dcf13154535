// routing-cycle-detector finds the longest simple routing cycle in a
// pipe-delimited claim/status dataset.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/VictorNogNog/routing-cycle-detector/internal/rclogger"
	"github.com/VictorNogNog/routing-cycle-detector/internal/rcscheduler"
)

var (
	buckets        = flag.Int("buckets", 1024, "Number of buckets for partitioning (power of 2)")
	logLevel       = flag.String("log-level", "INFO", "Logging level: DEBUG, INFO, WARNING, or ERROR")
	workers        = flag.Int("workers", 0, "Number of parallel workers (0 = auto)")
	internalWorker = flag.Bool("internal-worker", false,
		"internal: run as a process-pool bucket worker (reads bucket paths from stdin)")
)

func main() {
	flag.Parse()

	if *internalWorker {
		if err := rcscheduler.RunInternalWorker(os.Stdin, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: worker: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: routing-cycle-detector [flags] <input-file>")
		flag.PrintDefaults()
		os.Exit(2)
	}
	inputPath := flag.Arg(0)

	if *buckets <= 0 || *buckets&(*buckets-1) != 0 {
		fmt.Fprintf(os.Stderr, "ERROR: configuration: -buckets must be a power of 2, got %d\n", *buckets)
		os.Exit(2)
	}

	log := rclogger.NewGlog(rclogger.ParseLevel(*logLevel))

	result, found, err := rcscheduler.Solve(context.Background(), inputPath, rcscheduler.Options{
		Buckets: *buckets,
		Workers: *workers,
		Log:     log,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}

	if !found {
		fmt.Println(0)
		return
	}
	fmt.Printf("%s,%s,%d\n", result.ClaimID, result.StatusCode, result.CycleLength)
}
