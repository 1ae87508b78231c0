package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"time"

	"github.com/andyrewlee/tipkit/internal/config"
	"github.com/andyrewlee/tipkit/internal/harness"
	"github.com/andyrewlee/tipkit/internal/logging"
)

type stats struct {
	avg time.Duration
	min time.Duration
	max time.Duration
	p50 time.Duration
	p95 time.Duration
}

type patternList []string

func (p *patternList) String() string { return strings.Join(*p, ",") }

func (p *patternList) Set(v string) error {
	*p = append(*p, v)
	return nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("tipkit-harness", flag.ContinueOnError)
	fs.SetOutput(stderr)
	dir := fs.String("dir", "", "scenario directory (default ~/.tipkit/scenarios)")
	var patterns patternList
	fs.Var(&patterns, "glob", "scenario glob relative to -dir; repeatable (default "+harness.DefaultPattern+")")
	realtime := fs.Bool("realtime", false, "run on the wall clock instead of a fake clock")
	parallel := fs.Int("parallel", 1, "scenarios to run at once")
	verbose := fs.Bool("v", false, "print traces for passing scenarios")
	logLevel := fs.String("log-level", "warn", "log level written to stderr")
	timeout := fs.Duration("timeout", 0, "abort the suite after this long (0 disables)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	logging.InitializeWriter(stderr, logging.ParseLevel(*logLevel))
	defer logging.Close()

	root := *dir
	if root == "" {
		paths, err := config.DefaultPaths()
		if err != nil {
			fmt.Fprintf(stderr, "resolve scenario dir: %v\n", err)
			return 1
		}
		root = paths.ScenariosDir
	}

	files, err := harness.Discover(root, patterns)
	if err != nil {
		fmt.Fprintf(stderr, "discover scenarios: %v\n", err)
		return 1
	}
	if len(files) == 0 {
		fmt.Fprintf(stderr, "no scenarios found under %s\n", root)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if *timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}

	startAll := time.Now()
	results, err := harness.RunFiles(ctx, files, harness.Options{Realtime: *realtime, Parallel: *parallel})
	if err != nil {
		fmt.Fprintf(stderr, "harness aborted: %v\n", err)
		return 1
	}

	failed := harness.Format(stdout, results, *verbose)
	s := summarize(elapsed(results))
	fmt.Fprintf(stdout, "total=%s avg=%s p50=%s p95=%s min=%s max=%s\n",
		time.Since(startAll).Round(time.Millisecond), s.avg, s.p50, s.p95, s.min, s.max)
	if failed > 0 {
		return 1
	}
	return 0
}

func elapsed(results []*harness.Result) []time.Duration {
	out := make([]time.Duration, 0, len(results))
	for _, r := range results {
		if r != nil && r.Elapsed > 0 {
			out = append(out, r.Elapsed)
		}
	}
	return out
}

func summarize(durations []time.Duration) stats {
	if len(durations) == 0 {
		return stats{}
	}
	sorted := make([]time.Duration, len(durations))
	copy(sorted, durations)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var total time.Duration
	for _, d := range durations {
		total += d
	}
	return stats{
		avg: total / time.Duration(len(durations)),
		min: sorted[0],
		max: sorted[len(sorted)-1],
		p50: percentile(sorted, 0.50),
		p95: percentile(sorted, 0.95),
	}
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[len(sorted)-1]
	}
	return sorted[int(float64(len(sorted)-1)*p)]
}
