package harness

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/andyrewlee/tipkit/internal/logging"
)

// DefaultPattern matches every scenario file under a root.
const DefaultPattern = "**/*.{yaml,yml}"

// Options controls a suite run.
type Options struct {
	// Realtime runs scenarios on the wall clock instead of a fake one.
	Realtime bool
	// Parallel bounds how many scenarios run at once; values below 1 mean 1.
	Parallel int
}

// Discover returns the scenario files under root matching patterns, sorted
// and without duplicates. No patterns means DefaultPattern.
func Discover(root string, patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		patterns = []string{DefaultPattern}
	}
	fsys := os.DirFS(root)
	seen := map[string]struct{}{}
	var paths []string
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid pattern %q", pattern)
		}
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob %q in %q: %w", pattern, root, err)
		}
		for _, m := range matches {
			p := filepath.Join(root, filepath.FromSlash(m))
			if _, dup := seen[p]; dup {
				continue
			}
			seen[p] = struct{}{}
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// RunFiles loads and runs every scenario in paths. Results keep the order of
// paths. A file that fails to load produces a failed result rather than an
// error; the returned error is reserved for cancellation.
func RunFiles(ctx context.Context, paths []string, opts Options) ([]*Result, error) {
	results := make([]*Result, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, opts.Parallel))

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			res, err := runFile(ctx, path, opts)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func runFile(ctx context.Context, path string, opts Options) (*Result, error) {
	s, err := Load(path)
	if err != nil {
		logging.Warn("harness: %v", err)
		return &Result{Name: filepath.Base(path), Path: path, Realtime: opts.Realtime, Failures: []string{err.Error()}}, nil
	}

	start := time.Now()
	var res *Result
	if opts.Realtime {
		res, err = RunRealtime(ctx, s)
		if err != nil {
			return nil, fmt.Errorf("run %q: %w", path, err)
		}
	} else {
		res = Run(s)
	}
	res.Path = path
	res.Elapsed = time.Since(start)
	logging.Info("harness: %s passed=%t failures=%d", res.Name, res.Passed(), len(res.Failures))
	return res, nil
}
