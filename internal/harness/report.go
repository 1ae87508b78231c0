package harness

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// Format writes a human-readable report of results to w and returns the
// number of failed scenarios. Traces are included when verbose is set or the
// scenario failed.
func Format(w io.Writer, results []*Result, verbose bool) int {
	failed := 0
	for _, res := range results {
		if res == nil {
			continue
		}
		status := "PASS"
		if !res.Passed() {
			status = "FAIL"
			failed++
		}
		mode := "fake"
		if res.Realtime {
			mode = "realtime"
		}
		fmt.Fprintf(w, "%s %s (%s clock)\n", status, res.Name, mode)
		if verbose || !res.Passed() {
			for _, e := range res.Trace {
				fmt.Fprintf(w, "    %s\n", formatEntry(e))
			}
		}
		for _, f := range res.Failures {
			fmt.Fprintf(w, "  - %s\n", f)
		}
	}
	fmt.Fprintf(w, "%d scenarios, %d failed\n", countResults(results), failed)
	return failed
}

func formatEntry(e TraceEntry) string {
	var flags []string
	if e.Animated {
		flags = append(flags, "animated")
	}
	if e.ImmediateShow {
		flags = append(flags, "immediate-show")
	}
	if e.ImmediateHide {
		flags = append(flags, "immediate-hide")
	}
	line := fmt.Sprintf("%8s  %-12s %-12s %s", e.At.Round(time.Millisecond), e.Target, e.Phase, e.Stage)
	if len(flags) > 0 {
		line += " [" + strings.Join(flags, ",") + "]"
	}
	return line
}

func countResults(results []*Result) int {
	n := 0
	for _, r := range results {
		if r != nil {
			n++
		}
	}
	return n
}
