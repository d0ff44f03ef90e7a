package common

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Benchmarker times a section of work. On Close it prints the elapsed time to out
// and, when set, records it in observer.
type Benchmarker struct {
	start    time.Time
	out      io.Writer
	observer prometheus.Observer
}

func RuntimeBenchmark[T any](out io.Writer, label string, functionUnderTest func() (T, error)) (T, error) {
	start := time.Now()
	result, err := functionUnderTest()
	elapsed := time.Since(start)
	fmt.Fprintf(out, "[BENCH] %s took %s\n", label, elapsed)
	return result, err
}

func NewBenchmarker(out io.Writer, observer prometheus.Observer) *Benchmarker {
	return &Benchmarker{start: time.Now(), out: out, observer: observer}
}

func (benchmarker *Benchmarker) Elapsed() time.Duration {
	return time.Since(benchmarker.start)
}

func (benchmarker *Benchmarker) Close() {
	elapsed := benchmarker.Elapsed()
	if benchmarker.observer != nil {
		benchmarker.observer.Observe(elapsed.Seconds())
	}
	if benchmarker.out != nil {
		fmt.Fprintf(benchmarker.out, "\nThis took %.6f seconds.\n", elapsed.Seconds())
	}
}
