// Command pcabench characterizes eigensolver iteration behavior. In
// benchmark mode the iteration bound is disabled, so the recorded counts
// reflect the true cost of convergence for the given batch shape; results go
// to a JSON session log alongside host information and, on Linux, hardware
// performance counters.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/mirrorcompute/pcaref"
)

func main() {
	var (
		samples   = flag.Int("samples", 128, "Samples per matrix")
		features  = flag.Int("features", 8, "Features per matrix")
		matrices  = flag.Int("matrices", 32, "Batch size")
		seed      = flag.Uint64("seed", 12345, "Input generator seed")
		bounded   = flag.Bool("bounded", false, "Enforce the iteration bound (disables benchmark mode)")
		logDir    = flag.String("logdir", "benchmark_logs", "Session log directory")
		sessionID = flag.String("session", "pcabench", "Session name")
	)
	flag.Parse()

	host := pcaref.CollectHostInfo()
	fmt.Printf("host: %s (%d CPUs)\n", host, host.NumCPU)

	batch := pcaref.GenerateBatch(*samples, *features, *matrices, *seed)
	p, err := pcaref.New(*samples, *features, batch, pcaref.Options{
		BenchmarkMode: !*bounded,
	})
	if err != nil {
		log.Fatal(err)
	}
	p.ComputeCovarianceMatrix()

	metrics, err := pcaref.MeasureSolve(p)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("solved %d matrices (%dx%d) in %v\n",
		metrics.Matrices, *samples, *features, metrics.Duration)
	bound := (*features) * (*features) * pcaref.IterationLimitFactor
	fmt.Printf("iterations: total %d, max %d, bound would be %d\n",
		metrics.TotalIterations, metrics.MaxIterations, bound)
	fmt.Printf("converged: %d/%d, est. %.3f GFLOPS\n",
		metrics.Converged, metrics.Matrices, metrics.GFLOPS)
	if metrics.Counters != nil {
		c := metrics.Counters
		fmt.Printf("hw counters: %d cycles, %d instructions (IPC %.2f), %d cache misses, %d branch misses\n",
			c.Cycles, c.Instructions, c.IPC, c.CacheMisses, c.BranchMisses)
	}

	printHistogram(p)

	logger, err := pcaref.NewSessionLogger(*logDir, *sessionID)
	if err != nil {
		log.Fatal(err)
	}
	result := pcaref.ResultFromMetrics(fmt.Sprintf("%dx%dx%d", *matrices, *samples, *features),
		p, metrics, !*bounded)
	if err := logger.Log(result); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("session log: %s\n", logger.Path())
}

// printHistogram buckets per-entry iteration counts by powers of two.
func printHistogram(p *pcaref.PCA) {
	buckets := map[int]int{}
	maxBucket := 0
	for i := 0; i < p.MatrixCount(); i++ {
		b := 1
		for b < p.IterationsAt(i) {
			b *= 2
		}
		buckets[b]++
		if b > maxBucket {
			maxBucket = b
		}
	}
	fmt.Println("iteration distribution:")
	for b := 1; b <= maxBucket; b *= 2 {
		if buckets[b] == 0 {
			continue
		}
		fmt.Printf("  <=%4d: %d\n", b, buckets[b])
	}
}
