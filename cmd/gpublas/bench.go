package main

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/gpublas/gpublas/blas"
)

func benchCmd() *cli.Command {
	var (
		size      int64
		repeat    int64
		logLevel  string
		logFormat string
	)
	return &cli.Command{
		Name:  "bench",
		Usage: "time representative routines on the device",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "size", Value: 1 << 20, Usage: "vector length / matrix edge", Destination: &size},
			&cli.IntFlag{Name: "repeat", Value: 10, Usage: "iterations per routine", Destination: &repeat},
			&cli.StringFlag{Name: "log-level", Value: "warn", Usage: "debug, info, warn or error", Destination: &logLevel},
			&cli.StringFlag{Name: "log-format", Value: "text", Usage: "text or json", Destination: &logFormat},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg := LoadConfig()
			applyBenchConfig(c, cfg, &size, &repeat)
			log := newLogger(c, cfg, logLevel, logFormat)

			l, err := blas.New()
			if err != nil {
				return fmt.Errorf("bench: %w", err)
			}
			l.SetLogger(log)

			n := int(size)
			reps := int(repeat)
			rng := rand.New(rand.NewSource(time.Now().UnixNano()))
			x := make([]float32, n)
			y := make([]float32, n)
			for i := range x {
				x[i] = rng.Float32()
				y[i] = rng.Float32()
			}

			// Each invocation includes upload and readback, so the figures
			// reflect round-trip cost, not raw kernel throughput.
			if err := timeRoutine("sdot", reps, 2*float64(n), func() error {
				_, err := l.Sdot(n, x, 1, y, 1)
				return err
			}); err != nil {
				return err
			}
			if err := timeRoutine("sasum", reps, float64(n), func() error {
				_, err := l.Sasum(n, x, 1)
				return err
			}); err != nil {
				return err
			}
			if err := timeRoutine("saxpy", reps, 2*float64(n), func() error {
				return l.Saxpy(n, 1.0001, x, 1, y, 1)
			}); err != nil {
				return err
			}

			// Matrix edge chosen so the gemv touches about as many elements
			// as the vector routines.
			m := 1
			for (m+1)*(m+1) <= n {
				m++
			}
			a := make([]float32, m*m)
			for i := range a {
				a[i] = rng.Float32()
			}
			return timeRoutine("sgemv", reps, 2*float64(m)*float64(m), func() error {
				return l.Sgemv(blas.NoTrans, m, m, 1, a, m, x[:m], 1, 0, y[:m], 1)
			})
		},
	}
}

func timeRoutine(name string, reps int, flops float64, fn func() error) error {
	// Warm up once so pipeline compilation is not billed to the timing.
	if err := fn(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	start := time.Now()
	for i := 0; i < reps; i++ {
		if err := fn(); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	elapsed := time.Since(start)
	per := elapsed / time.Duration(reps)
	gflops := flops / per.Seconds() / 1e9
	fmt.Printf("%-8s %3d reps  %12v/op  %8.2f GFLOP/s\n", name, reps, per, gflops)
	return nil
}
