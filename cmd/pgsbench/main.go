// Command pgsbench builds a synthetic contact scene and runs one or more
// solver kernel variants over it, reporting wall time and the driver's
// average-iterations diagnostic. It is an external consumer of the pgs
// module — the module itself never imports a CLI or config library.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kepleric/pgs"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		bodyCount     int
		jointsPerBody float64
		kernel        string
		seed          int64
		contactIters  int
		penIters      int
		verbose       bool
	)

	cmd := &cobra.Command{
		Use:   "pgsbench",
		Short: "Benchmark the contact constraint solver against a generated scene",
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				slog.SetLogLoggerLevel(slog.LevelDebug)
			}

			scene := newScene(bodyCount, jointsPerBody, seed)
			cfg := pgs.DefaultConfig()
			cfg.ContactIterations = contactIters
			cfg.PenetrationIterations = penIters

			solver := &pgs.Solver{
				Bodies:        scene.Bodies,
				ContactJoints: scene.Joints,
				Cfg:           cfg,
				Dt:            1.0 / 60.0,
				Restitution:   0,
			}

			solver.RefreshJoints()
			solver.PreStepJoints()

			run, ok := kernels[kernel]
			if !ok {
				return fmt.Errorf("unknown kernel %q (want one of %v)", kernel, kernelNames())
			}

			start := time.Now()
			avgIter := run(solver)
			elapsed := time.Since(start)

			fmt.Printf("kernel=%s bodies=%d joints=%d elapsed=%s avgIterations=%.3f\n",
				kernel, len(scene.Bodies), len(scene.Joints), elapsed, avgIter)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&bodyCount, "bodies", 256, "number of bodies in the generated scene")
	flags.Float64Var(&jointsPerBody, "joints-per-body", 1.5, "average contact joints per body")
	flags.StringVar(&kernel, "kernel", "auto", fmt.Sprintf("kernel variant: %v", kernelNames()))
	flags.Int64Var(&seed, "seed", 1, "scene generation seed")
	flags.IntVar(&contactIters, "contact-iterations", 4, "velocity (impulse) iteration budget")
	flags.IntVar(&penIters, "penetration-iterations", 4, "displacement iteration budget")
	flags.BoolVar(&verbose, "verbose", false, "enable debug logging")

	return cmd
}

var kernels = map[string]func(*pgs.Solver) float32{
	"aos":    (*pgs.Solver).SolveJointsAoS,
	"scalar": (*pgs.Solver).SolveJointsSoA_Scalar,
	"sse2":   (*pgs.Solver).SolveJointsSoA_SSE2,
	"avx2":   (*pgs.Solver).SolveJointsSoA_AVX2,
	"fma":    (*pgs.Solver).SolveJointsSoA_FMA,
	"auto":   (*pgs.Solver).SolveJointsAuto,
}

func kernelNames() []string {
	names := make([]string, 0, len(kernels))
	for name := range kernels {
		names = append(names, name)
	}
	return names
}
