// Command ikrigctl loads a solver tuning profile, builds an empty rig
// configured from it, runs one solve, and prints the rig's bone, joint, and
// control counts. It does not load a rig description or report bone poses
// or convergence; it exercises the tuning-profile path as a standalone
// entry point, while example/chainreach shows a populated rig in-process.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ikrig/ik/internal/config"
	"github.com/ikrig/ik/rig"
	"github.com/ikrig/ik/solver"
)

func main() {
	app := &cli.App{
		Name:  "ikrigctl",
		Usage: "run IK solves against rig configuration profiles",
		Commands: []*cli.Command{
			solveCommand(),
			batchCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func solveCommand() *cli.Command {
	return &cli.Command{
		Name:      "solve",
		Usage:     "run a single rig's solve and print its bone, joint, and control counts",
		ArgsUsage: "<profile.yaml>",
		Action: func(c *cli.Context) error {
			if c.Args().Len() != 1 {
				return cli.Exit("expected exactly one profile path", 1)
			}
			log, err := zap.NewProduction()
			if err != nil {
				return err
			}
			defer log.Sync()

			r, err := buildRig(c.Args().Get(0), log)
			if err != nil {
				return err
			}
			if err := r.Solve(); err != nil {
				log.Warn("solve reported a graph error", zap.Error(err))
			}
			fmt.Printf("solved %d bones, %d joints, %d controls\n", len(r.Bones), len(r.Joints), len(r.Controls))
			return nil
		},
	}
}

// batchCommand solves a list of independent rig profiles concurrently,
// one goroutine per rig, and returns the first load error once every rig's
// goroutine has finished.
func batchCommand() *cli.Command {
	return &cli.Command{
		Name:      "batch",
		Usage:     "solve multiple independent rig profiles concurrently",
		ArgsUsage: "<profile.yaml> [profile.yaml ...]",
		Action: func(c *cli.Context) error {
			paths := c.Args().Slice()
			if len(paths) == 0 {
				return cli.Exit("expected at least one profile path", 1)
			}
			log, err := zap.NewProduction()
			if err != nil {
				return err
			}
			defer log.Sync()

			var g errgroup.Group
			for _, path := range paths {
				path := path
				g.Go(func() error {
					r, err := buildRig(path, log)
					if err != nil {
						return fmt.Errorf("%s: %w", path, err)
					}
					if err := r.Solve(); err != nil {
						log.Warn("solve reported a graph error", zap.String("profile", path), zap.Error(err))
					}
					return nil
				})
			}
			return g.Wait()
		},
	}
}

// buildRig loads a Profile from path and creates an empty Rig configured to
// it. The caller is responsible for populating the rig's bones, joints, and
// controls — this command demonstrates the tuning-profile path only.
func buildRig(path string, log *zap.Logger) (*rig.Rig, error) {
	profile, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	set, err := profile.NewActiveSet()
	if err != nil {
		return nil, err
	}
	r := &rig.Rig{Solver: solver.New(set, log)}
	if err := profile.Apply(r.Solver); err != nil {
		return nil, err
	}
	return r, nil
}
