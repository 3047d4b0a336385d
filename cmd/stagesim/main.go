// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Stagesim builds a small demo scene and steps it
// headlessly, printing what was published.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/gviegas/stage"
	"github.com/gviegas/stage/anim"
	"github.com/gviegas/stage/engine"
	"github.com/gviegas/stage/linear"
	"github.com/gviegas/stage/node"
	"github.com/gviegas/stage/sim"
	"github.com/gviegas/stage/transform"
	"github.com/gviegas/stage/uniform"
)

type options struct {
	config     string
	frames     int
	dt         float32
	dump       bool
	controller string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:          "stagesim",
		Short:        "Step a demo scene without rendering it",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.OutOrStdout(), &opts)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.config, "config", "c", "", "configuration file (.toml, .yaml or .yml)")
	f.IntVarP(&opts.frames, "frames", "n", 120, "number of frames to step")
	f.Float32Var(&opts.dt, "dt", 1.0/60, "time step of each frame, in seconds")
	f.BoolVar(&opts.dump, "dump", false, "dump the final state of the scene")
	f.StringVar(&opts.controller, "controller", "orbit", "camera controller (fly, orbit or none)")
	return cmd
}

func run(w io.Writer, opts *options) error {
	if opts.config != "" {
		config, err := engine.LoadConfig(opts.config)
		if err != nil {
			return err
		}
		engine.Configure(&config)
	}
	if opts.frames < 0 {
		return errors.Errorf("stagesim: invalid frame count %d", opts.frames)
	}

	var rec uniform.Recorder
	d, err := build(&rec, opts.controller)
	if err != nil {
		return err
	}
	for range opts.frames {
		d.scene.Frame(opts.dt)
	}
	slog.Info("stagesim: done", "frames", opts.frames, "elapsed", d.scene.Elapsed())

	fmt.Fprintf(w, "frames: %d\n", opts.frames)
	fmt.Fprintf(w, "elapsed: %v\n", d.scene.Elapsed())
	fmt.Fprintf(w, "nodes: %d\n", d.scene.Len())
	fmt.Fprintf(w, "published frames: %d\n", rec.Frames)
	fmt.Fprintf(w, "published drawables: %d\n", len(rec.Drawables))
	fmt.Fprintf(w, "published lights: %d\n", len(rec.Lights))
	fmt.Fprintf(w, "animation progress: %.3f\n", d.anim.Progress())
	eye := d.scene.Camera().Transform().Position()
	fmt.Fprintf(w, "camera: %.3f %.3f %.3f\n", eye[0], eye[1], eye[2])
	for _, n := range d.nodes {
		m := d.scene.World(n)
		fmt.Fprintf(w, "%s: %.3f %.3f %.3f\n", d.scene.Name(n), m[3][0], m[3][1], m[3][2])
	}

	if opts.dump {
		cs := spew.NewDefaultConfig()
		cs.DisableCapacities = true
		cs.DisablePointerAddresses = true
		fmt.Fprint(w, cs.Sdump(snapshot(d, &rec)))
	}
	return nil
}

// demo is the scene built by build.
type demo struct {
	scene *stage.Scene
	nodes []node.Node
	anim  *anim.Animation
}

func build(sink uniform.Sink, controller string) (*demo, error) {
	s := stage.New(sink)
	d := &demo{scene: s}

	world := s.NewGroup(transform.New().Translate(linear.V3{0, -1, 0}))
	s.SetName(world, "world")

	spinner := s.NewNode(nil)
	s.SetName(spinner, "spinner")
	s.SetDrawer(spinner, engine.NewDrawable(1, sink))
	xf := s.Transform(spinner)
	s.SetUpdater(s.Scheduler(), spinner, sim.UpdaterFunc(func(dt float32) {
		xf.Rotate(30*dt, transform.WorldUp)
	}))

	mover := s.NewNode(transform.New().Translate(linear.V3{-3, 0, 2}))
	s.SetName(mover, "mover")
	s.SetDrawer(mover, engine.NewDrawable(2, sink))
	dst := transform.New().Translate(linear.V3{3, 0, 2}).Scale(2)
	d.anim = anim.New(s.Transform(mover), dst, 0.25)
	d.anim.Play(s.Scheduler())

	watcher := s.NewNode(transform.New().Translate(linear.V3{0, 4, -4}))
	s.SetName(watcher, "watcher")
	s.SetDrawer(watcher, engine.NewDrawable(3, sink))
	if err := s.Transform(watcher).TrackTarget(s.Scheduler(), s.Transform(mover)); err != nil {
		return nil, err
	}

	for _, n := range [...]node.Node{spinner, mover, watcher} {
		if err := s.Add(world, n); err != nil {
			return nil, err
		}
	}
	d.nodes = []node.Node{world, spinner, mover, watcher}

	sun := (&engine.DistantLight{Direction: linear.V3{0, -1, 0}, Intensity: 1000, Color: linear.V3{1, 1, 1}}).Light()
	spot := (&engine.SpotLight{InnerAngle: 0.3, OuterAngle: 0.5, Range: 20, Intensity: 500, Color: linear.V3{1, 0.9, 0.8}}).Light()
	spot.Follow(s.Transform(watcher))
	for _, l := range [...]*engine.Light{&sun, &spot} {
		if _, err := s.AddLight(l); err != nil {
			return nil, err
		}
	}

	switch controller {
	case "fly":
		s.UseFly()
		s.Camera().Transform().SetPosition(linear.V3{0, 2, -10})
	case "orbit":
		s.UseOrbit(linear.V3{})
	case "none":
		s.Camera().Transform().SetPosition(linear.V3{0, 2, -10}).LookAtPoint(linear.V3{})
	default:
		return nil, errors.Errorf("stagesim: unknown controller %q", controller)
	}
	s.Camera().SetActive(0)
	return d, nil
}

// state is what --dump prints.
type state struct {
	Elapsed   string
	View      linear.M4
	Proj      linear.M4
	Worlds    map[string]linear.M4
	Drawables map[uint32]uniform.DrawableLayout
	Lights    map[int]uniform.LightLayout
}

func snapshot(d *demo, rec *uniform.Recorder) state {
	st := state{
		Elapsed:   d.scene.Elapsed().String(),
		View:      d.scene.Camera().View(),
		Proj:      d.scene.Camera().Projection(),
		Worlds:    make(map[string]linear.M4, len(d.nodes)),
		Drawables: rec.Drawables,
		Lights:    rec.Lights,
	}
	for _, n := range d.nodes {
		st.Worlds[d.scene.Name(n)] = *d.scene.World(n)
	}
	return st
}
