package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"nbodies/internal/commands"
	"nbodies/internal/debug"
	"nbodies/internal/engineconfig"
	"nbodies/internal/env"
	"nbodies/internal/graphics"
	"nbodies/internal/input"
	"nbodies/internal/logger"
	"nbodies/internal/primitives"
	"nbodies/internal/sampler"
	"nbodies/internal/scene"
	"nbodies/internal/session"
	"nbodies/internal/terminal"
	"nbodies/internal/world"
)

func main() {
	log := logger.New()
	log.SetMirror(os.Stderr)

	reg := commands.NewRegistry()
	registerRun(reg, log)
	registerSample(reg, log)
	registerConfig(reg, log)

	args := os.Args[1:]
	if len(args) == 0 || args[0] != "" && args[0][0] == '-' {
		args = append([]string{"run"}, args...)
	}
	if args[0] == "help" {
		for _, u := range reg.Usage() {
			fmt.Println(u)
		}
		return
	}
	if err := reg.Execute(args); err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func registerRun(reg *commands.Registry, log *logger.Logger) {
	fs := newFlagSet("run")
	cfgPath := fs.String("config", engineconfig.WorldConfigPath, "world config file")
	envPath := fs.String("env", ".env", "dotenv file with NBODIES_* overrides")
	reg.Register("run", "open the viewer [-config path] [-env path]", fs, func([]string) error {
		if err := env.Load(*envPath); err != nil {
			return fmt.Errorf("load %s: %w", *envPath, err)
		}
		cfg, err := engineconfig.Resolve(*cfgPath)
		if err != nil {
			return err
		}
		log.Infof("config: radius %.1f, %d bodies, camera distance %.1f, speed %.1f",
			cfg.Radius, cfg.BodyCount, cfg.CameraDistance, cfg.CameraSpeed)
		return run(cfg, log)
	})
}

func run(cfg engineconfig.WorldConfig, log *logger.Logger) error {
	sess, err := session.New(cfg, log)
	if err != nil {
		return err
	}
	console := commands.NewRegistry()
	sess.RegisterCommands(console)
	term := terminal.New(log, console)
	scn := scene.New(sess, primitives.BodyStyle{Color: cfg.BodyColor, Radius: cfg.BodyRadius})
	hud := debug.New(sess)

	isDown := func(k input.Key) bool { return graphics.KeyDown(int32(k)) }
	update := func(dt float32) {
		term.Update()
		if term.IsOpen() {
			sess.Idle(dt)
		} else {
			sess.Frame(isDown, dt)
		}
		scn.Sync()
	}
	draw := func() {
		scn.Draw()
		hud.Draw()
		term.Draw()
	}
	graphics.Run(cfg.Window, update, draw, scn.Unload)
	log.Log("viewer closed")
	return nil
}

func registerSample(reg *commands.Registry, log *logger.Logger) {
	fs := newFlagSet("sample")
	radius := fs.Float64("radius", 100, "sphere radius")
	count := fs.Int("count", 10000, "number of points")
	seed := fs.Int64("seed", 0, "random seed (0 = time based)")
	reg.Register("sample", "sample points headless and report [-radius R] [-count N] [-seed S]", fs, func([]string) error {
		points, stats, err := sampler.SampleWithStats(world.NewSource(*seed), float32(*radius), *count)
		if err != nil {
			return err
		}
		var sum, maxNorm float64
		for _, p := range points {
			n := float64(p.Len())
			sum += n
			if n > maxNorm {
				maxNorm = n
			}
		}
		mean := 0.0
		if len(points) > 0 {
			mean = sum / float64(len(points))
		}
		log.Infof("sampled %d points in radius %.2f", stats.Accepted, *radius)
		log.Infof("draws %d (%.3f per point, expected 1.910)", stats.Draws, stats.DrawsPerPoint())
		log.Infof("mean norm %.3f (expected %.3f), max norm %.3f", mean, 0.75*(*radius), maxNorm)
		return nil
	})
}

func registerConfig(reg *commands.Registry, log *logger.Logger) {
	fs := newFlagSet("config")
	out := fs.String("out", engineconfig.WorldConfigPath, "where to write the default config")
	reg.Register("config", "write the default world config [-out path]", fs, func([]string) error {
		if err := engineconfig.Save(*out, engineconfig.Default().Derive()); err != nil {
			return err
		}
		log.Infof("wrote %s", *out)
		return nil
	})
}
