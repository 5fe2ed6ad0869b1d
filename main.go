package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"

	"github.com/alecthomas/kong"

	"github.com/jdginn/go-sound-scene/interact"
	"github.com/jdginn/go-sound-scene/response"
	goroom "github.com/jdginn/go-sound-scene/room"
	roomConfig "github.com/jdginn/go-sound-scene/room/config"
	roomExperiment "github.com/jdginn/go-sound-scene/room/experiment"
)

var CLI struct {
	Simulate SimulateCmd `cmd:"" help:"Simulate a scene"`
	Validate ValidateCmd `cmd:"" help:"Check a scene config for errors"`
	Browse   BrowseCmd   `cmd:"" help:"Browse the captures of a finished experiment"`
}

type SimulateCmd struct {
	Config string `arg:"" name:"config" help:"config file to simulate" type:"existingfile"`
	Out    string `name:"out" help:"directory to create experiments in" default:"." type:"path"`
	Quiet  bool   `name:"quiet" help:"don't log progress after every round"`
}

func (c SimulateCmd) Run() error {
	config, err := roomConfig.LoadFromFile(c.Config, roomConfig.LoadOptions{
		ValidateImmediately: true,
		ResolvePaths:        true,
		MergeFiles:          true,
	})
	if err != nil {
		return err
	}

	scene, err := config.BuildScene()
	if err != nil {
		return fmt.Errorf("building scene: %w", err)
	}

	expDir, err := roomExperiment.CreateExperimentDirectory(c.Out)
	if err != nil {
		return fmt.Errorf("creating experiment directory: %w", err)
	}
	if err := expDir.CopyConfigFile(c.Config); err != nil {
		return fmt.Errorf("copying config file: %w", err)
	}
	if err := roomConfig.SaveToFile(config, expDir.GetFilePath("resolved.yaml")); err != nil {
		return err
	}
	log.Printf("Experiment %s", expDir.ID)

	workers := config.Simulation.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	params := goroom.TraceParams{
		MaxRounds: config.Simulation.MaxRounds,
		Workers:   workers,
		Seed:      config.Simulation.Seed,
	}
	if !c.Quiet {
		params.Progress = func(s goroom.RoundStats) {
			log.Printf("round %d: %d alive, %d captured, %d decayed, %d escaped", s.Round, s.Alive, s.Captured, s.Decayed, s.Escaped)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report, err := scene.Run(ctx, params)
	if errors.Is(err, goroom.ErrRoundLimit) {
		log.Printf("Warning: %v; writing partial results", err)
	} else if err != nil {
		return err
	}

	if err := writeOutputs(expDir, config.Output, scene, report); err != nil {
		return err
	}

	fmt.Printf("Emitted %d sounds in %d rounds: %d captured, %d decayed, %d escaped\n",
		report.Emitted, report.Rounds, report.Captured, report.Decayed, report.Escaped)
	return nil
}

func writeOutputs(expDir *roomExperiment.ExperimentDir, out roomConfig.Output, scene *goroom.Scene, report goroom.Report) error {
	if out.STL {
		if err := scene.SaveSTL(expDir.GetFilePath("room.stl")); err != nil {
			return err
		}
	}

	if out.Annotations {
		if err := goroom.SaveAnnotations(expDir.GetFilePath("annotations.json"), scene, report.Captures); err != nil {
			return err
		}
	}

	if v := out.SectionView; v != nil {
		view := goroom.View{
			Scene:    scene,
			Captures: report.Captures,
			XSize:    v.Width,
			YSize:    v.Height,
			Plane:    goroom.MakePlane(goroom.V(v.Point[0], v.Point[1], v.Point[2]), goroom.V(v.Normal[0], v.Normal[1], v.Normal[2])),
		}
		if err := view.SavePNG(expDir.GetFilePath("section.png")); err != nil {
			return err
		}
	}

	byReceiver := goroom.CapturesByReceiver(report.Captures)
	for i, receiver := range scene.Receivers() {
		samples := response.FromCaptures(byReceiver[i])

		if out.CSV {
			if err := response.SaveCSV(expDir.GetFilePath(fmt.Sprintf("captures_%d.csv", i)), samples); err != nil {
				return err
			}
		}

		fmt.Printf("%s: %d captures", receiver.Name, len(samples))
		if itd, err := response.InitialTimeDelay(byReceiver[i]); err == nil {
			fmt.Printf(", ITD %.2f ms", itd/goroom.MS)
		}
		if out.WindowMS > 0 {
			energy := response.EnergyOverWindow(samples, out.WindowMS*goroom.MS)
			fmt.Printf(", %.2f dB in first %g ms", goroom.ToDB(energy), out.WindowMS)
		}

		if out.BinMS > 0 && len(samples) > 0 {
			binWidth := out.BinMS * goroom.MS
			echogram, err := response.Echogram(samples, binWidth, samples[len(samples)-1].Time+binWidth)
			if err != nil {
				return err
			}
			t30, err := response.DecayTime(response.Schroeder(echogram), binWidth, -5, -35)
			if err == nil {
				fmt.Printf(", T30 %.3f s", t30)
			} else if !errors.Is(err, response.ErrNotEnoughDecay) {
				return err
			}
			if out.Plot {
				if err := response.PlotEchogram(expDir.GetFilePath(fmt.Sprintf("echogram_%d.png", i)), echogram, binWidth, 800, 400); err != nil {
					return err
				}
			}
		}
		fmt.Println()
	}
	return nil
}

type ValidateCmd struct {
	Config string `arg:"" name:"config" help:"config file to validate" type:"existingfile"`
}

func (c ValidateCmd) Run() error {
	config, err := roomConfig.LoadFromFile(c.Config, roomConfig.LoadOptions{
		ResolvePaths: true,
		MergeFiles:   true,
	})
	if err != nil {
		return err
	}
	if errs := config.Validate(); len(errs) > 0 {
		fmt.Print(roomConfig.FormatValidationErrors(errs))
		return fmt.Errorf("%d validation errors", len(errs))
	}
	scene, err := config.BuildScene()
	if err != nil {
		return fmt.Errorf("building scene: %w", err)
	}
	for i, e := range scene.Emitters() {
		for _, r := range scene.Receivers() {
			if hit, clear := scene.LineOfSight(e.Origin, r.Geometry.Origin); !clear {
				p := hit.Point
				log.Printf("Warning: no direct path from emitter %d to %s, blocked %.2fm out at (%.2f, %.2f, %.2f)",
					i, r.Name, hit.Time, p.X, p.Y, p.Z)
			}
		}
	}
	fmt.Println("Config is valid")
	return nil
}

type BrowseCmd struct {
	Annotations string `arg:"" name:"annotations" help:"annotations.json written by simulate" type:"existingfile"`
}

func (c BrowseCmd) Run() error {
	annotations, err := goroom.LoadAnnotations(c.Annotations)
	if err != nil {
		return err
	}
	if len(annotations.Captures) == 0 {
		return fmt.Errorf("%s has no captures", c.Annotations)
	}
	return interact.Interact(annotations)
}

func main() {
	ctx := kong.Parse(&CLI)
	err := ctx.Run()
	if err != nil {
		log.Fatal(err)
	}
}
