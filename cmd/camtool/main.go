// camtool is a CLI utility for inspecting orbit camera behaviour without a window.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/orbitcam/internal/config"
	"github.com/Faultbox/orbitcam/internal/engine/camera"
	"github.com/Faultbox/orbitcam/internal/replay"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "replay", "run":
		cmdReplay(args)
	case "defaults":
		cmdDefaults(args)
	case "normalize", "norm":
		cmdNormalize(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`camtool - orbit camera utility

Usage:
  camtool <command> [options]

Commands:
  replay [-config file] [-all] <trace.yaml>      Replay an input trace and print camera states
  defaults [-o file]                             Print or write the default config
  normalize [-config file] <r> <theta> <phi>     Clamp and wrap coordinates

Examples:
  camtool replay session.yaml
  camtool replay -config orbitcam.yaml -all session.yaml
  camtool defaults -o ~/.config/orbitcam/config.yaml
  camtool normalize 12 2.5 -1`)
}

func cmdReplay(args []string) {
	fs := flag.NewFlagSet("replay", flag.ExitOnError)
	configPath := fs.String("config", "", "Config file with camera and controls sections")
	all := fs.Bool("all", false, "Print every step, not only the ones that moved the camera")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: camtool replay [-config file] [-all] <trace.yaml>")
		os.Exit(1)
	}

	cfg := loadConfig(*configPath)
	camCfg, err := cfg.Camera.ToCamera()
	exitOnError(err)
	tuning, err := cfg.Controls.ToTuning()
	exitOnError(err)

	trace, err := replay.Load(fs.Arg(0))
	exitOnError(err)

	steps, err := replay.Run(trace, camCfg, tuning)
	exitOnError(err)

	records := replay.Records(steps)
	if !*all {
		committed := records[:0]
		for _, r := range records {
			if r.Committed {
				committed = append(committed, r)
			}
		}
		records = committed
	}

	if trace.Name != "" {
		fmt.Printf("# %s\n", trace.Name)
	}
	fmt.Printf("# %d events, %d printed\n", len(steps), len(records))
	writeYAML(records)
}

func cmdDefaults(args []string) {
	fs := flag.NewFlagSet("defaults", flag.ExitOnError)
	out := fs.String("o", "", "Write to this file instead of stdout")
	fs.Parse(args)

	cfg := config.Default()
	if *out == "" {
		writeYAML(cfg)
		return
	}
	exitOnError(cfg.SaveTo(*out))
	fmt.Printf("Wrote %s\n", *out)
}

func cmdNormalize(args []string) {
	fs := flag.NewFlagSet("normalize", flag.ExitOnError)
	configPath := fs.String("config", "", "Config file with camera bounds")
	fs.Parse(args)

	if fs.NArg() < 3 {
		fmt.Fprintln(os.Stderr, "Usage: camtool normalize [-config file] <r> <theta> <phi>")
		os.Exit(1)
	}

	var v [3]float64
	for i := range v {
		f, err := strconv.ParseFloat(fs.Arg(i), 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid number %q\n", fs.Arg(i))
			os.Exit(1)
		}
		v[i] = f
	}

	cfg := loadConfig(*configPath)
	camCfg, err := cfg.Camera.ToCamera()
	exitOnError(err)

	c := camera.Normalize(camCfg, camera.Coords{R: v[0], Theta: v[1], Phi: v[2]})
	fmt.Printf("r:     %v\ntheta: %v\nphi:   %v\n", c.R, c.Theta, c.Phi)
}

func loadConfig(path string) *config.Config {
	if path == "" {
		return config.Default()
	}
	cfg, err := config.LoadFile(path)
	exitOnError(err)
	return cfg
}

func writeYAML(v any) {
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	exitOnError(enc.Encode(v))
	exitOnError(enc.Close())
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
