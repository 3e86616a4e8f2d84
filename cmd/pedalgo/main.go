package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/justyntemme/pedalgo/pkg/config"
	"github.com/justyntemme/pedalgo/pkg/effects"
	"github.com/justyntemme/pedalgo/pkg/framework/debug"
	"github.com/justyntemme/pedalgo/pkg/framework/plugin"
)

// Overridable with -ldflags "-X main.version=1.2.3".
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "list":
		runList(os.Args[2:])
	case "render":
		if err := runRender(os.Args[2:]); err != nil {
			debug.Error("%v", err)
			os.Exit(1)
		}
	case "version", "-v", "--version":
		fmt.Printf("pedalgo %s\n", version)
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("pedalgo - effect module host")
	fmt.Println("")
	fmt.Println("Usage:")
	fmt.Println("  pedalgo <command> [options]")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list      show the stock modules, their parameters and mappings")
	fmt.Println("  render    run a rig file over a WAV recording")
	fmt.Println("  version   print the version")
	fmt.Println("")
	fmt.Println("Example:")
	fmt.Println("  pedalgo render -rig rig.yaml -env .env -log debug")
}

func runList(args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	_ = fs.Parse(args)

	printRegistry(os.Stdout, effects.NewRegistry())
}

func printRegistry(w io.Writer, reg *plugin.Registry) {
	for _, e := range reg.Entries() {
		fmt.Fprintf(w, "%s %s (%s) %s\n", e.Info.Name, e.Info.Version, e.Info.Category, e.Info.UID())
		for i, d := range e.Parameters {
			fmt.Fprintf(w, "  %d  %s\n", i, d)
		}
	}
}

func runRender(args []string) error {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	rigPath := fs.String("rig", "rig.yaml", "rig file (YAML)")
	envFile := fs.String("env", ".env", "dotenv file with PEDAL_* overrides")
	logLevel := fs.String("log", "", "log level: debug|info|warn|error|off (overrides the rig)")
	in := fs.String("in", "", "input WAV (overrides the rig)")
	out := fs.String("out", "", "output WAV (overrides the rig)")
	_ = fs.Parse(args)

	if err := config.LoadEnv(*envFile); err != nil {
		return err
	}
	rig, err := config.Load(*rigPath)
	if err != nil {
		return err
	}
	if *in != "" {
		rig.Input = *in
	}
	if *out != "" {
		rig.Output = *out
	}
	if rig.Input == "" || rig.Output == "" {
		return fmt.Errorf("%s: input and output are required", *rigPath)
	}

	level := rig.LogLevel
	if *logLevel != "" {
		level = *logLevel
	}
	lvl, err := debug.ParseLevel(level)
	if err != nil {
		return err
	}
	debug.SetLevel(lvl)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report, err := renderRig(ctx, rig, effects.NewRegistry())
	if err != nil {
		return err
	}
	fmt.Println(report)
	return nil
}
