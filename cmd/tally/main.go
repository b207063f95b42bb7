package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/tally/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional)")
	prefsPath := flag.String("prefs", "", "override preferences path (optional)")
	inMemory := flag.Bool("memory", false, "keep the counter database in memory")
	baseURL := flag.String("base-url", "", "override the API base URL (optional)")
	preview := flag.Bool("preview", false, "run the TUI over a sample counter without touching disk")
	flag.Usage = usage
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		PrefsPath:  *prefsPath,
		BaseURL:    *baseURL,
		InMemory:   *inMemory,
	}

	args := flag.Args()
	if len(args) == 0 {
		var err error
		if *preview {
			err = app.RunPreview(ctx)
		} else {
			err = app.Run(ctx, opts)
		}
		return exitCode(err)
	}

	var command func(*app.Deps) error
	switch {
	case args[0] == "get" && (len(args) == 2 || len(args) == 3):
		var path string
		if len(args) == 3 {
			path = args[2]
		}
		command = func(d *app.Deps) error { return app.GetCommand(ctx, d, args[1], path, os.Stdout) }
	case args[0] == "post" && len(args) == 3:
		command = func(d *app.Deps) error { return app.PostCommand(ctx, d, args[1], args[2], os.Stdout) }
	case args[0] == "prefs":
		command = func(d *app.Deps) error { return app.PrefsCommand(d, args[1:], os.Stdout) }
	default:
		usage()
		return 2
	}

	deps, err := app.CommandDeps(opts)
	if err != nil {
		return exitCode(err)
	}
	defer deps.Close()
	return exitCode(command(deps))
}

func exitCode(err error) int {
	if err != nil {
		fmt.Fprintf(os.Stderr, "tally: %v\n", err)
		return 1
	}
	return 0
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `usage: tally [flags] [command]

commands:
  (none)                    start the counter TUI (-preview: sample data, nothing saved)
  get <endpoint> [path]     GET <base-url>/<endpoint> and print the JSON reply,
                            or only the field at path ("items.0.title")
  post <endpoint> <json>    POST a JSON document and print the reply
  prefs [get <key> | set <key> <value>]
                            list, read or change preferences

flags:
`)
	flag.PrintDefaults()
}
