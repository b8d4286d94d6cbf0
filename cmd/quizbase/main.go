package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/conorfennell/quizbase/internal/config"
	"github.com/conorfennell/quizbase/internal/legacy"
	"github.com/conorfennell/quizbase/internal/loader"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "load":
		runLoad(os.Args[2:])
	case "convert":
		runConvert(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage:
  quizbase load    --quiz <path|git-url> --db <path> [--overwrite] [--file <path-in-repo>] [--cache-dir <dir>]
  quizbase convert --json <path> (--out <path> | --stdout)`)
}

func runLoad(args []string) {
	// 1. Define and parse command-line flags
	flags := pflag.NewFlagSet("load", pflag.ExitOnError)
	flags.String("quiz", "", "Path or git URL of the quiz file to load")
	flags.String("db", "quiz.db", "Path to the SQLite database file")
	flags.Bool("overwrite", false, "Delete a pre-existing database before loading")
	flags.String("file", "", "Quiz file inside the repository, for git sources")
	flags.String("cache-dir", "repos", "Directory for cached quiz repositories")
	flags.Parse(args)

	// 2. Layer in config file and environment, then validate
	var cfg config.LoadConfig
	if err := config.Load(flags, &cfg); err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// 3. Parse the quiz and project it into the database
	if err := loader.Run(cfg); err != nil {
		slog.Error("load failed", "error", err)
		os.Exit(1)
	}
}

func runConvert(args []string) {
	flags := pflag.NewFlagSet("convert", pflag.ExitOnError)
	flags.String("json", "", "Path to the v1 JSON quiz file")
	flags.String("out", "", "Path at which to write the converted quiz")
	flags.Bool("stdout", false, "Write the converted quiz to standard output")
	flags.Parse(args)

	var cfg config.ConvertConfig
	if err := config.Load(flags, &cfg); err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	in, err := os.Open(cfg.JSON)
	if err != nil {
		slog.Error("could not open quiz", "path", cfg.JSON, "error", err)
		os.Exit(1)
	}
	defer in.Close()

	var out io.Writer = os.Stdout
	if !cfg.Stdout {
		f, err := os.Create(cfg.Out)
		if err != nil {
			slog.Error("could not create output file", "path", cfg.Out, "error", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	if err := legacy.Convert(in, out); err != nil {
		slog.Error("convert failed", "error", err)
		os.Exit(1)
	}
}
