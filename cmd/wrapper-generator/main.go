// Package main provides the CLI entrypoint for wrapper-generator.
//
// wrapper-generator loads a class model from a YAML description, runs the
// element wrapper pass over it and reports what changed:
//   - Repeated, wildcard, mixed and substitution-head properties move into
//     wrapper classes
//   - The summary, episode and resolved directives can be written to files
//   - The watch command reruns the pass whenever the inputs change
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"wrapper-generator/options"
)

var (
	debug    = flag.Bool("debug", false, "log at debug level and dump the rewritten model")
	quiet    = flag.Bool("quiet", false, "disable logging")
	showDiff = flag.Bool("diff", false, "print a unified diff of the model before and after the pass")
	episode  = flag.String("episode", "", "write the episode of the run to this YAML file")
	previous = flag.String("previous-episode", "", "episode of an earlier run whose class names are kept")
	export   = flag.String("export", "", "write the resolved directives as a YAML control file")
	sample   = flag.String("sample", "", "XML document checked to read and write the same before and after the pass")
	root     = flag.String("root", "", "qualified class name of the -sample document")
)

func main() {
	flag.Usage = usage

	opts, rest, err := options.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	err = flag.CommandLine.Parse(rest)
	if err != nil {
		os.Exit(2)
	}

	args := flag.Args()

	watch := len(args) > 0 && args[0] == "watch"
	if watch {
		args = args[1:]
	}

	if len(args) != 1 {
		usage()
		os.Exit(2)
	}

	log, err := newLogger(*debug, *quiet)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	defer func() { _ = log.Sync() }()

	job := &job{
		modelPath:   args[0],
		opts:        opts,
		log:         log,
		out:         os.Stdout,
		dump:        *debug,
		diff:        *showDiff,
		episodePath: *episode,
		previous:    *previous,
		exportPath:  *export,
		samplePath:  *sample,
		sampleRoot:  *root,
	}

	if watch {
		err = runWatch(job)
	} else {
		err = job.run()
	}

	if err != nil {
		log.Error("wrapper pass failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(debug, quiet bool) (*zap.Logger, error) {
	switch {
	case quiet:
		return zap.NewNop(), nil
	case debug:
		return zap.NewDevelopment()
	default:
		return zap.NewProduction()
	}
}

func usage() {
	_, _ = fmt.Fprintf(os.Stderr, `wrapper-generator - element wrapper pass over a class model

Usage:
  wrapper-generator [flags] [-Xxew:option [value]...] model.yaml
  wrapper-generator [flags] [-Xxew:option [value]...] watch model.yaml

Options:
  -Xxew:collection <type>           collection implementation (List, LinkedList, Set, TreeSet, ...)
  -Xxew:collectionInterface <name>  interface exposed by accessors (Collection, List, Set, SortedSet)
  -Xxew:instantiate <mode>          eager, lazy or none
  -Xxew:plural                      pluralize wrapper and field names
  -Xxew:nested                      nest wrapper classes in their owner
  -Xxew:control <file>              control file (line format or YAML)
  -Xxew:summary <file>              write the run summary to file

Flags:
`)
	flag.PrintDefaults()
}
