// Command slc is the sl compiler driver: lex, parse, resolve, build
// per-function CFGs, and hand the result to a backend (spec.md §6).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"github.com/sourcelang/slc/internal/ast"
	"github.com/sourcelang/slc/internal/backend"
	"github.com/sourcelang/slc/internal/diag"
	"github.com/sourcelang/slc/internal/driver"
	"github.com/sourcelang/slc/internal/module"
)

var (
	red    = color.New(color.FgRed, color.Bold).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run returns 0 for a successful dump and 1 for parse/sema/invocation
// errors. No Emitter is configured, so a non-dump invocation never
// reaches the linker-driver and also returns 1.
func run(args []string) int {
	fs := flag.NewFlagSet("slc", flag.ContinueOnError)
	var (
		output     = fs.String("o", "a.out", "output executable path")
		importDirs = fs.String("i", "", "import search paths, ';'-separated")
		libDirs    = fs.String("L", "", "library search paths, ';'-separated")
		astDump    = fs.Bool("ast-dump", false, "dump the parsed AST and stop")
		resDump    = fs.Bool("res-dump", false, "dump the resolved tree and stop")
		cfgDump    = fs.Bool("cfg-dump", false, "dump each function's CFG and stop")
		llvmDump   = fs.Bool("llvm-dump", false, "dump emitted IR and stop")
		dbg        = fs.Bool("dbg", false, "request debug-info metadata from the backend")
		noCleanup  = fs.Bool("no-cleanup", false, "keep the backend's temporary IR files")
	)
	fs.Usage = func() { printHelp(fs) }

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 1
	}
	if fs.NArg() == 0 {
		printHelp(fs)
		return 1
	}
	source := fs.Arg(0)

	log := logrus.New()
	if *dbg {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}

	sink := diag.NewSink()

	// -ast-dump stops before semantic analysis even runs, so it gets its
	// own lightweight module-loading pass rather than going through
	// driver.CompileModules (which would fail the whole run on a sema
	// error the user never asked to see past the parse stage).
	if *astDump {
		loader := module.NewLoader(splitPaths(*importDirs), sink)
		graph := loader.Load(source)
		for _, d := range sink.SortedByLocation() {
			fmt.Fprintln(os.Stderr, colorize(d))
		}
		for _, id := range graph.Order() {
			m, ok := graph.Get(id)
			if !ok {
				continue
			}
			fmt.Printf("// module %s\n%s\n", id, ast.Print(m.File))
		}
		return 0
	}

	result, err := driver.CompileModules(context.Background(), splitPaths(*importDirs), source, sink, log)
	for _, d := range sink.SortedByLocation() {
		fmt.Fprintln(os.Stderr, colorize(d))
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("error"), err)
		return 1
	}

	switch {
	case *resDump:
		dumpResolved(result)
		return 0
	case *cfgDump:
		dumpCFGs(result)
		return 0
	case *llvmDump:
		fmt.Fprintln(os.Stderr, red("error")+": no IR emitter is wired into this build (spec.md scopes the emitter out as interface-only)")
		return 1
	}

	// No Emitter implementation ships with this compiler (spec.md §6
	// scopes it out as interface-only); without emitted IR files there is
	// nothing for the linker-driver below to consume, so the pipeline
	// stops here on a normal (non-dump) invocation.
	ld := backend.NewLinkerDriver()
	ld.Log = log
	if _, err := exec.LookPath(ld.CC); err != nil {
		fmt.Fprintf(os.Stderr, "%s: linker-driver %q not found on PATH\n", red("error"), ld.CC)
	}
	fmt.Fprintf(os.Stderr, "%s: no backend.Emitter is configured; pass -ast-dump/-res-dump/-cfg-dump to inspect the front-end output, or wire an Emitter to produce %s via -L %q%s\n",
		red("error"), *output, *libDirs, cleanupNote(*noCleanup))
	return 1
}

func cleanupNote(noCleanup bool) string {
	if noCleanup {
		return " (temporary IR files will be kept)"
	}
	return ""
}

func splitPaths(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ";")
}

func colorize(d diag.Diagnostic) string {
	if d.Severity == diag.Warning {
		return yellow(d.String())
	}
	return red(d.String())
}

func printHelp(fs *flag.FlagSet) {
	fmt.Fprintln(os.Stderr, "usage: slc [flags] <source-file>")
	fs.PrintDefaults()
}
