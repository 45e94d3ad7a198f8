// Command llxdump loads a JSON or zstd-compressed grammar table and prints
// a human-readable summary: terminal/non-terminal counts, DFA state
// counts per scanner mode, and the effective trivia set. It is the
// consumer-side counterpart of a table generator, which is out of scope
// for this module.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/llxrt/llxrt/config"
	"github.com/llxrt/llxrt/grammar"
	"github.com/llxrt/llxrt/internal/ints"
	"github.com/llxrt/llxrt/internal/logging"
	"github.com/llxrt/llxrt/tables"
)

func main() {
	compressed := pflag.BoolP("compressed", "z", false, "input is zstd-compressed")
	envConfig := pflag.Bool("env-config", false, "load config.FromEnv() before running")
	pflag.Parse()

	if pflag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: llxdump [-z] [--env-config] <table-file>")
		os.Exit(2)
	}

	cfg := config.Default()
	if *envConfig {
		loaded, err := config.FromEnv()
		if err != nil {
			fmt.Fprintln(os.Stderr, "config:", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	logger := logging.New(cfg)

	data, err := os.ReadFile(pflag.Arg(0))
	if err != nil {
		logger.Fatalw("reading table file", "error", err)
	}

	var g *grammar.Grammar
	if *compressed {
		g, err = tables.LoadCompressed(data)
	} else {
		g, err = tables.Decode(data)
	}
	if err != nil {
		logger.Fatalw("decoding table file", "error", err)
	}

	dump(g, cfg)
}

func dump(g *grammar.Grammar, cfg config.Config) {
	fmt.Printf("terminals:      %d\n", len(g.TerminalNames))
	fmt.Printf("non-terminals:  %d\n", len(g.NonTerminalNames))
	fmt.Printf("productions:    %d\n", len(g.Productions))
	fmt.Printf("start symbol:   %s\n", nameOr(g.NonTerminalNames, g.StartSymbol))
	fmt.Printf("scanner modes:  %d\n", len(g.ScannerModes))
	for _, mode := range g.ScannerModes {
		fmt.Printf("  - %-16s %d states\n", mode.Name, len(mode.DFA))
	}

	trivia := g.EffectiveTrivia()
	if len(cfg.TriviaOverride) > 0 {
		trivia = ints.Union(trivia, ints.NewSet(cfg.TriviaOverride...))
		fmt.Printf("trivia types:   %v (with config override %v)\n", trivia.ToSlice(), cfg.TriviaOverride)
		return
	}
	fmt.Printf("trivia types:   %v\n", trivia.ToSlice())
}

func nameOr(names []string, index int) string {
	if index >= 0 && index < len(names) {
		return names[index]
	}
	return fmt.Sprintf("<%d>", index)
}
