// Command llxdot renders a scanner mode's DFA, or a non-terminal's
// lookahead DFA, as a Graphviz graph: states as nodes, transitions as
// labeled edges, accepting states double-circled.
package main

import (
	"fmt"
	"os"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
	"github.com/spf13/pflag"

	"github.com/llxrt/llxrt/grammar"
	"github.com/llxrt/llxrt/tables"
)

func main() {
	compressed := pflag.BoolP("compressed", "z", false, "input is zstd-compressed")
	mode := pflag.String("mode", "", "render this scanner mode's DFA")
	nonTerm := pflag.String("nonterm", "", "render this non-terminal's lookahead DFA")
	out := pflag.StringP("out", "o", "graph.svg", "output file path")
	pflag.Parse()

	if pflag.NArg() != 1 || (*mode == "") == (*nonTerm == "") {
		fmt.Fprintln(os.Stderr, "usage: llxdot [-z] (--mode NAME | --nonterm NAME) -o out.svg <table-file>")
		os.Exit(2)
	}

	data, err := os.ReadFile(pflag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, "reading table file:", err)
		os.Exit(1)
	}

	var g *grammar.Grammar
	if *compressed {
		g, err = tables.LoadCompressed(data)
	} else {
		g, err = tables.Decode(data)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "decoding table file:", err)
		os.Exit(1)
	}

	gv := graphviz.New()
	graph, err := gv.Graph()
	if err != nil {
		fmt.Fprintln(os.Stderr, "creating graph:", err)
		os.Exit(1)
	}
	defer graph.Close()
	defer gv.Close()

	switch {
	case *mode != "":
		if err := renderScannerMode(graph, g, *mode); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	case *nonTerm != "":
		if err := renderLookaheadDFA(graph, g, *nonTerm); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	if err := gv.RenderFilename(graph, graphviz.SVG, *out); err != nil {
		fmt.Fprintln(os.Stderr, "rendering:", err)
		os.Exit(1)
	}
}

func renderScannerMode(graph *cgraph.Graph, g *grammar.Grammar, modeName string) error {
	for _, m := range g.ScannerModes {
		if m.Name != modeName {
			continue
		}
		return renderDFA(graph, m.DFA, func(state int, dfa grammar.DFA) string {
			labels := make([]string, 0, len(dfa[state].Accepts))
			for _, a := range dfa[state].Accepts {
				labels = append(labels, tokenLabel(g, a.TokenType))
			}
			return joinOrEmpty(labels)
		})
	}
	return fmt.Errorf("no scanner mode named %q", modeName)
}

func renderLookaheadDFA(graph *cgraph.Graph, g *grammar.Grammar, ntName string) error {
	nt, ok := g.NonTerminalByName(ntName)
	if !ok {
		return fmt.Errorf("no non-terminal named %q", ntName)
	}
	dfa := g.LookaheadAutomata[nt]

	states := map[int]*cgraph.Node{}
	getNode := func(id int) (*cgraph.Node, error) {
		if n, ok := states[id]; ok {
			return n, nil
		}
		n, err := graph.CreateNode(fmt.Sprintf("s%d", id))
		if err != nil {
			return nil, err
		}
		states[id] = n
		return n, nil
	}

	start, err := getNode(0)
	if err != nil {
		return err
	}
	start.SetShape(cgraph.DoubleCircleShape)
	start.SetLabel(fmt.Sprintf("start (default prod %d)", dfa.Default))

	for _, tr := range dfa.Transitions {
		from, err := getNode(tr.From)
		if err != nil {
			return err
		}
		to, err := getNode(tr.To)
		if err != nil {
			return err
		}
		if tr.Production >= 0 {
			to.SetShape(cgraph.DoubleCircleShape)
		}
		edge, err := graph.CreateEdge(fmt.Sprintf("s%d-s%d-%d", tr.From, tr.To, tr.Terminal), from, to)
		if err != nil {
			return err
		}
		edge.SetLabel(fmt.Sprintf("%s -> prod %d", tokenLabel(g, tr.Terminal), tr.Production))
	}
	return nil
}

func renderDFA(graph *cgraph.Graph, dfa grammar.DFA, acceptLabel func(int, grammar.DFA) string) error {
	nodes := make([]*cgraph.Node, len(dfa))
	for i := range dfa {
		n, err := graph.CreateNode(fmt.Sprintf("s%d", i))
		if err != nil {
			return err
		}
		if len(dfa[i].Accepts) > 0 {
			n.SetShape(cgraph.DoubleCircleShape)
			n.SetLabel(fmt.Sprintf("s%d\\n%s", i, acceptLabel(i, dfa)))
		}
		nodes[i] = n
	}

	for i, state := range dfa {
		for class, tr := range state.Transitions {
			if !tr.Valid {
				continue
			}
			edge, err := graph.CreateEdge(fmt.Sprintf("s%d-s%d-c%d", i, tr.Target, class), nodes[i], nodes[tr.Target])
			if err != nil {
				return err
			}
			edge.SetLabel(fmt.Sprintf("class %d", class))
		}
	}
	return nil
}

func tokenLabel(g *grammar.Grammar, tokenType int) string {
	if tokenType >= 0 && tokenType < len(g.TerminalNames) {
		return g.TerminalNames[tokenType]
	}
	return "EOF"
}

func joinOrEmpty(labels []string) string {
	if len(labels) == 0 {
		return ""
	}
	out := labels[0]
	for _, l := range labels[1:] {
		out += ","
		out += l
	}
	return out
}
