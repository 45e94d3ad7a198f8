// Command llxserve exposes a loaded grammar table's shape over HTTP: a
// read-only introspection surface for tooling that would rather query a
// running service than link against the grammar package directly.
package main

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/spf13/pflag"

	"github.com/llxrt/llxrt/config"
	"github.com/llxrt/llxrt/grammar"
	"github.com/llxrt/llxrt/internal/logging"
	"github.com/llxrt/llxrt/tables"
)

func main() {
	compressed := pflag.BoolP("compressed", "z", false, "table file is zstd-compressed")
	addr := pflag.StringP("addr", "a", ":8080", "listen address")
	pflag.Parse()

	if pflag.NArg() != 1 {
		os.Stderr.WriteString("usage: llxserve [-z] [-a addr] <table-file>\n")
		os.Exit(2)
	}

	cfg := config.Default()
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

	srv := &server{g: g, logger: logger}
	logger.Infow("listening", "addr", *addr)
	if err := http.ListenAndServe(*addr, srv.routes()); err != nil {
		logger.Fatalw("serving", "error", err)
	}
}

type server struct {
	g      *grammar.Grammar
	logger interface {
		Errorw(msg string, kv ...any)
	}
}

func (s *server) routes() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/terminals", s.handleTerminals).Methods(http.MethodGet)
	r.HandleFunc("/nonterminals", s.handleNonTerminals).Methods(http.MethodGet)
	r.HandleFunc("/nonterminals/{name}", s.handleNonTerminal).Methods(http.MethodGet)
	return r
}

func (s *server) handleTerminals(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, s.g.TerminalNames)
}

func (s *server) handleNonTerminals(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, s.g.NonTerminalNames)
}

type nonTerminalDetail struct {
	Name        string   `json:"name"`
	Index       int      `json:"index"`
	Productions []string `json:"productions"`
	LookaheadK  int      `json:"lookaheadK"`
}

func (s *server) handleNonTerminal(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	idx, ok := s.g.NonTerminalByName(name)
	if !ok {
		http.Error(w, "no such non-terminal", http.StatusNotFound)
		return
	}

	detail := nonTerminalDetail{
		Name:       name,
		Index:      idx,
		LookaheadK: s.g.LookaheadAutomata[idx].K,
	}
	for i, prod := range s.g.Productions {
		if prod.LHS == idx {
			detail.Productions = append(detail.Productions, s.describeProduction(i, prod))
		}
	}
	s.writeJSON(w, detail)
}

func (s *server) describeProduction(index int, prod grammar.Production) string {
	desc := ""
	for _, item := range prod.RHS {
		switch item.Kind {
		case grammar.ItemTerminal, grammar.ItemClipped:
			if item.Index >= 0 && item.Index < len(s.g.TerminalNames) {
				desc += s.g.TerminalNames[item.Index] + " "
			}
		case grammar.ItemNonTerminal:
			if item.Index >= 0 && item.Index < len(s.g.NonTerminalNames) {
				desc += s.g.NonTerminalNames[item.Index] + " "
			}
		}
	}
	return desc
}

func (s *server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Errorw("encoding response", "error", err)
	}
}
