// Package tables persists grammar.Grammar values: the generator that
// produces them is out of scope, but a runtime that consumes
// generator-produced tables needs to load them from somewhere other than a
// compiled-in Go literal.
package tables

import (
	"encoding/json"

	"github.com/DataDog/zstd"
	"github.com/mohae/deepcopy"

	"github.com/llxrt/llxrt/errors"
	"github.com/llxrt/llxrt/grammar"
)

// Encode marshals a Grammar to JSON.
func Encode(g *grammar.Grammar) ([]byte, error) {
	data, err := json.Marshal(g)
	if err != nil {
		return nil, errors.Format(errors.TableError, "encoding grammar table: %v", err)
	}
	return data, nil
}

// Decode unmarshals a Grammar from JSON.
func Decode(data []byte) (*grammar.Grammar, error) {
	g := &grammar.Grammar{}
	if err := json.Unmarshal(data, g); err != nil {
		return nil, errors.Format(errors.TableError, "decoding grammar table: %v", err)
	}
	return g, nil
}

// SaveCompressed encodes g and compresses it with zstd, for on-disk table
// caching where the JSON encoding of a large generated grammar would
// otherwise be an unnecessarily large artifact to ship or cache.
func SaveCompressed(g *grammar.Grammar) ([]byte, error) {
	data, err := Encode(g)
	if err != nil {
		return nil, err
	}
	compressed, err := zstd.Compress(nil, data)
	if err != nil {
		return nil, errors.Format(errors.TableError, "compressing grammar table: %v", err)
	}
	return compressed, nil
}

// LoadCompressed reverses SaveCompressed.
func LoadCompressed(compressed []byte) (*grammar.Grammar, error) {
	data, err := zstd.Decompress(nil, compressed)
	if err != nil {
		return nil, errors.Format(errors.TableError, "decompressing grammar table: %v", err)
	}
	return Decode(data)
}

// Clone deep-copies a Grammar so a test can mutate its own copy of a shared
// fixture table without corrupting other tests that reference the same
// pointer.
func Clone(g *grammar.Grammar) *grammar.Grammar {
	return deepcopy.Copy(g).(*grammar.Grammar)
}
