/*
Package blockscript is a block composition engine for building small event
driven scripts out of typed, nestable blocks.

A script is a tree: a trigger event slot and a spine of statement pegs.
Blocks (literals, statements, boolean operators and conditional controls)
expose typed slots, and a slot only accepts a block its fitter allows. The
same tree renders three ways: C-like source code, a natural language
paraphrase and an XML document that round-trips exactly.

# Packages

  - pkg/block: the node model, slots, spines, statistics and change events.
  - pkg/catalog: instruction catalogs (statement, event and object behaviours) loaded from YAML.
  - pkg/dsl: a fluent builder for scripts in Go code.
  - pkg/xmlcodec: the XML document format.
  - pkg/ports and pkg/adapters: script stores (memory, file, sqlite, redis) and catalog loaders.

# Usage

The Workspace binds a catalog to a store:

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/blockscript"
		"github.com/aretw0/blockscript/pkg/catalog"
		"github.com/aretw0/blockscript/pkg/dsl"
	)

	func main() {
		cat := catalog.Default()
		ws, err := blockscript.New(cat)
		if err != nil {
			log.Fatal(err)
		}

		s := dsl.New(cat).
			On("OnHeartbeat").
			If(dsl.Cond("IsNight"), dsl.Action("Jump")).
			MustBuild()

		code, err := ws.Compile(context.Background(), s)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Print(code)
	}

Incomplete scripts never compile; Compile returns ErrIncompleteScript
instead. Save and Load keep scripts as XML documents with a statistics
snapshot beside them.
*/
package blockscript
