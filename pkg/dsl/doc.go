/*
Package dsl provides a fluent Go API for composing block scripts in code.

Every node is described by an Expr and built against a catalog when Build is
called, so the same description can be replayed against different
instruction sets. Attachment goes through the same checked path a user's drag
and drop would take: a statement whose type does not fit its slot is an error,
not a silently malformed tree.

Example usage:

	package main

	import (
		"fmt"

		"github.com/aretw0/blockscript/pkg/catalog"
		"github.com/aretw0/blockscript/pkg/dsl"
	)

	func main() {
		script, err := dsl.New(catalog.Default()).
			On("OnHeartbeat").
			If(dsl.And(dsl.Cond("IsNight"), dsl.Not(dsl.Cond("IsDay"))),
				dsl.Stmt("Say", dsl.String("Awoo")),
			).
			Do("Walk", dsl.Number(3)).
			Build()
		if err != nil {
			panic(err)
		}
		fmt.Print(script.Code())
	}
*/
package dsl
