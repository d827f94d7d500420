// Package catalog holds the instruction set a script can be composed from:
// statement, event and object behaviours, looked up by name.
//
// A Catalog implements block.BehaviourResolver, so it is what the XML
// decoder and the DSL use to turn persisted names back into behaviours.
// Catalogs are usually described in YAML:
//
//	statements:
//	  - name: Walk
//	    type: action
//	    code: "Walk({0});"
//	    natural: "walk {0} steps"
//	    components:
//	      - label: walk
//	      - parameter: number
//	      - label: steps
//	events:
//	  - name: OnHeartbeat
//	    display: every few seconds
//	objects:
//	  - id: wolf
//	    display: the wolf
//	    type: Creature
package catalog
