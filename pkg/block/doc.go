/*
Package block contains the block composition engine: the tree of typed blocks a
non-programmer assembles into an event-driven script.

A script is a Script root holding one trigger Slot and one Spine. Slots hold at
most one Node and are guarded by a Fitter. Spines are ordered lists of Pegs,
each owning one Slot, and form program bodies.

Every part of the tree answers the same four read-only questions through
structurally identical recursive traversals:

  - Code: the target scripting-language text.
  - NaturalLanguage: an English paraphrase.
  - Statistics: counters per block kind plus per-instruction histograms.
  - IsComplete: whether every filled slot recursively holds a complete block.

Changes propagate upward: every container re-emits the change notifications of
the blocks it holds, so a single OnChanged subscription on the Script observes
edits anywhere in the tree.

The package is pure and has no dependencies beyond the standard library. It is
not safe for concurrent use; callers finish one edit before starting a traversal.
*/
package block
