/*
Package ports defines the driven ports (interfaces) of a blockscript workspace.

These interfaces decouple the workspace from storage backends and catalog
sources.

# Key Interfaces

  - ScriptStore: persists script documents together with a statistics snapshot.
  - CatalogLoader: produces the instruction catalog scripts are resolved against.
  - DistributedLocker: serializes concurrent saves of the same script across processes.
*/
package ports
