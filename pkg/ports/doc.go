/*
Package ports defines the interfaces between the serology core and its adapters.

# Key Interfaces

  - GraphLoader: produces the decision graph (built-in YAML, file, or code).
  - StatelessEngine: the pure transition set adapters drive (CLI, HTTP, MCP, TUI).
*/
package ports
