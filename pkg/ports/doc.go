/*
Package ports defines the driven ports of the adaptor host.

# Key Interfaces

  - RunStore: Persists completed runs so their final State can be inspected later.
*/
package ports
