/*
Package domain contains the core models of the adaptor.

It defines the State threaded through an operation sequence and the
Operation signature itself. This package is kept free of I/O so every other
layer (common helpers, HTTP client, stores) can depend on it.

# Key Entities

  - State: Configuration, References (most recent first), Data and the last Response.
  - Configuration: Base URL and credentials of the target system. Read-only.
  - Operation: A function from State to the next State.
  - Callback: Optional post-processing applied by operation builders.
  - Run: A completed sequence and its final State, as kept by run stores.
*/
package domain
