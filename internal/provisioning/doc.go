// Package provisioning implements the home directory provisioning core.
//
// # Core Types
//
// ProvisionRequest describes the directory to provision: base mount path,
// optional subdirectory, owner identity, and permission mode.
// Context carries the request, accumulated state, and observer through the
// phases. Phase defines a provisioning step with Name() and Provision()
// methods; RunPhases executes them sequentially.
//
// # Phases
//
//   - validation — pre-flight request validation, no filesystem access
//   - resolve — target path resolution and creation-frontier discovery
//   - create — segment walk, directory creation, ownership application
//   - verify — final-state check of the leaf directory
//
// The whole pass is idempotent: re-running with the same request converges
// to the same filesystem state, and a concurrent run against the same tree
// is tolerated (creation treats "already exists" as success).
package provisioning
