// Package discovery finds marker declarations.
//
// A [Registry] resolves the scopes for each kind (configured directories,
// the built-in openapi/<kind> directories under the project root, and any
// scopes contributed by sources), scans them in parallel through the
// first [Source] that handles each scope, and caches the result per kind.
//
// Three sources ship with the package:
//
//   - [FileSource] reads YAML or JSON marker files from directories.
//   - [FragmentSource] imports components, tags and root extensions from
//     hand-written OpenAPI documents.
//   - [StaticSource] serves declarations registered in code, such as the
//     registration file written by the scan package.
//
// # Scope resolution
//
// Configured scopes may be glob patterns; only directories match. A
// pattern that matches nothing is logged and skipped, while a literal
// configured directory that does not exist fails with a DiscoveryError.
// Missing default directories are skipped silently.
package discovery
