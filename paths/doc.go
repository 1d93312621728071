// Package paths builds the paths object of a document from routes and
// the markers attached to them.
//
// For every route the markers are ordered by precedence (method, then
// class, then group markers with deeper groups first; ties keep the
// order listed on the route) and each slot of the operation is filled by
// the first marker that provides it:
//
//   - operation metadata: the first operation marker
//   - request body: the first request body marker
//   - responses: one per status code
//   - parameters: one per location and name
//   - security: one requirement per scheme
//   - tags: every name once, in order of appearance
//   - callbacks: one per event
//   - extensions: one per key
//
// References into #/components/ are checked against the component tables
// of the pass; a missing target is an UnresolvedReferenceError.
package paths
