// Package components builds the reusable objects of a document.
//
// Each component kind has a [TableBuilder] that turns definition
// declarations into a [Table]: a name is derived for every declaration
// in order, so that collisions are detected deterministically, and the
// bodies are then constructed in parallel through the declarations'
// factories. [Builder] runs the five kind builders concurrently and
// [Tables.Components] assembles the components object of the document.
//
// Parameters and extensions are not emitted under #/components/. Their
// definitions are kept in an [Index] and inlined where they are used.
package components
