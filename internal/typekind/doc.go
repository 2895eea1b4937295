// Package typekind is the catalog of D primitive type kinds and the pure
// functions that describe them: display format, scalar encoding, canonical
// basic-type identity, bit width and canonical name.
//
// Kinds whose width depends on the target (pointer, slice and the
// extended-precision real family) take a target.Target; every other answer is
// fixed. Nothing here holds state, so all functions are safe for concurrent use.
package typekind
