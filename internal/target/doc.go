// Package target describes the machine a debugged program was compiled for.
//
// A Target is an architecture, OS and environment (ABI) triple. It is plain
// read-only data: callers build one per resolution request, either from an
// LLVM-style triple string, from the headers of an object file, or from the
// host running dtypes. Nothing in this package caches or owns a Target.
package target
