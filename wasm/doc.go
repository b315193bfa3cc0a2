// Package wasm implements the process-wide registry of user-defined
// functions expressed as WebAssembly modules. WAT payloads arrive
// base64-encoded, are compiled and instantiated once, and are invoked
// through typed trampolines during predicate evaluation.
package wasm
