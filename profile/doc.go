// Package profile provides optional runtime profiling for the brace
// interpreter.
//
// This package integrates [github.com/pkg/profile]. Profiling must be enabled
// at build time with the "pprof" build tag; otherwise every operation is a
// no-op.
//
//	go build -tags pprof -o brace .
//
// # Modes
//
// When built with the pprof tag, the following modes are supported:
//
//   - allocs:    memory allocation profiling (all allocations)
//   - block:     block (synchronization) profiling
//   - clock:     wall-clock profiling
//   - cpu:       CPU profiling
//   - goroutine: goroutine profiling
//   - heap:      heap profiling (live allocations)
//   - mem:       general memory profiling
//   - mutex:     mutex contention profiling
//   - thread:    thread creation profiling
//   - trace:     execution trace
//
// Use [Modes] to retrieve the list programmatically.
//
// # Command-Line Usage
//
//	brace --pprof-mode cpu run program.brc
//	brace --pprof-mode heap --pprof-dir ./profiles run program.brc
//
// The default output directory is the pprof folder of the cache directory,
// for example $XDG_CACHE_HOME/brace/pprof. Analyze the result with
//
//	go tool pprof -http=: ./brace cpu.pprof
//
// Builds with the pprof tag also register the [net/http/pprof] handlers.
package profile
