package download

// Package download implements the download task manager: a concurrency-safe
// registry of tasks, each executed by its own goroutine against the external
// engine with progress propagation, advisory cancellation, and a terminal
// state machine.
