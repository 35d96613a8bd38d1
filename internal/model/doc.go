package model

// Package model defines the domain data structures shared across the service:
// normalized media metadata, download tasks, and status enums. Structures are
// designed for direct JSON serialization at the HTTP boundary and explicit
// state transitions.
