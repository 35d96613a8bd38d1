package api

// Package api is the HTTP serving boundary: routing, request/response
// serialization, and live progress streaming. All orchestration lives in the
// core packages it delegates to.
