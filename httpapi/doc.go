// Package httpapi exposes the classic-match engine and community stores
// over HTTP. Every operation has its own request and response type; errors
// from the engine's taxonomy map to stable JSON status shapes.
//
// # Architecture boundaries
//
// Handlers translate between the wire and the engine. They never touch
// gorm directly and never interpret cookie contents themselves; session
// semantics live in the engine.
package httpapi
