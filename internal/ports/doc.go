// Package ports defines interfaces between layers in the hexagonal architecture.
// The service port is implemented by the application layer and called by handlers.
// The store ports are implemented by the storage adapters (sqlite, session)
// and called by the application layer.
package ports
