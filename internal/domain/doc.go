// Package domain contains shared domain types used across entity sub-packages.
// Entity-specific types live in sub-packages (domain/list, domain/todo).
// This root package holds sentinel errors, validation types, and the
// completion-aware ordering helper shared by both entities.
package domain
