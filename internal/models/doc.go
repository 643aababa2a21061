// Package models defines the domain model for the melodex music-library client.
//
// All entities are owned by the remote server; the client holds read-through
// copies that are re-validated on every read. The types here mirror the wire
// DTOs closely so the API layer can decode straight into them.
package models
