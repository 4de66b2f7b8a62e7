// Package memory provides in-memory implementations of the driven ports.
// State lives only for the life of the process.
package memory
