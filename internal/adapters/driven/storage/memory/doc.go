// Package memory provides in-memory implementations of driven ports.
// They back unit tests.
package memory
