// Package sensor provides the sensor reading model and its persistence.
//
// Readings are insert-only facts: every device report appends a new row,
// with no deduplication or rate limiting, and rows are never mutated or
// deleted. The latest reading per channel is the authoritative current
// value for that channel.
package sensor
