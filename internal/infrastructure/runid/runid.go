// Package runid mints a correlation ID for a single trx invocation, so every
// log line emitted during a run can be tied back to it. Metrics do not carry
// it.
package runid

import (
	"github.com/oklog/ulid/v2"
)

// New returns a fresh ULID string. Unlike the teacher's id_generator.go,
// nothing here identifies a domain entity — it identifies the process run
// itself, once, at startup.
func New() string {
	return ulid.Make().String()
}
