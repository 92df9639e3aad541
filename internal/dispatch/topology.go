package dispatch

import (
	"fmt"

	"github.com/iho/trxledger/internal/engine"
)

// Topology names the three interchangeable execution shapes spec.md §4.5
// requires. New values should never be added without a corresponding case
// in New below — the switch has no default fallthrough.
type Topology string

const (
	TopologySerial  Topology = "serial"
	TopologySharded Topology = "sharded"
	TopologyActor   Topology = "actor"
)

// Topologies lists every supported value, in the order the CLI's
// `trx topologies` subcommand prints them.
var Topologies = []Topology{TopologySerial, TopologySharded, TopologyActor}

// New builds the Dispatcher for the named topology. workers is only
// consulted by TopologySharded; <= 0 defers to runtime.GOMAXPROCS(0).
func New(t Topology, workers int, tel engine.Telemetry) (Dispatcher, error) {
	switch t {
	case TopologySerial:
		return NewSerial(tel), nil
	case TopologySharded:
		return NewSharded(workers, tel), nil
	case TopologyActor:
		return NewActor(tel), nil
	default:
		return nil, fmt.Errorf("dispatch: unknown topology %q", t)
	}
}
