package dispatch

import (
	"github.com/iho/trxledger/internal/domain"
	"github.com/iho/trxledger/internal/engine"
)

// Serial is the trivially-ordered, single-threaded topology: spec.md
// §4.5.a. Ingest looks up or creates the client pair and applies the event
// synchronously — total ordering across the whole stream, not just
// per-client.
type Serial struct {
	clients map[domain.ClientID]*clientState
	tel     engine.Telemetry
}

// NewSerial returns a Serial dispatcher reporting through tel.
func NewSerial(tel engine.Telemetry) *Serial {
	if tel == nil {
		tel = engine.NopTelemetry{}
	}
	return &Serial{
		clients: make(map[domain.ClientID]*clientState),
		tel:     tel,
	}
}

func (s *Serial) Ingest(ev domain.Event) error {
	cs, ok := s.clients[ev.Client]
	if !ok {
		cs = newClientState(ev.Client)
		s.clients[ev.Client] = cs
	}
	return cs.apply(ev, s.tel)
}

func (s *Serial) Finalize() ([]domain.Snapshot, error) {
	snaps := make([]domain.Snapshot, 0, len(s.clients))
	for _, cs := range s.clients {
		snap, err := cs.account.Snapshot()
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, snap)
	}
	sortSnapshots(snaps)
	return snaps, nil
}
