package dispatch

import (
	"sync"
	"sync/atomic"

	"github.com/iho/trxledger/internal/domain"
	"github.com/iho/trxledger/internal/engine"
)

// defaultActorInboxSize bounds each client actor's inbox, the backpressure
// mechanism for this topology (spec.md §5).
const defaultActorInboxSize = 64

// Actor spawns one long-lived goroutine per client on first reference, each
// with its own inbox, draining it serially (spec.md §4.5.c). Only the
// dispatcher's own goroutine (the one calling Ingest) ever touches the
// client map — spawning an actor is the dispatcher's control path, never
// the actors' — so no lock is needed around it.
type Actor struct {
	clients map[domain.ClientID]*actorHandle
	tel     engine.Telemetry
	fatal   atomic.Pointer[error]
	wg      sync.WaitGroup
}

type actorHandle struct {
	inbox chan domain.Event
	state *clientState
	err   error
}

// NewActor returns an Actor dispatcher reporting through tel.
func NewActor(tel engine.Telemetry) *Actor {
	if tel == nil {
		tel = engine.NopTelemetry{}
	}
	return &Actor{
		clients: make(map[domain.ClientID]*actorHandle),
		tel:     tel,
	}
}

func (a *Actor) Ingest(ev domain.Event) error {
	if err := a.fatal.Load(); err != nil {
		return *err
	}

	h, ok := a.clients[ev.Client]
	if !ok {
		h = &actorHandle{
			inbox: make(chan domain.Event, defaultActorInboxSize),
			state: newClientState(ev.Client),
		}
		a.clients[ev.Client] = h
		a.wg.Add(1)
		go a.run(h)
	}
	h.inbox <- ev
	return nil
}

func (a *Actor) run(h *actorHandle) {
	defer a.wg.Done()
	for ev := range h.inbox {
		if a.fatal.Load() != nil {
			continue
		}
		if err := h.state.apply(ev, a.tel); err != nil {
			h.err = err
			a.fatal.CompareAndSwap(nil, &err)
		}
	}
}

func (a *Actor) Finalize() ([]domain.Snapshot, error) {
	for _, h := range a.clients {
		close(h.inbox)
	}
	a.wg.Wait()

	for _, h := range a.clients {
		if h.err != nil {
			return nil, h.err
		}
	}

	snaps := make([]domain.Snapshot, 0, len(a.clients))
	for _, h := range a.clients {
		snap, err := h.state.account.Snapshot()
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, snap)
	}
	sortSnapshots(snaps)
	return snaps, nil
}
