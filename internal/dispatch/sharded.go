package dispatch

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/iho/trxledger/internal/domain"
	"github.com/iho/trxledger/internal/engine"
)

// defaultShardInboxSize bounds each worker's channel — the only flow
// control on ingest (spec.md §5, "Ingest backpressure is the only
// flow-control mechanism").
const defaultShardInboxSize = 256

// Sharded fans events out to N worker goroutines by a stable hash of the
// client id (client mod N), so every event for a given client lands on the
// same worker and per-client ordering is preserved even though distinct
// clients run concurrently (spec.md §4.5.b).
type Sharded struct {
	workers []*shardWorker
	n       int
	started bool
	fatal   atomic.Pointer[error]
}

type shardWorker struct {
	inbox   chan domain.Event
	clients map[domain.ClientID]*clientState
	tel     engine.Telemetry
	fatal   *atomic.Pointer[error]
	done    chan struct{}
}

// NewSharded returns a Sharded dispatcher with n workers. n <= 0 selects
// runtime.GOMAXPROCS(0), the detected hardware parallelism spec.md §4.5.b
// asks for.
func NewSharded(n int, tel engine.Telemetry) *Sharded {
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	if n < 1 {
		n = 1
	}
	if tel == nil {
		tel = engine.NopTelemetry{}
	}

	s := &Sharded{n: n}
	s.workers = make([]*shardWorker, n)
	for i := 0; i < n; i++ {
		s.workers[i] = &shardWorker{
			inbox:   make(chan domain.Event, defaultShardInboxSize),
			clients: make(map[domain.ClientID]*clientState),
			tel:     tel,
			fatal:   &s.fatal,
			done:    make(chan struct{}),
		}
	}
	return s
}

func (s *Sharded) start() {
	if s.started {
		return
	}
	s.started = true
	for _, w := range s.workers {
		go w.run()
	}
}

func (w *shardWorker) run() {
	defer close(w.done)
	for ev := range w.inbox {
		if w.fatal.Load() != nil {
			// A sibling worker hit an invariant violation; keep draining
			// so Ingest never blocks on a full channel, but stop mutating
			// state — the process is going to abort regardless.
			continue
		}
		cs, ok := w.clients[ev.Client]
		if !ok {
			cs = newClientState(ev.Client)
			w.clients[ev.Client] = cs
		}
		if err := cs.apply(ev, w.tel); err != nil {
			w.fatal.CompareAndSwap(nil, &err)
		}
	}
}

func (s *Sharded) shardFor(client domain.ClientID) *shardWorker {
	return s.workers[int(client)%s.n]
}

func (s *Sharded) Ingest(ev domain.Event) error {
	s.start()
	if err := s.fatal.Load(); err != nil {
		return *err
	}
	s.shardFor(ev.Client).inbox <- ev
	return nil
}

func (s *Sharded) Finalize() ([]domain.Snapshot, error) {
	s.start()
	for _, w := range s.workers {
		close(w.inbox)
	}
	for _, w := range s.workers {
		<-w.done
	}

	if err := s.fatal.Load(); err != nil {
		return nil, *err
	}

	var (
		mu    sync.Mutex
		snaps []domain.Snapshot
		first error
	)
	var wg sync.WaitGroup
	for _, w := range s.workers {
		w := w
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := make([]domain.Snapshot, 0, len(w.clients))
			for _, cs := range w.clients {
				snap, err := cs.account.Snapshot()
				if err != nil {
					mu.Lock()
					if first == nil {
						first = err
					}
					mu.Unlock()
					return
				}
				local = append(local, snap)
			}
			mu.Lock()
			snaps = append(snaps, local...)
			mu.Unlock()
		}()
	}
	wg.Wait()
	if first != nil {
		return nil, first
	}

	sortSnapshots(snaps)
	return snaps, nil
}
