package crew

import (
	"sync"
)

// mockPlayer records every event it is notified of
type mockPlayer struct {
	mu      sync.Mutex
	name    string
	err     error
	notices []Event
}

func newMockPlayer(name string) *mockPlayer {
	return &mockPlayer{name: name}
}

func (p *mockPlayer) Notify(event Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.notices = append(p.notices, event)
	return p.err
}

func (p *mockPlayer) Name() string {
	return p.name
}

func (p *mockPlayer) lastNotice() Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.notices) == 0 {
		return nil
	}

	return p.notices[len(p.notices)-1]
}

func (p *mockPlayer) noticesOfKind(kind string) []Event {
	p.mu.Lock()
	defer p.mu.Unlock()

	var out []Event
	for _, e := range p.notices {
		if e.Kind() == kind {
			out = append(out, e)
		}
	}

	return out
}
