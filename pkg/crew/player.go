package crew

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Player is an external observer of a game. The engine only ever pushes
// events to it and asks for a display name; the transport-specific
// implementation lives outside this package and is injected at join time.
type Player interface {
	// Notify pushes a game event to the player
	Notify(event Event) error

	// Name returns the player's display name
	Name() string
}

// notifyAll delivers the event to every player concurrently and waits for
// all deliveries to finish. A failed delivery never corrupts game state;
// it is logged and the batch continues.
func notifyAll(log logrus.FieldLogger, players []Player, event Event) {
	var wg sync.WaitGroup
	for _, player := range players {
		wg.Add(1)
		go func(p Player) {
			defer wg.Done()
			if err := p.Notify(event); err != nil {
				log.WithError(err).
					WithField("player", p.Name()).
					WithField("event", event.Kind()).
					Error("could not notify player")
			}
		}(player)
	}

	wg.Wait()
}
