package room

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"crew-server/pkg/crew"

	"github.com/sirupsen/logrus"
)

// ErrUnknownGame is returned when a game id does not resolve to a live game
var ErrUnknownGame = errors.New("game not found")

// ErrDuplicateGame is returned when an explicit game id is already taken
var ErrDuplicateGame = errors.New("game id already in use")

// Registry holds every live game, keyed by its numeric id
type Registry struct {
	mu     sync.RWMutex
	games  map[int64]*crew.Game
	logger logrus.FieldLogger
}

// NewRegistry returns an empty registry
func NewRegistry(logger logrus.FieldLogger) *Registry {
	return &Registry{
		games:  make(map[int64]*crew.Game),
		logger: logger,
	}
}

// CreateGame creates and registers a new game. When opts.GameID is zero a
// random id is drawn, redrawing on the off chance of a collision.
func (r *Registry) CreateGame(opts crew.Options) (*crew.Game, error) {
	explicit := opts.GameID != 0

	r.mu.Lock()
	defer r.mu.Unlock()

	for {
		game := crew.NewGame(r.logger, opts)
		if _, found := r.games[game.ID()]; found {
			if explicit {
				return nil, ErrDuplicateGame
			}

			continue
		}

		r.games[game.ID()] = game
		r.logger.WithField("game", game.GameID()).Info("game created")
		return game, nil
	}
}

// Get resolves a human-readable game id to a live game
func (r *Registry) Get(id string) (*crew.Game, error) {
	numeric, err := crew.DecodeGameID(id)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	game, found := r.games[numeric]
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrUnknownGame, id)
	}

	return game, nil
}

// Remove drops a game from the registry
func (r *Registry) Remove(game *crew.Game) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.games, game.ID())
}

// Len returns the number of live games
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.games)
}

// List returns a sorted description of every live game
func (r *Registry) List() []string {
	r.mu.RLock()
	games := make([]*crew.Game, 0, len(r.games))
	for _, game := range r.games {
		games = append(games, game)
	}
	r.mu.RUnlock()

	descriptions := make([]string, len(games))
	for i, game := range games {
		descriptions[i] = game.Description()
	}

	sort.Strings(descriptions)
	return descriptions
}
