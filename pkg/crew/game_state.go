package crew

import (
	"crew-server/pkg/deck"
)

// GameState is a snapshot of the game that is safe for all players to see
type GameState struct {
	GameID      string        `json:"gameId"`
	State       string        `json:"state"`
	Players     []string      `json:"players"`
	Commander   int           `json:"commander"`
	NextPlayer  int           `json:"nextPlayer"`
	Trick       int           `json:"trick"`
	HandWinners []int         `json:"handWinners"`
	PlayedCards [][]deck.Card `json:"playedCards"`
	MissionID   int           `json:"missionId"`
	Mission     string        `json:"mission"`
	History     []RoundResult `json:"history"`
}

// PlayerState is the game state plus the player's private hand
type PlayerState struct {
	*GameState
	Hand       deck.Hand `json:"hand"`
	ValidMoves deck.Hand `json:"validMoves"`
}

func (g *Game) gameState() *GameState {
	names := make([]string, len(g.players))
	for i, p := range g.players {
		names[i] = p.Name()
	}

	played := make([][]deck.Card, len(g.playedCards))
	for i, cards := range g.playedCards {
		played[i] = append([]deck.Card{}, cards...)
	}

	return &GameState{
		GameID:      g.GameID(),
		State:       g.state.String(),
		Players:     names,
		Commander:   g.commander,
		NextPlayer:  g.nextPlayer,
		Trick:       len(g.handWinners),
		HandWinners: append([]int{}, g.handWinners...),
		PlayedCards: played,
		MissionID:   g.mission.ID(),
		Mission:     g.mission.Description(),
		History:     append([]RoundResult{}, g.history...),
	}
}

// GameState returns a public snapshot of the game
func (g *Game) GameState() *GameState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.gameState()
}

// PlayerState returns the snapshot plus the player's own hand and, when it
// is their turn, their legal moves
func (g *Game) PlayerState(player Player) (*PlayerState, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	seat := g.seatOf(player)
	if seat < 0 {
		return nil, ErrPlayerNotInGame
	}

	state := &PlayerState{GameState: g.gameState()}
	if seat < len(g.hands) {
		state.Hand = g.hands[seat].Clone()
	}

	if g.state == StateTurn && seat == g.nextPlayer {
		state.ValidMoves = g.validMoves(seat)
	}

	return state, nil
}
