package crew

import (
	"fmt"

	"crew-server/pkg/deck"
)

// Event is a typed notification pushed to players. The transport layer
// decides how to render it; String() provides a plain-text fallback.
type Event interface {
	// Kind identifies the event type on the wire
	Kind() string
	fmt.Stringer
}

// JoinedGame notifies a player that they joined a game
type JoinedGame struct {
	GameID string `json:"gameId"`
}

// Kind returns "joinedGame"
func (e JoinedGame) Kind() string { return "joinedGame" }

func (e JoinedGame) String() string { return fmt.Sprintf("you joined game %s", e.GameID) }

// PlayerJoined notifies existing players that a new player joined
type PlayerJoined struct {
	Player string `json:"player"`
}

// Kind returns "playerJoined"
func (e PlayerJoined) Kind() string { return "playerJoined" }

func (e PlayerJoined) String() string { return fmt.Sprintf("%s joined the game", e.Player) }

// CardsDealt carries a player's freshly dealt hand
type CardsDealt struct {
	Cards deck.Hand `json:"cards"`
}

// Kind returns "cardsDealt"
func (e CardsDealt) Kind() string { return "cardsDealt" }

func (e CardsDealt) String() string { return fmt.Sprintf("you were dealt %s", e.Cards) }

// MissionChanged notifies players the game's mission was replaced
type MissionChanged struct {
	MissionID   int    `json:"missionId"`
	Description string `json:"description"`
}

// Kind returns "missionChanged"
func (e MissionChanged) Kind() string { return "missionChanged" }

func (e MissionChanged) String() string {
	return fmt.Sprintf("mission %d: %s", e.MissionID, e.Description)
}

// TasksAssigned notifies players which task cards a player must win
type TasksAssigned struct {
	Tasks  deck.Hand `json:"tasks"`
	Player string    `json:"player"`
}

// Kind returns "tasksAssigned"
func (e TasksAssigned) Kind() string { return "tasksAssigned" }

func (e TasksAssigned) String() string {
	return fmt.Sprintf("%s was assigned %s", e.Player, e.Tasks)
}

// YourTurn notifies a player it is their turn, along with their legal moves
type YourTurn struct {
	ValidMoves deck.Hand `json:"validMoves"`
}

// Kind returns "yourTurn"
func (e YourTurn) Kind() string { return "yourTurn" }

func (e YourTurn) String() string { return fmt.Sprintf("your turn; you may play %s", e.ValidMoves) }

// CardPlayed notifies the other players that a card was played
type CardPlayed struct {
	Card   deck.Card `json:"card"`
	Player string    `json:"player"`
}

// Kind returns "cardPlayed"
func (e CardPlayed) Kind() string { return "cardPlayed" }

func (e CardPlayed) String() string { return fmt.Sprintf("%s played %s", e.Player, e.Card) }

// HandWon notifies all players who won the completed trick
type HandWon struct {
	Player string `json:"player"`
}

// Kind returns "handWon"
func (e HandWon) Kind() string { return "handWon" }

func (e HandWon) String() string { return fmt.Sprintf("%s won the trick", e.Player) }

// GameOver notifies all players the round ended
type GameOver struct {
	Won bool `json:"won"`
}

// Kind returns "gameOver"
func (e GameOver) Kind() string { return "gameOver" }

func (e GameOver) String() string {
	if e.Won {
		return "mission successful!"
	}

	return "mission failed"
}
