package crew

import (
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"crew-server/pkg/deck"

	"github.com/sirupsen/logrus"
)

// default player limits; The Crew plays 2–5
const (
	defaultMinPlayers = 2
	defaultMaxPlayers = 5
)

// Options configures a new game
type Options struct {
	// Seed makes dealing deterministic. 0 means draw a random seed.
	Seed int64

	// GameID overrides the random 40-bit game id. 0 means draw one.
	GameID int64

	// MinPlayers and MaxPlayers bound the number of seats. 0 means default.
	MinPlayers int
	MaxPlayers int
}

// RoundResult records the outcome of a finished round
type RoundResult struct {
	MissionID int  `json:"missionId"`
	Won       bool `json:"won"`
}

// Game is a single cooperative trick-taking game.
// All exported methods are safe for concurrent use; at most one
// state-changing call is in flight at a time.
type Game struct {
	mu      sync.Mutex
	id      int64
	options Options

	// players in order of play, fixed after the first Begin()
	players []Player

	// sorted remaining cards for each seat
	hands []deck.Hand

	mission Mission

	// mission history across rounds
	history []RoundResult

	state State

	// seat holding the 4🚀 after the deal; leads the first trick
	commander int

	// seat expected to play next
	nextPlayer int

	// playedCards[seat][k] is the card the seat played into trick k
	playedCards [][]deck.Card

	// handWinners[k] is the seat that won trick k
	handWinners []int

	random *rand.Rand
	logger logrus.FieldLogger
}

// NewGame returns a new game in the waiting state with the placeholder
// mission. Players join, then Begin() starts the round.
func NewGame(logger logrus.FieldLogger, opts Options) *Game {
	if opts.GameID == 0 {
		opts.GameID = RandomGameID()
	}

	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}

	if opts.MinPlayers == 0 {
		opts.MinPlayers = defaultMinPlayers
	}

	if opts.MaxPlayers == 0 {
		opts.MaxPlayers = defaultMaxPlayers
	}

	return &Game{
		id:      opts.GameID,
		options: opts,
		mission: ImpossibleMission{},
		state:   StateWaiting,
		random:  rand.New(rand.NewSource(opts.Seed)), // nolint:gosec
		logger:  logger.WithField("game", EncodeGameID(opts.GameID)),
	}
}

// ID returns the numeric 40-bit game id
func (g *Game) ID() int64 {
	return g.id
}

// GameID returns the human-readable game id
func (g *Game) GameID() string {
	return EncodeGameID(g.id)
}

// State returns the current state
func (g *Game) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Mission returns the current mission
func (g *Game) Mission() Mission {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.mission
}

// History returns the results of finished rounds
func (g *Game) History() []RoundResult {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]RoundResult{}, g.history...)
}

// Players returns the seated players in play order
func (g *Game) Players() []Player {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]Player{}, g.players...)
}

// Join seats a new player. Legal only while the game is waiting.
func (g *Game) Join(player Player) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.requireState("join", StateWaiting); err != nil {
		return err
	}

	if len(g.players) >= g.options.MaxPlayers {
		return ErrGameFull
	}

	others := append([]Player{}, g.players...)
	g.players = append(g.players, player)
	g.playedCards = append(g.playedCards, nil)

	notifyAll(g.logger, others, PlayerJoined{Player: player.Name()})
	if err := player.Notify(JoinedGame{GameID: g.GameID()}); err != nil {
		g.logger.WithError(err).WithField("player", player.Name()).Error("could not notify player")
	}

	g.logger.WithField("player", player.Name()).Info("player joined")
	return nil
}

// Begin starts the round: shuffles seating (first round only), deals, runs
// the mission bid, and starts the first turn with the commander leading.
func (g *Game) Begin() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.requireState("begin", StateWaiting); err != nil {
		return err
	}

	n := len(g.players)
	if n < g.options.MinPlayers || n > g.options.MaxPlayers {
		return PlayerCountError{Min: g.options.MinPlayers, Max: g.options.MaxPlayers, Got: n}
	}

	// seating order is shuffled once, before the first round
	if len(g.history) == 0 {
		g.random.Shuffle(n, func(i, j int) {
			g.players[i], g.players[j] = g.players[j], g.players[i]
		})
	}

	if err := g.deal(); err != nil {
		return err
	}

	if err := g.assignTasks(); err != nil {
		return err
	}

	g.nextPlayer = g.commander

	if err := g.communicate(); err != nil {
		return err
	}

	return g.startTurn()
}

// deal builds a fresh shuffled deck, partitions it into near-equal sorted
// hands, and finds the commander (the seat holding the 4🚀)
func (g *Game) deal() error {
	if err := g.transition("deal", StateDeal); err != nil {
		return err
	}

	d := deck.New()
	d.SetSeed(g.random.Int63())
	d.Shuffle()

	g.hands = dealHands(d.Cards, len(g.players))
	g.handWinners = nil
	for i := range g.playedCards {
		g.playedCards[i] = nil
	}

	commanderCard := deck.Card{Rank: 4, Suit: deck.Rocket}
	for i, hand := range g.hands {
		sort.Sort(hand)

		if hand.HasCard(commanderCard) {
			g.commander = i
		}
	}

	g.logger.WithField("commander", g.players[g.commander].Name()).Debug("cards dealt")

	var wg sync.WaitGroup
	for i, player := range g.players {
		wg.Add(1)
		go func(p Player, hand deck.Hand) {
			defer wg.Done()
			if err := p.Notify(CardsDealt{Cards: hand}); err != nil {
				g.logger.WithError(err).WithField("player", p.Name()).Error("could not notify player")
			}
		}(player, g.hands[i].Clone())
	}
	wg.Wait()

	return nil
}

// dealHands partitions the cards into n contiguous hands whose sizes differ
// by at most one (ceil-division boundaries)
func dealHands(cards []deck.Card, n int) []deck.Hand {
	total := len(cards)
	hands := make([]deck.Hand, n)
	for i := 0; i < n; i++ {
		lo := ceilDiv(total*i, n)
		hi := ceilDiv(total*(i+1), n)
		hands[i] = append(deck.Hand{}, cards[lo:hi]...)
	}

	return hands
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

func (g *Game) assignTasks() error {
	if err := g.transition("assign tasks", StateBid); err != nil {
		return err
	}

	return g.mission.Bid(g.players, g.commander)
}

func (g *Game) communicate() error {
	if err := g.transition("communicate", StateCommunicate); err != nil {
		return err
	}

	remaining := make([]deck.Hand, len(g.hands))
	for i, hand := range g.hands {
		remaining[i] = hand.Clone()
	}

	return g.mission.Communicate(g.players, remaining, len(g.handWinners))
}

// startTurn notifies the next player it is their turn
func (g *Game) startTurn() error {
	if err := g.transition("start turn", StateTurn); err != nil {
		return err
	}

	valid := g.validMoves(g.nextPlayer)
	if err := g.players[g.nextPlayer].Notify(YourTurn{ValidMoves: valid}); err != nil {
		g.logger.WithError(err).
			WithField("player", g.players[g.nextPlayer].Name()).
			Error("could not notify player")
	}

	return nil
}

// trickIndex is the index of the trick the next player will play into
func (g *Game) trickIndex() int {
	return len(g.playedCards[g.nextPlayer])
}

// leadSeat is the seat that led (or will lead) the given trick
func (g *Game) leadSeat(trick int) int {
	if trick == 0 {
		return g.commander
	}

	return g.handWinners[trick-1]
}

// trickStarted reports whether anyone has played into the given trick
func (g *Game) trickStarted(trick int) bool {
	return trick < len(g.playedCards[g.leadSeat(trick)])
}

// trickFinished reports whether every seat has played into the given trick
func (g *Game) trickFinished(trick int) bool {
	return trick < len(g.handWinners)
}

// leadSuit is the suit of the card played by whichever seat played first
// into the given trick
func (g *Game) leadSuit(trick int) deck.Suit {
	return g.playedCards[g.leadSeat(trick)][trick].Suit
}

// validMoves computes the legal move set for a seat: follow the lead suit if
// the trick is open and the seat holds any, otherwise the full hand
func (g *Game) validMoves(seat int) deck.Hand {
	trick := g.trickIndex()
	if g.trickStarted(trick) {
		if follow := g.hands[seat].FollowingSuit(g.leadSuit(trick)); len(follow) > 0 {
			return follow
		}
	}

	return g.hands[seat].Clone()
}

// Play accepts a card from the player whose turn it is. On trick completion
// the winner is computed, leads the next trick, and the mission status is
// evaluated; the round ends on win, lose, or deck exhaustion.
func (g *Game) Play(player Player, card deck.Card) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.requireState("play", StateTurn); err != nil {
		return err
	}

	seat := g.seatOf(player)
	if seat < 0 {
		return ErrPlayerNotInGame
	}

	if seat != g.nextPlayer {
		return &OutOfTurnError{Expected: g.players[g.nextPlayer].Name()}
	}

	if !g.validMoves(seat).HasCard(card) {
		return ErrIllegalMove
	}

	trick := g.trickIndex()
	g.acceptPlay(seat, trick, card)

	others := make([]Player, 0, len(g.players)-1)
	for i, p := range g.players {
		if i != seat {
			others = append(others, p)
		}
	}
	notifyAll(g.logger, others, CardPlayed{Card: card, Player: player.Name()})

	if g.trickFinished(trick) {
		winner := g.handWinners[trick]
		notifyAll(g.logger, g.players, HandWon{Player: g.players[winner].Name()})

		switch g.mission.Status(g.playedCards, g.handWinners) {
		case StatusWin:
			return g.endRound(true)
		case StatusLose:
			return g.endRound(false)
		}

		// not enough cards left for another full trick
		n := len(g.players)
		if deck.Size-len(g.handWinners)*n < n {
			return g.endRound(false)
		}
	}

	return g.startTurn()
}

// acceptPlay records the card and advances the turn pointer. If the play
// completes the trick, the winner is computed and leads the next trick.
func (g *Game) acceptPlay(seat, trick int, card deck.Card) {
	n := len(g.players)
	successor := (seat + 1) % n

	// the trick completes if the next seat has already played into it
	completes := trick < len(g.playedCards[successor])

	g.playedCards[seat] = append(g.playedCards[seat], card)
	g.hands[seat].Discard(card)

	if !completes {
		g.nextPlayer = successor
		return
	}

	cards := make([]deck.Card, n)
	for p := 0; p < n; p++ {
		cards[p] = g.playedCards[p][trick]
	}

	winner := deck.Winner(cards, g.leadSuit(trick))
	g.handWinners = append(g.handWinners, winner)
	g.nextPlayer = winner
}

// endRound finishes the round, records the result, and notifies everyone
func (g *Game) endRound(won bool) error {
	if err := g.transition("end round", StateEnd); err != nil {
		return err
	}

	g.history = append(g.history, RoundResult{MissionID: g.mission.ID(), Won: won})
	g.logger.WithField("won", won).Info("round over")

	notifyAll(g.logger, g.players, GameOver{Won: won})
	return nil
}

// SetMission replaces the mission. Legal only while the game is waiting.
func (g *Game) SetMission(mission Mission) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.requireState("set mission", StateWaiting); err != nil {
		return err
	}

	g.mission = mission
	notifyAll(g.logger, g.players, MissionChanged{
		MissionID:   mission.ID(),
		Description: mission.Description(),
	})

	return nil
}

// SetMissionID replaces the mission by catalog id
func (g *Game) SetMissionID(id int) error {
	mission, err := CreateMission(id)
	if err != nil {
		return err
	}

	return g.SetMission(mission)
}

// seatOf returns the seat index for the player, or -1
func (g *Game) seatOf(player Player) int {
	for i, p := range g.players {
		if p == player {
			return i
		}
	}

	return -1
}

// Description returns a human-readable description of the game
func (g *Game) Description() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	var sb strings.Builder
	sb.WriteString("Game ")
	sb.WriteString(g.GameID())
	sb.WriteString(" with ")

	names := make([]string, len(g.players))
	for i, p := range g.players {
		names[i] = p.Name()
	}

	switch len(names) {
	case 0:
		sb.WriteString("no players")
	case 1:
		sb.WriteString(names[0])
	default:
		sb.WriteString(strings.Join(names[:len(names)-1], ", "))
		sb.WriteString(" and ")
		sb.WriteString(names[len(names)-1])
	}

	return sb.String()
}
