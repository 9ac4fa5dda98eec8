package crew

import (
	"fmt"
	"sort"
	"testing"

	"crew-server/pkg/deck"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

// setupGame builds a game mid-round with hand-picked hands. The commander is
// whichever seat holds the 4🚀, or seat 0.
func setupGame(t *testing.T, hands ...string) (*Game, []*mockPlayer) {
	t.Helper()

	g := NewGame(logrus.StandardLogger(), Options{Seed: 1})
	mocks := make([]*mockPlayer, len(hands))
	for i := range hands {
		mocks[i] = newMockPlayer(fmt.Sprintf("player%d", i))
		if err := g.Join(mocks[i]); err != nil {
			t.Fatalf("join failed: %v", err)
		}
	}

	g.hands = make([]deck.Hand, len(hands))
	for i, s := range hands {
		cards, err := deck.CardsFromString(s)
		if err != nil {
			t.Fatalf("bad hand %q: %v", s, err)
		}

		g.hands[i] = deck.Hand(cards)
		if g.hands[i].HasCard(deck.Card{Rank: 4, Suit: deck.Rocket}) {
			g.commander = i
		}
	}

	g.nextPlayer = g.commander
	g.state = StateTurn
	return g, mocks
}

func totalCards(g *Game) int {
	total := 0
	for _, h := range g.hands {
		total += len(h)
	}
	for _, p := range g.playedCards {
		total += len(p)
	}
	return total
}

func TestGame_Join(t *testing.T) {
	a := assert.New(t)

	g := NewGame(logrus.StandardLogger(), Options{})
	p0 := newMockPlayer("p0")
	a.NoError(g.Join(p0))
	a.Equal(JoinedGame{GameID: g.GameID()}, p0.lastNotice())

	p1 := newMockPlayer("p1")
	a.NoError(g.Join(p1))
	a.Equal(PlayerJoined{Player: "p1"}, p0.lastNotice())
	a.Equal(JoinedGame{GameID: g.GameID()}, p1.lastNotice())

	for i := 2; i < 5; i++ {
		a.NoError(g.Join(newMockPlayer(fmt.Sprintf("p%d", i))))
	}

	a.ErrorIs(g.Join(newMockPlayer("p5")), ErrGameFull)
}

func TestGame_Join_afterBegin(t *testing.T) {
	g, _ := setupGame(t, "1🌀", "2🌀")

	err := g.Join(newMockPlayer("late"))
	assert.EqualError(t, err, "cannot join: game state is turn")
}

func TestGame_Begin(t *testing.T) {
	a := assert.New(t)

	g := NewGame(logrus.StandardLogger(), Options{Seed: 7})
	mocks := make([]*mockPlayer, 4)
	for i := range mocks {
		mocks[i] = newMockPlayer(fmt.Sprintf("p%d", i))
		a.NoError(g.Join(mocks[i]))
	}

	a.NoError(g.Begin())
	a.Equal(StateTurn, g.State())

	// the full deck is partitioned into sorted hands of 10
	seen := make(map[deck.Card]bool)
	for _, hand := range g.hands {
		a.Equal(10, len(hand))
		a.True(sort.IsSorted(hand))
		for _, c := range hand {
			a.False(seen[c])
			seen[c] = true
		}
	}
	a.Equal(deck.Size, len(seen))

	// the commander holds the 4🚀 and leads the first trick
	commanderCard := deck.Card{Rank: 4, Suit: deck.Rocket}
	holders := 0
	for i, hand := range g.hands {
		if hand.HasCard(commanderCard) {
			holders++
			a.Equal(i, g.commander)
		}
	}
	a.Equal(1, holders)
	a.Equal(g.commander, g.nextPlayer)

	// every seat was told their hand, and the commander got their turn
	for i, p := range g.players {
		dealt := p.(*mockPlayer).noticesOfKind("cardsDealt")
		a.Len(dealt, 1)
		a.Equal(g.hands[i].String(), dealt[0].(CardsDealt).Cards.String())
	}

	turns := g.players[g.commander].(*mockPlayer).noticesOfKind("yourTurn")
	a.Len(turns, 1)
	a.Equal(10, len(turns[0].(YourTurn).ValidMoves))

	// a second begin is rejected
	a.EqualError(g.Begin(), "cannot begin: game state is turn")
}

func TestGame_Begin_unevenHands(t *testing.T) {
	a := assert.New(t)

	g := NewGame(logrus.StandardLogger(), Options{Seed: 3})
	for i := 0; i < 3; i++ {
		a.NoError(g.Join(newMockPlayer(fmt.Sprintf("p%d", i))))
	}

	a.NoError(g.Begin())

	sizes := make([]int, 3)
	total := 0
	for i, hand := range g.hands {
		sizes[i] = len(hand)
		total += len(hand)
	}

	a.Equal(deck.Size, total)
	a.Equal([]int{14, 13, 13}, sizes)
}

func TestGame_Begin_playerCount(t *testing.T) {
	g := NewGame(logrus.StandardLogger(), Options{})
	assert.EqualError(t, g.Begin(), "expected 2–5 players, got 0")

	assert.NoError(t, g.Join(newMockPlayer("solo")))
	assert.EqualError(t, g.Begin(), "expected 2–5 players, got 1")
}

func Test_dealHands(t *testing.T) {
	cards := deck.New().Cards
	for n := 1; n <= 6; n++ {
		hands := dealHands(cards, n)
		assert.Len(t, hands, n)

		min, max, total := deck.Size, 0, 0
		seen := make(map[deck.Card]bool)
		for _, hand := range hands {
			if len(hand) < min {
				min = len(hand)
			}
			if len(hand) > max {
				max = len(hand)
			}
			total += len(hand)
			for _, c := range hand {
				seen[c] = true
			}
		}

		assert.Equal(t, deck.Size, total)
		assert.Equal(t, deck.Size, len(seen))
		assert.LessOrEqual(t, max-min, 1)
	}
}

func TestGame_Play_fullTrick(t *testing.T) {
	a := assert.New(t)

	g, mocks := setupGame(t,
		"2🌀 5☘️",
		"7🌀 3🌸",
		"9☘️ 1🚀",
	)
	a.Equal(0, g.commander)

	// only the next player may act
	err := g.Play(mocks[1], deck.Card{Rank: 7, Suit: deck.Blue})
	a.EqualError(err, "out of turn: waiting on player0")
	a.ErrorIs(g.Play(newMockPlayer("stranger"), deck.Card{Rank: 1, Suit: deck.Blue}), ErrPlayerNotInGame)

	// no trick is open, so any card is legal
	a.NoError(g.Play(mocks[0], deck.Card{Rank: 5, Suit: deck.Green}))
	a.Equal(1, g.nextPlayer)
	a.Len(mocks[1].noticesOfKind("cardPlayed"), 1)
	a.Len(mocks[2].noticesOfKind("cardPlayed"), 1)
	a.Len(mocks[0].noticesOfKind("cardPlayed"), 0)

	// player1 holds no green, so their whole hand is legal
	turns := mocks[1].noticesOfKind("yourTurn")
	a.Len(turns, 1)
	a.Equal("7🌀 3🌸", turns[0].(YourTurn).ValidMoves.String())
	a.NoError(g.Play(mocks[1], deck.Card{Rank: 3, Suit: deck.Pink}))

	// player2 holds green and must follow it
	a.ErrorIs(g.Play(mocks[2], deck.Card{Rank: 1, Suit: deck.Rocket}), ErrIllegalMove)
	a.NoError(g.Play(mocks[2], deck.Card{Rank: 9, Suit: deck.Green}))

	// 9☘️ wins the green-led trick and leads the next one
	a.Equal([]int{2}, g.handWinners)
	a.Equal(2, g.nextPlayer)
	for _, m := range mocks {
		won := m.noticesOfKind("handWon")
		a.Len(won, 1)
		a.Equal("player2", won[0].(HandWon).Player)
	}

	a.Equal(StateTurn, g.State())
	a.Equal(6, totalCards(g))
	a.Equal("2🌀", g.hands[0].String())
}

func TestGame_Play_cardNotInHand(t *testing.T) {
	g, mocks := setupGame(t, "2🌀", "3🌀")
	err := g.Play(mocks[0], deck.Card{Rank: 9, Suit: deck.Yellow})
	assert.ErrorIs(t, err, ErrIllegalMove)
	assert.Equal(t, 0, len(g.playedCards[0]))
}

func TestGame_Play_wrongState(t *testing.T) {
	g := NewGame(logrus.StandardLogger(), Options{})
	p := newMockPlayer("p0")
	assert.NoError(t, g.Join(p))

	err := g.Play(p, deck.Card{Rank: 1, Suit: deck.Blue})
	assert.EqualError(t, err, "cannot play: game state is waiting")
}

func TestGame_Play_missionWin(t *testing.T) {
	a := assert.New(t)

	g, mocks := setupGame(t, "6🌀 1🌸", "8🌀 2🌸")

	task := deck.Card{Rank: 8, Suit: deck.Blue}
	m := NewRandomMission(1, 1)
	m.tasks = []deck.Hand{nil, {task}}
	g.mission = m

	a.NoError(g.Play(mocks[0], deck.Card{Rank: 6, Suit: deck.Blue}))
	a.NoError(g.Play(mocks[1], task))

	a.Equal(StateEnd, g.State())
	a.Equal([]RoundResult{{MissionID: 1, Won: true}}, g.History())
	for _, p := range mocks {
		over := p.noticesOfKind("gameOver")
		a.Len(over, 1)
		a.True(over[0].(GameOver).Won)
	}

	// the state machine is inert once the round ends
	err := g.Play(mocks[1], deck.Card{Rank: 2, Suit: deck.Pink})
	a.EqualError(err, "cannot play: game state is end")
}

func TestGame_Play_missionLose(t *testing.T) {
	a := assert.New(t)

	g, mocks := setupGame(t, "6🌀", "2🌀")

	task := deck.Card{Rank: 6, Suit: deck.Blue}
	m := NewRandomMission(1, 1)
	m.tasks = []deck.Hand{nil, {task}}
	g.mission = m

	// the task card is played by the wrong seat
	a.NoError(g.Play(mocks[0], task))
	a.NoError(g.Play(mocks[1], deck.Card{Rank: 2, Suit: deck.Blue}))

	a.Equal(StateEnd, g.State())
	a.Equal([]RoundResult{{MissionID: 1, Won: false}}, g.History())
	for _, p := range mocks {
		over := p.noticesOfKind("gameOver")
		a.Len(over, 1)
		a.False(over[0].(GameOver).Won)
	}
}

func TestGame_Play_forcedLoss(t *testing.T) {
	a := assert.New(t)

	g, mocks := setupGame(t, "1🌀", "2🌀", "3🌀")

	// simulate twelve completed tricks; one trick of capacity remains,
	// which is less than the player count
	cards := deck.New().Cards
	for i := range g.playedCards {
		g.playedCards[i] = append([]deck.Card{}, cards[i*12:(i+1)*12]...)
	}
	for i := 0; i < 12; i++ {
		g.handWinners = append(g.handWinners, 0)
	}
	g.nextPlayer = 0

	a.NoError(g.Play(mocks[0], deck.Card{Rank: 1, Suit: deck.Blue}))
	a.NoError(g.Play(mocks[1], deck.Card{Rank: 2, Suit: deck.Blue}))
	a.NoError(g.Play(mocks[2], deck.Card{Rank: 3, Suit: deck.Blue}))

	a.Equal(StateEnd, g.State())
	a.Equal(2, g.handWinners[12])
	a.Equal([]RoundResult{{MissionID: 0, Won: false}}, g.History())
}

func TestGame_fullRound(t *testing.T) {
	a := assert.New(t)

	g := NewGame(logrus.StandardLogger(), Options{Seed: 42})
	mocks := []*mockPlayer{newMockPlayer("alice"), newMockPlayer("bob")}
	for _, m := range mocks {
		a.NoError(g.Join(m))
	}

	a.NoError(g.Begin())

	// with the unwinnable placeholder mission the round must run the full
	// twenty tricks and end in a loss
	for turns := 0; g.State() == StateTurn; turns++ {
		if turns > deck.Size {
			t.Fatal("game did not end")
		}

		a.Equal(deck.Size, totalCards(g))

		seat := g.nextPlayer
		moves := g.validMoves(seat)
		a.NotEmpty(moves)
		a.NoError(g.Play(g.players[seat], moves[0]))
	}

	a.Equal(StateEnd, g.State())
	a.Equal(20, len(g.handWinners))
	a.Equal([]RoundResult{{MissionID: 0, Won: false}}, g.History())
	for _, h := range g.hands {
		a.Empty(h)
	}
	for _, m := range mocks {
		over := m.noticesOfKind("gameOver")
		a.Len(over, 1)
		a.False(over[0].(GameOver).Won)
	}
}

func TestGame_SetMission(t *testing.T) {
	a := assert.New(t)

	g := NewGame(logrus.StandardLogger(), Options{})
	p := newMockPlayer("p0")
	a.NoError(g.Join(p))

	a.ErrorIs(g.SetMissionID(99), ErrUnknownMission)

	a.NoError(g.SetMissionID(2))
	a.Equal(2, g.Mission().ID())

	changed := p.noticesOfKind("missionChanged")
	a.Len(changed, 1)
	a.Equal("Complete 2 tasks", changed[0].(MissionChanged).Description)

	g.state = StateTurn
	err := g.SetMissionID(1)
	a.EqualError(err, "cannot set mission: game state is turn")
}

func TestGame_Description(t *testing.T) {
	a := assert.New(t)

	g := NewGame(logrus.StandardLogger(), Options{GameID: 424533559245})
	a.Equal("MLMCYB6N", g.GameID())
	a.Equal("Game MLMCYB6N with no players", g.Description())

	a.NoError(g.Join(newMockPlayer("alice")))
	a.Equal("Game MLMCYB6N with alice", g.Description())

	a.NoError(g.Join(newMockPlayer("bob")))
	a.Equal("Game MLMCYB6N with alice and bob", g.Description())

	a.NoError(g.Join(newMockPlayer("carol")))
	a.Equal("Game MLMCYB6N with alice, bob and carol", g.Description())
}

func TestGame_notifyFailureDoesNotCorruptState(t *testing.T) {
	a := assert.New(t)

	g := NewGame(logrus.StandardLogger(), Options{})
	broken := newMockPlayer("broken")
	broken.err = fmt.Errorf("connection reset")

	a.NoError(g.Join(broken))
	a.NoError(g.Join(newMockPlayer("ok")))
	a.Equal(StateWaiting, g.State())
	a.NoError(g.Begin())
	a.Equal(StateTurn, g.State())
}

func TestState_String(t *testing.T) {
	a := assert.New(t)
	a.Equal("waiting", StateWaiting.String())
	a.Equal("deal", StateDeal.String())
	a.Equal("bid", StateBid.String())
	a.Equal("communicate", StateCommunicate.String())
	a.Equal("turn", StateTurn.String())
	a.Equal("end", StateEnd.String())
	a.Equal("unknown", State(42).String())
}

func TestPlayerState(t *testing.T) {
	a := assert.New(t)

	g, mocks := setupGame(t, "2🌀 5☘️", "7🌀 3🌸")

	state, err := g.PlayerState(mocks[0])
	a.NoError(err)
	a.Equal("turn", state.State)
	a.Equal("2🌀 5☘️", state.Hand.String())
	a.Equal(2, len(state.ValidMoves))

	state, err = g.PlayerState(mocks[1])
	a.NoError(err)
	a.Empty(state.ValidMoves)

	_, err = g.PlayerState(newMockPlayer("stranger"))
	a.ErrorIs(err, ErrPlayerNotInGame)
}
