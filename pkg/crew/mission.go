package crew

import (
	"fmt"

	"crew-server/internal/rng"
	"crew-server/internal/util"
	"crew-server/pkg/deck"

	"github.com/sirupsen/logrus"
)

// MissionStatus is the outcome of a mission for a given play history
type MissionStatus int

// mission statuses
const (
	StatusOngoing MissionStatus = iota
	StatusWin
	StatusLose
)

func (s MissionStatus) String() string {
	switch s {
	case StatusWin:
		return "win"
	case StatusLose:
		return "lose"
	default:
		return "ongoing"
	}
}

// Mission is the round's objective. Bid runs once per round before play and
// may assign task cards; Communicate runs before the first trick; Status is a
// pure function over the play history and must give a consistent answer for
// a fixed history.
type Mission interface {
	// ID identifies the mission in the catalog (0 for the placeholder)
	ID() int

	// Description returns a human-readable summary of the objective
	Description() string

	// Bid assigns tasks for the round and notifies the players
	Bid(players []Player, commander int) error

	// Communicate lets players signal information before a trick
	Communicate(players []Player, remaining []deck.Hand, trick int) error

	// Status reports the outcome for the play history so far
	Status(played [][]deck.Card, winners []int) MissionStatus
}

// ImpossibleMission is the placeholder before a real mission is configured.
// It assigns nothing and can never be won.
type ImpossibleMission struct{}

// ID returns 0
func (ImpossibleMission) ID() int { return 0 }

// Description describes the placeholder
func (ImpossibleMission) Description() string { return "no mission has been set" }

// Bid assigns nothing
func (ImpossibleMission) Bid([]Player, int) error { return nil }

// Communicate is a no-op
func (ImpossibleMission) Communicate([]Player, []deck.Hand, int) error { return nil }

// Status always reports ongoing
func (ImpossibleMission) Status([][]deck.Card, []int) MissionStatus { return StatusOngoing }

// missionCatalog maps mission ids to the number of task cards assigned
var missionCatalog = map[int]int{
	1: 1,
	2: 2,
	3: 4,
}

// CreateMission returns the mission for the given catalog id
func CreateMission(id int) (Mission, error) {
	tasks, ok := missionCatalog[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMission, id)
	}

	return NewRandomMission(id, tasks), nil
}

// RandomMission assigns task cards drawn at random from a full deck,
// round-robin starting at the commander's seat. The game is lost the moment
// any player other than a task's owner plays that card, and won once every
// task card has been played by its owner.
type RandomMission struct {
	id       int
	numTasks int
	tasks    []deck.Hand
	random   rng.Generator
}

// NewRandomMission returns a mission that assigns numTasks random task cards
func NewRandomMission(id, numTasks int) *RandomMission {
	return &RandomMission{
		id:       id,
		numTasks: numTasks,
		random:   rng.Crypto{},
	}
}

// ID returns the catalog id
func (m *RandomMission) ID() int { return m.id }

// Description returns a markdown-safe summary
func (m *RandomMission) Description() string {
	return fmt.Sprintf("Complete %d tasks", m.numTasks)
}

// Tasks returns the task cards assigned to each seat. Empty until Bid runs.
func (m *RandomMission) Tasks() []deck.Hand {
	return m.tasks
}

// Bid draws the task cards without replacement and deals them out
// round-robin starting at the commander
func (m *RandomMission) Bid(players []Player, commander int) error {
	n := len(players)
	m.tasks = make([]deck.Hand, n)

	pool := deck.New().Cards
	order := util.PermuteRange(commander, n)
	for i := 0; i < m.numTasks; i++ {
		pick := m.random.Intn(len(pool))
		card := pool[pick]
		pool = append(pool[:pick], pool[pick+1:]...)

		seat := order[i%n]
		m.tasks[seat] = append(m.tasks[seat], card)
	}

	log := logrus.StandardLogger()
	for _, seat := range order {
		if len(m.tasks[seat]) == 0 {
			continue
		}

		notifyAll(log, players, TasksAssigned{
			Tasks:  m.tasks[seat].Clone(),
			Player: players[seat].Name(),
		})
	}

	return nil
}

// Communicate is a no-op; random missions allow no signalling
func (m *RandomMission) Communicate([]Player, []deck.Hand, int) error { return nil }

// Status reports the outcome for the play history so far
func (m *RandomMission) Status(played [][]deck.Card, winners []int) MissionStatus {
	outstanding := 0
	for owner, tasks := range m.tasks {
		for _, task := range tasks {
			seat, found := seatThatPlayed(played, task)
			if !found {
				outstanding++
				continue
			}

			if seat != owner {
				return StatusLose
			}
		}
	}

	if outstanding > 0 {
		return StatusOngoing
	}

	return StatusWin
}

func seatThatPlayed(played [][]deck.Card, card deck.Card) (int, bool) {
	for seat, cards := range played {
		for _, c := range cards {
			if c == card {
				return seat, true
			}
		}
	}

	return 0, false
}
