package util

import (
	"fmt"
	"math/rand"
	"time"
)

var random = rand.New(rand.NewSource(time.Now().UnixNano())) // nolint:gosec

var adjectives = []string{
	"Brave", "Calm", "Daring", "Eager", "Fearless", "Gallant", "Hasty", "Intrepid", "Jolly", "Keen",
	"Lucky", "Mighty", "Nimble", "Orbiting", "Plucky", "Quiet", "Radiant", "Steady", "Tireless", "Valiant",
	"Weightless", "Zealous", "Drifting", "Gleaming", "Silent", "Swift", "Vigilant", "Wandering",
}

var crewmates = []string{
	"Astronaut", "Captain", "Cadet", "Commander", "Copilot", "Cosmonaut", "Engineer", "Navigator",
	"Pilot", "Scout", "Specialist", "Stargazer", "Voyager", "Comet", "Meteor", "Nebula", "Nova",
	"Pulsar", "Quasar", "Rocketeer", "Satellite", "Stowaway",
}

// GetRandomName returns a display name for a player who connected without one
func GetRandomName() string {
	adjective := adjectives[random.Intn(len(adjectives))]
	crewmate := crewmates[random.Intn(len(crewmates))]

	return fmt.Sprintf("%s %s", adjective, crewmate)
}
