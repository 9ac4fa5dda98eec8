package mux

import (
	"net/http"

	"crew-server/pkg/room"

	gmux "github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version  string
	registry *room.Registry
}

// NewMux returns a new HTTP mux
func NewMux(version string) *Mux {
	this := &Mux{
		Router:   gmux.NewRouter(),
		version:  version,
		registry: room.NewRegistry(logrus.StandardLogger()),
	}

	r := this.Router
	r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
	r.Methods(http.MethodPost).Path("/game").Handler(this.postGame())
	r.Methods(http.MethodGet).Path("/game").Handler(this.getGame())

	// game ids are eight characters of the base-32 alphabet
	gr := r.PathPrefix("/game/{id:[A-Z2-7]{8}}").Subrouter()
	gr.Methods(http.MethodGet).Path("").Handler(this.getGameID())
	gr.Methods(http.MethodGet).Path("/ws").Handler(this.getGameIDWS())

	return this
}
