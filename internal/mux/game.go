package mux

import (
	"errors"
	"net/http"

	"crew-server/internal/config"
	"crew-server/pkg/crew"
	"crew-server/pkg/room"

	gmux "github.com/gorilla/mux"
)

type postGamePayload struct {
	Mission int `json:"mission"`
}

type gameResponse struct {
	ID      string `json:"id"`
	Mission int    `json:"mission"`
}

func (m *Mux) postGame() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := config.Instance()

		payload := postGamePayload{Mission: c.Game.DefaultMission}
		if r.ContentLength > 0 && !decodeRequest(w, r, &payload) {
			return
		}

		mission, err := crew.CreateMission(payload.Mission)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		game, err := m.registry.CreateGame(crew.Options{
			MinPlayers: c.Game.MinPlayers,
			MaxPlayers: c.Game.MaxPlayers,
		})
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		if err := game.SetMission(mission); err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusCreated, gameResponse{
			ID:      game.GameID(),
			Mission: mission.ID(),
		})
	}
}

func (m *Mux) getGame() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, m.registry.List())
	}
}

func (m *Mux) getGameID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		game, err := m.registry.Get(gmux.Vars(r)["id"])
		if err != nil {
			if errors.Is(err, room.ErrUnknownGame) {
				writeJSONError(w, http.StatusNotFound, err)
				return
			}

			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		writeJSON(w, http.StatusOK, game.GameState())
	}
}
