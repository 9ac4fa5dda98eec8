package mux

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"crew-server/internal/util"
	"crew-server/pkg/crew"
	"crew-server/pkg/deck"
	"crew-server/pkg/room"

	gmux "github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const writeWait = time.Second * 10
const pongWait = time.Second * 60
const pingPeriod = pongWait * 9 / 10

func (m *Mux) getGameIDWS() http.HandlerFunc {
	upgrader := &websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

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

		name := r.FormValue("name")
		if name == "" {
			name = util.GetRandomName()
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logrus.WithError(err).Error("could not upgrade connection")
			return
		}

		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			_ = conn.SetReadDeadline(time.Now().Add(pongWait))
			return nil
		})

		client := room.NewClient(conn, name)
		if err := game.Join(client); err != nil {
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = conn.WriteJSON(&room.Envelope{Kind: "error", Message: err.Error(), Time: time.Now()})
			_ = conn.Close()
			return
		}

		waitForCloseFrame := make(chan bool)
		defer func() {
			_ = conn.Close()
			close(waitForCloseFrame)
		}()

		go m.webSocketWriteLoop(client, waitForCloseFrame)
		m.webSocketReadLoop(client, game)
	}
}

func (m *Mux) webSocketWriteLoop(client *room.Client, waitForCloseFrame chan bool) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = client.Conn.Close()
	}()

	for {
		select {
		case <-ticker.C:
			_ = client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case reason := <-client.Close:
			_ = client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = client.Conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason))

			// wait for the close frame
			select {
			case <-waitForCloseFrame:
			case <-time.After(time.Second):
			}
			return
		case env := <-client.SendChan():
			msgBytes, _ := json.Marshal(env)
			logrus.WithField("message", string(msgBytes)).WithField("client", client.String()).Trace("sending message to client")

			_ = client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.Conn.WriteJSON(env); err != nil {
				logrus.WithError(err).WithField("client", client.String()).Error("could not write message")
				return
			}
		}
	}
}

func (m *Mux) webSocketReadLoop(client *room.Client, game *crew.Game) {
	for {
		var msg room.PayloadIn
		if err := client.Conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logrus.WithError(err).WithField("client", client.String()).Error("could not read message")
			}

			client.CloseError = err
			return
		}

		m.handleClientAction(client, game, &msg)
	}
}

// handleClientAction dispatches a single client request against the game.
// Errors go back to the requesting client only; successful moves reach every
// player through the game's own notifications.
func (m *Mux) handleClientAction(client *room.Client, game *crew.Game, msg *room.PayloadIn) {
	var err error
	switch msg.Action {
	case "begin":
		err = game.Begin()
	case "play":
		var card deck.Card
		if card, err = deck.CardFromString(msg.Card); err == nil {
			err = game.Play(client, card)
		}
	case "setMission":
		err = game.SetMissionID(msg.Mission)
	case "state":
		var state *crew.PlayerState
		if state, err = game.PlayerState(client); err == nil {
			client.SendResponse(msg.Context, "state", state)
			return
		}
	default:
		err = fmt.Errorf("unknown action: %s", msg.Action)
	}

	if err != nil {
		client.SendError(msg.Context, err)
		return
	}

	client.SendResponse(msg.Context, "ack", nil)
}
