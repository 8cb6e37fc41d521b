package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/sump-exe/Sports-Game-Management/live"
	"github.com/sump-exe/Sports-Game-Management/services"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origin checks belong in front of this in production.
		return true
	},
}

type WebSocketHandler struct {
	hub         *live.Hub
	gameService services.GameService
	logger      *slog.Logger
}

func NewWebSocketHandler(hub *live.Hub, gameService services.GameService, logger *slog.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		hub:         hub,
		gameService: gameService,
		logger:      logger,
	}
}

// ServeGame attaches a spectator to a game's score feed at
// /ws/games/{gameID}.
func (h *WebSocketHandler) ServeGame(w http.ResponseWriter, r *http.Request) {
	gameID, err := getIDFromURL(r, "gameID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if _, err := h.gameService.GetGame(r.Context(), gameID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed",
			slog.Int("game_id", gameID), slog.Any("error", err))
		return
	}

	client := live.NewClient(h.hub, conn, "game_"+chi.URLParam(r, "gameID"))
	h.hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}

// ServeSeason attaches a spectator to the season room, which carries
// phase rollover announcements.
func (h *WebSocketHandler) ServeSeason(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", slog.Any("error", err))
		return
	}

	client := live.NewClient(h.hub, conn, "season")
	h.hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
