package api

import (
	"fmt"
	"net/http"

	"github.com/bryanchriswhite/TableScout/internal/logger"
	"github.com/bryanchriswhite/TableScout/internal/table"
	"github.com/gorilla/websocket"
)

// Query ops understood by the websocket endpoint
const (
	OpAll        = "all"
	OpName       = "name"
	OpTournament = "tournament"
)

// Request is one websocket query
type Request struct {
	ID         string `json:"id,omitempty"`
	Op         string `json:"op"`
	Name       string `json:"name,omitempty"`
	Tournament int64  `json:"tournament,omitempty"`
	Table      int    `json:"table,omitempty"`
}

// Response answers exactly one Request. Table is null when nothing matched.
type Response struct {
	ID     string          `json:"id,omitempty"`
	Op     string          `json:"op"`
	Tables *TablesResponse `json:"tables,omitempty"`
	Table  *table.Identity `json:"table"`
	Error  string          `json:"error,omitempty"`
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	log := logger.WithComponent("api")

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	for {
		var req Request
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug().Err(err).Msg("WebSocket read error")
			}
			return
		}

		if err := conn.WriteJSON(s.answer(req)); err != nil {
			log.Debug().Err(err).Msg("WebSocket write error")
			return
		}
	}
}

// answer runs the discovery query named by req.Op.
func (s *Server) answer(req Request) Response {
	resp := Response{ID: req.ID, Op: req.Op}

	var err error
	switch req.Op {
	case OpAll:
		resp.Tables, err = s.tables()
	case OpName:
		resp.Table, err = s.finder.ByName(req.Name)
	case OpTournament:
		resp.Table, err = s.finder.ByTournamentTable(req.Tournament, req.Table)
	default:
		err = fmt.Errorf("unknown op %q (use: %s, %s, %s)", req.Op, OpAll, OpName, OpTournament)
	}

	if err != nil {
		resp.Error = err.Error()
	}
	return resp
}
