package api

import (
	"net/http"
	"time"
)

type statusResponse struct {
	Status   string `json:"status"`
	Business string `json:"business"`
	Payload  string `json:"payload"`
	Uptime   string `json:"uptime"`
	Version  string `json:"version"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	uptime := time.Since(s.StartTime).Truncate(time.Second).String()

	writeJSON(w, http.StatusOK, statusResponse{
		Status:   "ok",
		Business: s.Kiosk.Business(),
		Payload:  s.Kiosk.Payload(),
		Uptime:   uptime,
		Version:  s.Version,
	})
}
