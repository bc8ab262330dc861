package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The UI is served by this same binary; there is no cross-origin
	// deployment to guard against.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleWebSocket streams the progress of one tagging job: a JSON frame
// per job update (files processed, tagged/failed totals), and once the
// job reaches a terminal status, a close frame carrying the run summary.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	jobID := r.URL.Query().Get("job_id")
	if jobID == "" {
		s.logger.Error("WebSocket connection missing job_id")
		return
	}

	updates := s.jobMgr.Subscribe(jobID)
	defer s.jobMgr.Unsubscribe(jobID, updates)

	// Late subscribers get the current state immediately; a job that
	// already finished gets its summary and nothing else.
	if job, err := s.jobMgr.GetJob(jobID); err == nil {
		if err := s.writeJobFrame(conn, job); err != nil {
			return
		}
		if terminalStatus(job.Status) {
			s.closeWithSummary(conn, job)
			return
		}
	}

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case job, ok := <-updates:
			if !ok {
				return
			}
			if err := s.writeJobFrame(conn, job); err != nil {
				s.logger.Error("Failed to write WebSocket message: %v", err)
				return
			}
			if terminalStatus(job.Status) {
				s.closeWithSummary(conn, job)
				return
			}

		case <-ticker.C:
			// Keepalive; tagging a large folder can sit between
			// updates for a while.
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (s *Server) writeJobFrame(conn *websocket.Conn, job *Job) error {
	data, err := json.Marshal(s.jobToResponse(job))
	if err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, data)
}

// closeWithSummary ends the stream with a close frame whose reason is the
// run total, e.g. "completed: 12 tagged, 3 failed".
func (s *Server) closeWithSummary(conn *websocket.Conn, job *Job) {
	reason := fmt.Sprintf("%s: %d tagged, %d failed", job.Status, job.Tagged, job.Failed)
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason)
	conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
}

func terminalStatus(status JobStatus) bool {
	return status == StatusCompleted || status == StatusFailed || status == StatusCancelled
}
