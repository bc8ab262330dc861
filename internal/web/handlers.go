package web

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"creditget/internal/config"
	"creditget/internal/credit"
	"creditget/internal/pipeline"
)

// TagRequest starts a tagging run over a directory. Policy fields are
// optional and override the server's configured defaults for this run.
type TagRequest struct {
	Dir                 string   `json:"dir"`
	Mode                string   `json:"mode,omitempty"`      // "A" or "B"
	Overwrite           []string `json:"overwrite,omitempty"` // role names
	IntegrateUnwritable *bool    `json:"integrate_unwritable,omitempty"`
	DryRun              *bool    `json:"dry_run,omitempty"`
}

type JobResponse struct {
	ID          string    `json:"id"`
	Dir         string    `json:"dir"`
	Status      JobStatus `json:"status"`
	Progress    int       `json:"progress"`
	Total       int       `json:"total"`
	Tagged      int       `json:"tagged"`
	Failed      int       `json:"failed"`
	Error       string    `json:"error,omitempty"`
	CreatedAt   string    `json:"created_at"`
	StartedAt   *string   `json:"started_at,omitempty"`
	CompletedAt *string   `json:"completed_at,omitempty"`
}

func (s *Server) handleTag(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req TagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Dir == "" {
		http.Error(w, "dir is required", http.StatusBadRequest)
		return
	}

	jobConfig, err := s.jobConfig(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	job := s.jobMgr.CreateJob(req.Dir, jobConfig)
	s.logger.Info("Created job %s for directory: %s", job.ID, req.Dir)

	go s.processJob(job)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.jobToResponse(job))
}

// jobConfig merges per-request policy overrides into the server defaults.
func (s *Server) jobConfig(req TagRequest) (config.Config, error) {
	cfg := s.config
	cfg.SourceDir = req.Dir

	if req.Mode != "" {
		if _, err := credit.ParseMode(req.Mode); err != nil {
			return cfg, err
		}
		cfg.WriteMode = req.Mode
	}
	if req.IntegrateUnwritable != nil {
		cfg.IntegrateUnwritable = *req.IntegrateUnwritable
	}
	if req.DryRun != nil {
		cfg.DryRun = *req.DryRun
	}
	if req.Overwrite != nil {
		cfg.Overwrite = config.OverwriteFlags{}
		for _, name := range req.Overwrite {
			role, err := credit.ParseRole(name)
			if err != nil {
				return cfg, err
			}
			switch role {
			case credit.RoleComment:
				cfg.Overwrite.Comment = true
			case credit.RoleLyricist:
				cfg.Overwrite.Lyricist = true
			case credit.RoleComposer:
				cfg.Overwrite.Composer = true
			case credit.RoleRemixer:
				cfg.Overwrite.Remixer = true
			}
		}
	}

	return cfg, cfg.Validate()
}

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	jobs := s.jobMgr.ListJobs()
	responses := make([]*JobResponse, len(jobs))
	for i, job := range jobs {
		responses[i] = s.jobToResponse(job)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(responses)
}

func (s *Server) handleJobAction(w http.ResponseWriter, r *http.Request) {
	// Extract job ID from path: /api/jobs/{id} or /api/jobs/{id}/cancel
	path := strings.TrimPrefix(r.URL.Path, "/api/jobs/")
	parts := strings.Split(path, "/")
	if len(parts) == 0 || parts[0] == "" {
		http.Error(w, "Job ID required", http.StatusBadRequest)
		return
	}

	jobID := parts[0]

	if r.Method == http.MethodGet && len(parts) == 1 {
		job, err := s.jobMgr.GetJob(jobID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(s.jobToResponse(job))
		return
	}

	if r.Method == http.MethodPost && len(parts) == 2 && parts[1] == "cancel" {
		job, err := s.jobMgr.GetJob(jobID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		if job.Cancel != nil {
			job.Cancel()
		}

		s.jobMgr.UpdateJob(jobID, func(j *Job) {
			j.Status = StatusCancelled
		})

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "cancelled"})
		return
	}

	http.Error(w, "Invalid request", http.StatusBadRequest)
}

func (s *Server) processJob(job *Job) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s.jobMgr.UpdateJob(job.ID, func(j *Job) {
		j.Cancel = cancel
		j.Status = StatusRunning
	})

	s.logger.Info("Starting job %s", job.ID)

	runner := pipeline.NewRunner(job.Config, s.logger, nil)
	hooks := pipeline.Hooks{
		OnFilesCollected: func(total int) {
			s.jobMgr.UpdateJob(job.ID, func(j *Job) {
				j.Total = total
			})
		},
		OnProgress: func() {
			s.jobMgr.UpdateJob(job.ID, func(j *Job) {
				j.Progress++
			})
		},
	}

	stats, err := runner.Run(ctx, hooks)
	if err != nil {
		s.logger.Error("Job %s failed: %v", job.ID, err)
		s.jobMgr.UpdateJob(job.ID, func(j *Job) {
			j.Status = StatusFailed
			j.Error = err.Error()
		})
		return
	}

	s.jobMgr.UpdateJob(job.ID, func(j *Job) {
		j.Tagged = stats.Tagged
		j.Failed = stats.Failed
		if stats.Cancelled {
			j.Status = StatusCancelled
		} else {
			j.Status = StatusCompleted
		}
	})

	s.logger.Info("Job %s finished: %d tagged, %d failed", job.ID, stats.Tagged, stats.Failed)
}

func (s *Server) jobToResponse(job *Job) *JobResponse {
	resp := &JobResponse{
		ID:        job.ID,
		Dir:       job.Dir,
		Status:    job.Status,
		Progress:  job.Progress,
		Total:     job.Total,
		Tagged:    job.Tagged,
		Failed:    job.Failed,
		Error:     job.Error,
		CreatedAt: job.CreatedAt.Format("2006-01-02 15:04:05"),
	}

	if job.StartedAt != nil {
		s := job.StartedAt.Format("2006-01-02 15:04:05")
		resp.StartedAt = &s
	}
	if job.CompletedAt != nil {
		s := job.CompletedAt.Format("2006-01-02 15:04:05")
		resp.CompletedAt = &s
	}

	return resp
}
