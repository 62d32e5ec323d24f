// Package web provides the optional HTTP front end: a JSON generate
// endpoint running the pipeline over the offline demo session, plus static
// file passthrough for everything else.
package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/valter-silva-au/onboard/internal/core"
	"github.com/valter-silva-au/onboard/internal/integration"
)

// maxRequestBody bounds the generate request body size.
const maxRequestBody = 1 << 20 // 1MB

// Server serves the onboard web front end.
type Server struct {
	staticDir string
	timeout   time.Duration
}

// NewServer creates a web server serving static files from staticDir.
// timeout bounds each session round-trip of the demo pipeline.
func NewServer(staticDir string, timeout time.Duration) *Server {
	return &Server{staticDir: staticDir, timeout: timeout}
}

// Handler returns the HTTP handler: POST /api/generate plus static
// passthrough.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/generate", s.handleGenerate)
	mux.Handle("/", http.FileServer(http.Dir(s.staticDir)))
	return mux
}

// generateRequest is the JSON body of POST /api/generate.
type generateRequest struct {
	Owner string `json:"owner"`
	Repo  string `json:"repo"`
	Team  string `json:"team"`
	Name  string `json:"name"`
}

// handleGenerate runs the full pipeline over the offline demo session and
// replies with the consolidated run result. The web path never contacts a
// live backend and never writes guides to disk.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	body := http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Owner == "" || req.Repo == "" {
		httpError(w, http.StatusBadRequest, "owner and repo are required")
		return
	}

	params := core.Params{
		Owner:     req.Owner,
		Repo:      req.Repo,
		Team:      req.Team,
		Recipient: req.Name,
	}
	if params.Team == "" {
		params.Team = "engineering"
	}
	if params.Recipient == "" {
		params.Recipient = "New Team Member"
	}

	pipeline := core.NewPipeline(integration.NewDemoSession(), memoryGuideStore{}, s.timeout, nil)
	result := pipeline.Run(r.Context(), params)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		// Too late for a status change; nothing left to do.
		return
	}
}

func httpError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// memoryGuideStore satisfies core.GuideStore without touching the
// filesystem: the guide content travels in the JSON response and the path
// is the name a CLI run would have used.
type memoryGuideStore struct{}

func (memoryGuideStore) Write(owner, repo, _ string) (string, error) {
	return fmt.Sprintf("onboarding-%s-%s-%s.md", owner, repo, time.Now().Format("2006-01-02")), nil
}
