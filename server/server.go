package server

import (
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"vrm-crawler/config"
	"vrm-crawler/utils"
)

// availableStates is the selection the web UI offers.
var availableStates = []string{"VA", "TX", "NC", "FL", "CA", "GA", "SC", "AL", "TN", "KY"}

// CrawlRunner executes a crawl for the given states with the given page
// cap. Implemented by main; kept as a function type so the server does not
// pull in the whole crawl stack.
type CrawlRunner func(states []string, maxPages int) error

// Server exposes the crawler over a small web UI: pick states, trigger a
// run, download the day's reports.
type Server struct {
	cfg    *config.Config
	logger *utils.Logger
	run    CrawlRunner

	mu      sync.Mutex
	running bool
}

// New creates a Server that triggers crawls through run.
func New(cfg *config.Config, logger *utils.Logger, run CrawlRunner) *Server {
	return &Server{cfg: cfg, logger: logger, run: run}
}

// Run blocks serving the UI on the configured address.
func (s *Server) Run() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/scrape", s.handleScrape)
	mux.HandleFunc("/download/", s.handleDownload)
	mux.HandleFunc("/api/status", s.handleStatus)

	srv := &http.Server{
		Addr:              s.cfg.ServerAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("[server] Listening on http://%s", s.cfg.ServerAddr)
	return srv.ListenAndServe()
}

var indexTmpl = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><title>VRM Crawler</title></head>
<body>
  <h1>VRM Crawler</h1>
  {{if .Message}}<p><em>{{.Message}}</em></p>{{end}}
  <form method="POST" action="/scrape">
    <fieldset>
      <legend>States to crawl</legend>
      {{range .States}}
      <label><input type="checkbox" name="states" value="{{.}}"> {{.}}</label>
      {{end}}
    </fieldset>
    <p><label>Page limit (optional): <input type="number" name="page_limit" min="1" max="1000"></label></p>
    <button type="submit">Start crawl</button>
  </form>
  <h2>Reports</h2>
  {{if .Files}}
  <ul>
    {{range .Files}}<li><a href="/download/{{.}}">{{.}}</a></li>{{end}}
  </ul>
  {{else}}
  <p>No reports yet.</p>
  {{end}}
</body>
</html>`))

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	data := struct {
		States  []string
		Files   []string
		Message string
	}{
		States:  availableStates,
		Files:   s.reportFiles(),
		Message: r.URL.Query().Get("msg"),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTmpl.Execute(w, data); err != nil {
		s.logger.Error("[server] render index: %v", err)
	}
}

func (s *Server) handleScrape(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	// Requested states are matched against the whitelist, never passed
	// through raw.
	var states []string
	for _, requested := range r.Form["states"] {
		for _, known := range availableStates {
			if requested == known {
				states = append(states, known)
				break
			}
		}
	}
	if len(states) == 0 {
		s.redirect(w, r, "Please select at least one valid state.")
		return
	}

	maxPages := s.cfg.MaxPages
	if raw := strings.TrimSpace(r.FormValue("page_limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 1000 {
			s.redirect(w, r, "Invalid page limit. Must be a number between 1 and 1000.")
			return
		}
		maxPages = n
	}

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		s.redirect(w, r, "A crawl is already running.")
		return
	}
	s.running = true
	s.mu.Unlock()

	s.logger.Info("[server] Crawl requested for states: %s", strings.Join(states, ","))
	go func() {
		defer func() {
			s.mu.Lock()
			s.running = false
			s.mu.Unlock()
		}()
		if err := s.run(states, maxPages); err != nil {
			s.logger.Error("[server] Crawl failed: %v", err)
		}
	}()

	s.redirect(w, r, fmt.Sprintf("Crawl started for: %s. Reports appear below when done.",
		strings.Join(states, ", ")))
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/download/")

	// Reject anything that is not a plain report filename.
	if !strings.HasPrefix(name, "vrm_listings_") || !strings.HasSuffix(name, ".xlsx") ||
		strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		http.Error(w, "invalid file requested", http.StatusBadRequest)
		return
	}

	path := filepath.Join(s.cfg.OutputDir, name)
	if _, err := os.Stat(path); err != nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Type",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	http.ServeFile(w, r, path)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	type fileInfo struct {
		Filename string `json:"filename"`
		Size     int64  `json:"size"`
		Modified string `json:"modified"`
	}

	var files []fileInfo
	for _, name := range s.reportFiles() {
		info, err := os.Stat(filepath.Join(s.cfg.OutputDir, name))
		if err != nil {
			continue
		}
		files = append(files, fileInfo{
			Filename: name,
			Size:     info.Size(),
			Modified: info.ModTime().Format(time.RFC3339),
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Modified > files[j].Modified })

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"files": files})
}

// reportFiles lists report filenames in the output directory, newest first.
func (s *Server) reportFiles() []string {
	matches, err := filepath.Glob(filepath.Join(s.cfg.OutputDir, "vrm_listings_*.xlsx"))
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, filepath.Base(m))
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names
}

func (s *Server) redirect(w http.ResponseWriter, r *http.Request, msg string) {
	http.Redirect(w, r, "/?msg="+templateQueryEscape(msg), http.StatusSeeOther)
}

func templateQueryEscape(s string) string {
	return strings.ReplaceAll(template.URLQueryEscaper(s), "+", "%20")
}
