package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jkrogh/fokus/pkg/ai"
	"github.com/jkrogh/fokus/pkg/db"
	"github.com/jkrogh/fokus/pkg/goal"
	"github.com/jkrogh/fokus/pkg/period"
	"github.com/jkrogh/fokus/pkg/reflection"
	"github.com/jkrogh/fokus/pkg/sync"
	"github.com/jkrogh/fokus/pkg/vault"
)

// Handler holds dependencies for API handlers
type Handler struct {
	Goals       *goal.Service
	Reflections *reflection.Service
	Tree        *goal.TreeBuilder
	AI          ai.Generator
	Repo        *db.Repository
	Git         *sync.GitManager
}

// goalResponse is the JSON envelope for a single goal document.
type goalResponse struct {
	Period       period.Period          `json:"period"`
	Found        bool                   `json:"found"`
	Frontmatter  map[string]interface{} `json:"frontmatter,omitempty"`
	Body         string                 `json:"body,omitempty"`
	Tasks        []goal.Task            `json:"tasks,omitempty"`
	FocusContent *goal.FocusContent     `json:"focusContent,omitempty"`
	Progress     int                    `json:"progress"`
}

// HandleCurrentGoals handles GET /goals/current
func (h *Handler) HandleCurrentGoals(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	out := make(map[string]goalResponse, 5)
	for _, t := range []period.Type{period.Vision, period.Yearly, period.Quarterly, period.Monthly, period.Weekly} {
		p := period.Current(t, now)
		doc, err := h.Goals.Read(p)
		if err != nil {
			http.Error(w, fmt.Sprintf("Failed to read goal: %v", err), http.StatusInternalServerError)
			return
		}
		out[string(t)] = buildGoalResponse(p, doc)
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleGetGoal handles GET /goals/{type}
func (h *Handler) HandleGetGoal(w http.ResponseWriter, r *http.Request) {
	year, quarter, month, week := queryFields(r)
	p, ok := h.periodFromRequest(w, r, year, quarter, month, week)
	if !ok {
		return
	}
	doc, err := h.Goals.Read(p)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to read goal: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, buildGoalResponse(p, doc))
}

// WriteGoalRequest is the payload for PUT /goals/{type}.
type WriteGoalRequest struct {
	Year    int    `json:"year"`
	Quarter int    `json:"quarter,omitempty"`
	Month   int    `json:"month,omitempty"`
	Week    int    `json:"week,omitempty"`
	Body    string `json:"body"`
}

// HandleWriteGoal handles PUT /goals/{type}
func (h *Handler) HandleWriteGoal(w http.ResponseWriter, r *http.Request) {
	var req WriteGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	p, ok := h.periodFromRequest(w, r, req.Year, req.Quarter, req.Month, req.Week)
	if !ok {
		return
	}

	if err := h.Goals.Write(p, req.Body); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write goal: %v", err), http.StatusInternalServerError)
		return
	}
	h.afterWrite(period.Path(p), vault.KindGoal, "Update goal "+p.Label)

	writeJSON(w, http.StatusOK, map[string]string{"status": "written", "path": period.Path(p)})
}

// ToggleTaskRequest is the payload for POST /goals/{type}/tasks/{id}.
type ToggleTaskRequest struct {
	Year      int  `json:"year"`
	Quarter   int  `json:"quarter,omitempty"`
	Month     int  `json:"month,omitempty"`
	Week      int  `json:"week,omitempty"`
	Completed bool `json:"completed"`
}

// HandleToggleTask handles POST /goals/{type}/tasks/{id}
func (h *Handler) HandleToggleTask(w http.ResponseWriter, r *http.Request) {
	var req ToggleTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	p, ok := h.periodFromRequest(w, r, req.Year, req.Quarter, req.Month, req.Week)
	if !ok {
		return
	}

	found, err := h.Goals.ToggleTask(p, r.PathValue("id"), req.Completed)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to toggle task: %v", err), http.StatusInternalServerError)
		return
	}
	if !found {
		http.Error(w, "No goal document for period", http.StatusNotFound)
		return
	}
	h.afterWrite(period.Path(p), vault.KindGoal, "Toggle task in "+p.Label)

	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// HandleGoalTree handles GET /goals/tree
func (h *Handler) HandleGoalTree(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		http.Error(w, "Invalid or missing year", http.StatusBadRequest)
		return
	}
	tree, err := h.Tree.Build(year)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to build tree: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, tree)
}

// HandleListReflections handles GET /reflections
func (h *Handler) HandleListReflections(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	year, _ := strconv.Atoi(q.Get("year"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	t := period.Type(q.Get("type"))
	if t != "" && !t.Valid() {
		http.Error(w, "Invalid period type", http.StatusBadRequest)
		return
	}

	docs, err := h.Reflections.List(year, t, limit)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to list reflections: %v", err), http.StatusInternalServerError)
		return
	}

	type entry struct {
		Path        string                 `json:"path"`
		Frontmatter map[string]interface{} `json:"frontmatter"`
		Sections    []reflection.Section   `json:"sections"`
	}
	out := make([]entry, 0, len(docs))
	for _, doc := range docs {
		out = append(out, entry{Path: doc.Path, Frontmatter: doc.Frontmatter, Sections: reflection.ParseSections(doc.Body)})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"reflections": out})
}

// HandleReflectionQuestions handles GET /reflections/questions
func (h *Handler) HandleReflectionQuestions(w http.ResponseWriter, r *http.Request) {
	t := period.Type(r.URL.Query().Get("type"))
	if !t.Valid() {
		http.Error(w, "Invalid period type", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"questions": reflection.Questions(t)})
}

// WriteReflectionRequest is the payload for PUT /reflections/{type}. Answers
// may be keyed by question text or stable question id.
type WriteReflectionRequest struct {
	Year    int               `json:"year"`
	Quarter int               `json:"quarter,omitempty"`
	Month   int               `json:"month,omitempty"`
	Week    int               `json:"week,omitempty"`
	Answers map[string]string `json:"answers"`
}

// HandleWriteReflection handles PUT /reflections/{type}
func (h *Handler) HandleWriteReflection(w http.ResponseWriter, r *http.Request) {
	var req WriteReflectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	p, ok := h.periodFromRequest(w, r, req.Year, req.Quarter, req.Month, req.Week)
	if !ok {
		return
	}

	if err := h.Reflections.WriteSections(p, req.Answers); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write reflection: %v", err), http.StatusInternalServerError)
		return
	}
	h.afterWrite(period.ReflectionPath(p), vault.KindReflection, "Update reflection "+p.Label)

	writeJSON(w, http.StatusOK, map[string]string{"status": "written", "path": period.ReflectionPath(p)})
}

// HandleReflectionSummary handles GET /reflections/{type}/summary: an
// AI-written wrap-up of a stored reflection, using the completion snapshot
// from its frontmatter.
func (h *Handler) HandleReflectionSummary(w http.ResponseWriter, r *http.Request) {
	year, quarter, month, week := queryFields(r)
	p, ok := h.periodFromRequest(w, r, year, quarter, month, week)
	if !ok {
		return
	}

	doc, err := h.Reflections.Read(p)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to read reflection: %v", err), http.StatusInternalServerError)
		return
	}
	if doc == nil {
		http.Error(w, "No reflection for period", http.StatusNotFound)
		return
	}
	fm, err := vault.ParseReflection(doc)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to parse reflection: %v", err), http.StatusInternalServerError)
		return
	}

	var sb strings.Builder
	for _, s := range reflection.ParseSections(doc.Body) {
		if s.Answer == "" {
			continue
		}
		fmt.Fprintf(&sb, "%s\n%s\n\n", s.Question, s.Answer)
	}

	summary, err := h.AI.GenerateText(r.Context(), ai.ReflectionSummaryPrompt(p.Label, fm.GoalsCompleted, fm.GoalsTotal, sb.String()))
	if err != nil {
		http.Error(w, fmt.Sprintf("AI generation failed: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"summary": summary})
}

// HandleActivity handles GET /activity: the most recent document writes
// across all surfaces, straight from the write log.
func (h *Handler) HandleActivity(w http.ResponseWriter, r *http.Request) {
	if h.Repo == nil {
		http.Error(w, "No write log configured", http.StatusNotFound)
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	entries, err := h.Repo.RecentWrites(limit)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to read write log: %v", err), http.StatusInternalServerError)
		return
	}

	type entry struct {
		Path      string    `json:"path"`
		Kind      string    `json:"kind"`
		Source    string    `json:"source"`
		CreatedAt time.Time `json:"createdAt"`
	}
	out := make([]entry, 0, len(entries))
	for _, e := range entries {
		out = append(out, entry{Path: e.Path, Kind: e.Kind, Source: e.Source, CreatedAt: e.CreatedAt})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"writes": out})
}

// ChatRequest is the payload for POST /chat.
type ChatRequest struct {
	Message string `json:"message"`
}

// HandleChat handles POST /chat: the message is answered by the Generator
// with the current goal documents as context.
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		http.Error(w, "Message is required", http.StatusBadRequest)
		return
	}

	context, err := h.Goals.ContextText(time.Now())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to gather goal context: %v", err), http.StatusInternalServerError)
		return
	}

	answer, err := h.AI.GenerateText(r.Context(), ai.CoachPrompt(req.Message, context))
	if err != nil {
		http.Error(w, fmt.Sprintf("AI generation failed: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"answer": answer})
}

// afterWrite records the write and kicks off an async vault sync, like every
// other write surface of the server.
func (h *Handler) afterWrite(path, kind, commitMsg string) {
	if h.Repo != nil {
		if err := h.Repo.LogWrite(path, kind, "api"); err != nil {
			log.Printf("Failed to log write: %v", err)
		}
	}
	if h.Git != nil {
		go func() {
			if err := h.Git.Sync(commitMsg); err != nil {
				log.Printf("Git sync failed: %v", err)
			}
		}()
	}
}

// periodFromRequest resolves the period type from the path and the numeric
// fields into a full period, writing an HTTP error on invalid input.
func (h *Handler) periodFromRequest(w http.ResponseWriter, r *http.Request, year, quarter, month, week int) (period.Period, bool) {
	t := period.Type(r.PathValue("type"))
	p, err := period.FromFields(t, year, quarter, month, week)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return period.Period{}, false
	}
	return p, true
}

func queryFields(r *http.Request) (year, quarter, month, week int) {
	q := r.URL.Query()
	year, _ = strconv.Atoi(q.Get("year"))
	quarter, _ = strconv.Atoi(q.Get("quarter"))
	month, _ = strconv.Atoi(q.Get("month"))
	week, _ = strconv.Atoi(q.Get("week"))
	return
}

func buildGoalResponse(p period.Period, doc *vault.Document) goalResponse {
	resp := goalResponse{Period: p, Found: doc != nil}
	if doc == nil {
		return resp
	}
	resp.Frontmatter = doc.Frontmatter
	resp.Body = doc.Body

	switch p.Type {
	case period.Monthly, period.Weekly:
		resp.Tasks = goal.ParseTasks(doc.Body)
		resp.Progress = goal.Progress(resp.Tasks)
	default:
		content := goal.ParseFocusContent(doc.Body)
		resp.FocusContent = &content
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}
