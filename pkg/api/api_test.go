package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/jkrogh/fokus/pkg/db"
	"github.com/jkrogh/fokus/pkg/goal"
	"github.com/jkrogh/fokus/pkg/period"
	"github.com/jkrogh/fokus/pkg/reflection"
	"github.com/jkrogh/fokus/pkg/vault"
)

// MockGenerator implements ai.Generator for testing
type MockGenerator struct {
	Response string
	Err      error
	Prompt   string
}

func (m *MockGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	m.Prompt = prompt
	return m.Response, m.Err
}

func setupRouter(t *testing.T) (*http.ServeMux, *goal.Service, *MockGenerator) {
	t.Helper()
	store := vault.NewStore(t.TempDir())
	if err := store.EnsureLayout(); err != nil {
		t.Fatal(err)
	}
	goals := goal.NewService(store)
	reflections := reflection.NewService(store)
	mockAI := &MockGenerator{Response: "Godt spørgsmål."}
	return NewRouter(goals, reflections, mockAI, nil, nil), goals, mockAI
}

func doJSON(t *testing.T, router *http.ServeMux, method, url string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		data, _ := json.Marshal(payload)
		body = bytes.NewBuffer(data)
	} else {
		body = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, url, body)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandleWriteAndGetGoal(t *testing.T) {
	router, _, _ := setupRouter(t)

	w := doJSON(t, router, "PUT", "/goals/weekly", WriteGoalRequest{
		Year: 2025,
		Week: 3,
		Body: "- [ ] Task A\n- [x] Task B\n",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var writeResp map[string]string
	json.Unmarshal(w.Body.Bytes(), &writeResp)
	if writeResp["path"] != "goals/2025/q1/january/week-03.md" {
		t.Errorf("Unexpected path %q", writeResp["path"])
	}

	w = doJSON(t, router, "GET", "/goals/weekly?year=2025&week=3", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var resp goalResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Found {
		t.Fatal("Expected the goal to be found")
	}
	if len(resp.Tasks) != 2 || resp.Progress != 50 {
		t.Errorf("Unexpected tasks/progress: %d tasks, %d%%", len(resp.Tasks), resp.Progress)
	}
}

func TestHandleGetGoalMissing(t *testing.T) {
	router, _, _ := setupRouter(t)

	w := doJSON(t, router, "GET", "/goals/weekly?year=2025&week=3", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var resp goalResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Found {
		t.Error("Expected found=false")
	}
}

func TestHandleGetGoalInvalidType(t *testing.T) {
	router, _, _ := setupRouter(t)
	w := doJSON(t, router, "GET", "/goals/daily?year=2025", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestHandleGetGoalMissingYear(t *testing.T) {
	router, _, _ := setupRouter(t)
	// An omitted year must not resolve to paths like goals/0/yearly.md.
	for _, target := range []string{"/goals/yearly", "/goals/vision", "/goals/yearly?year=-3"} {
		w := doJSON(t, router, "GET", target, nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("GET %s: expected status 400, got %d", target, w.Code)
		}
	}
}

func TestHandleGetGoalFocusContent(t *testing.T) {
	router, goals, _ := setupRouter(t)
	p, _ := period.FromFields(period.Yearly, 2025, 0, 0, 0)
	if err := goals.Write(p, "## 🏆 Fokus\n\n- Punkt A\n"); err != nil {
		t.Fatal(err)
	}

	w := doJSON(t, router, "GET", "/goals/yearly?year=2025", nil)
	var resp goalResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.FocusContent == nil || len(resp.FocusContent.Areas) != 1 {
		t.Fatalf("Expected parsed focus content, got %+v", resp.FocusContent)
	}
	if resp.FocusContent.Areas[0].Emoji != "🏆" {
		t.Errorf("Unexpected emoji %q", resp.FocusContent.Areas[0].Emoji)
	}
	if len(resp.Tasks) != 0 {
		t.Error("Focus documents must not carry a task list")
	}
}

func TestHandleToggleTask(t *testing.T) {
	router, goals, _ := setupRouter(t)
	p, _ := period.FromFields(period.Weekly, 2025, 0, 0, 3)
	if err := goals.Write(p, "- [ ] A\n- [ ] B\n"); err != nil {
		t.Fatal(err)
	}

	w := doJSON(t, router, "POST", "/goals/weekly/tasks/task-1", ToggleTaskRequest{
		Year: 2025, Week: 3, Completed: true,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	doc, _ := goals.Read(p)
	tasks := goal.ParseTasks(doc.Body)
	if tasks[0].Completed || !tasks[1].Completed {
		t.Errorf("Unexpected task state: %+v", tasks)
	}
}

func TestHandleToggleTaskNoDocument(t *testing.T) {
	router, _, _ := setupRouter(t)
	w := doJSON(t, router, "POST", "/goals/weekly/tasks/task-0", ToggleTaskRequest{
		Year: 2025, Week: 3, Completed: true,
	})
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestHandleCurrentGoals(t *testing.T) {
	router, goals, _ := setupRouter(t)
	if err := goals.Write(period.Current(period.Weekly, time.Now()), "- [ ] Nu\n"); err != nil {
		t.Fatal(err)
	}

	w := doJSON(t, router, "GET", "/goals/current", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var resp map[string]goalResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp) != 5 {
		t.Fatalf("Expected 5 period entries, got %d", len(resp))
	}
	if !resp["weekly"].Found {
		t.Error("Expected weekly to be found")
	}
	if resp["vision"].Found {
		t.Error("Expected vision to be missing")
	}
}

func TestHandleGoalTree(t *testing.T) {
	router, goals, _ := setupRouter(t)
	p, _ := period.FromFields(period.Monthly, 2025, 0, 1, 0)
	if err := goals.Write(p, "- [x] Done\n"); err != nil {
		t.Fatal(err)
	}

	w := doJSON(t, router, "GET", "/goals/tree?year=2025", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var tree goal.TreeNode
	if err := json.Unmarshal(w.Body.Bytes(), &tree); err != nil {
		t.Fatal(err)
	}
	if tree.Title != "2025" {
		t.Errorf("Unexpected root title %q", tree.Title)
	}

	w = doJSON(t, router, "GET", "/goals/tree", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 without year, got %d", w.Code)
	}
}

func TestHandleReflections(t *testing.T) {
	router, _, _ := setupRouter(t)

	w := doJSON(t, router, "PUT", "/reflections/weekly", WriteReflectionRequest{
		Year: 2025,
		Week: 3,
		Answers: map[string]string{
			"went-well": "Det hele.",
		},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, "GET", "/reflections?year=2025&type=weekly", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var resp struct {
		Reflections []struct {
			Path     string               `json:"path"`
			Sections []reflection.Section `json:"sections"`
		} `json:"reflections"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Reflections) != 1 {
		t.Fatalf("Expected 1 reflection, got %d", len(resp.Reflections))
	}
	if resp.Reflections[0].Sections[0].Answer != "Det hele." {
		t.Errorf("Unexpected answer %q", resp.Reflections[0].Sections[0].Answer)
	}
}

func TestHandleReflectionQuestions(t *testing.T) {
	router, _, _ := setupRouter(t)

	w := doJSON(t, router, "GET", "/reflections/questions?type=quarterly", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var resp struct {
		Questions []reflection.Question `json:"questions"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Questions) != 7 {
		t.Errorf("Expected 7 questions, got %d", len(resp.Questions))
	}

	w = doJSON(t, router, "GET", "/reflections/questions?type=daily", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for unknown type, got %d", w.Code)
	}
}

func TestHandleChat(t *testing.T) {
	router, goals, mockAI := setupRouter(t)
	if err := goals.Write(period.Current(period.Weekly, time.Now()), "- [ ] Ugens fokus\n"); err != nil {
		t.Fatal(err)
	}

	w := doJSON(t, router, "POST", "/chat", ChatRequest{Message: "Hvordan går det?"})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp map[string]string
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["answer"] != "Godt spørgsmål." {
		t.Errorf("Unexpected answer %q", resp["answer"])
	}
	// The prompt carries both the question and the goal context.
	if !bytes.Contains([]byte(mockAI.Prompt), []byte("Hvordan går det?")) {
		t.Error("Prompt missing the user message")
	}
	if !bytes.Contains([]byte(mockAI.Prompt), []byte("Ugens fokus")) {
		t.Error("Prompt missing the goal context")
	}
}

func TestHandleReflectionSummary(t *testing.T) {
	router, _, mockAI := setupRouter(t)
	mockAI.Response = "Flot uge."

	w := doJSON(t, router, "PUT", "/reflections/weekly", WriteReflectionRequest{
		Year: 2025, Week: 3,
		Answers: map[string]string{"went-well": "Alt lykkedes."},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	w = doJSON(t, router, "GET", "/reflections/weekly/summary?year=2025&week=3", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp map[string]string
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["summary"] != "Flot uge." {
		t.Errorf("Unexpected summary %q", resp["summary"])
	}
	if !bytes.Contains([]byte(mockAI.Prompt), []byte("Alt lykkedes.")) {
		t.Error("Prompt missing the reflection answers")
	}
	if !bytes.Contains([]byte(mockAI.Prompt), []byte("Uge 3, 2025")) {
		t.Error("Prompt missing the period label")
	}
}

func TestHandleReflectionSummaryMissing(t *testing.T) {
	router, _, _ := setupRouter(t)
	w := doJSON(t, router, "GET", "/reflections/weekly/summary?year=2025&week=3", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestHandleActivityWithoutRepo(t *testing.T) {
	router, _, _ := setupRouter(t)
	w := doJSON(t, router, "GET", "/activity", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 without a write log, got %d", w.Code)
	}
}

func TestHandleActivity(t *testing.T) {
	database, err := db.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer database.Close()
	if err := database.InitSchema(); err != nil {
		t.Fatal(err)
	}
	repo := db.NewRepository(database)

	store := vault.NewStore(t.TempDir())
	if err := store.EnsureLayout(); err != nil {
		t.Fatal(err)
	}
	router := NewRouter(goal.NewService(store), reflection.NewService(store), &MockGenerator{}, repo, nil)

	w := doJSON(t, router, "PUT", "/goals/weekly", WriteGoalRequest{Year: 2025, Week: 3, Body: "- [ ] A\n"})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	w = doJSON(t, router, "GET", "/activity", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Writes []struct {
			Path   string `json:"path"`
			Source string `json:"source"`
		} `json:"writes"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Writes) != 1 {
		t.Fatalf("Expected 1 write entry, got %d", len(resp.Writes))
	}
	if resp.Writes[0].Path != "goals/2025/q1/january/week-03.md" || resp.Writes[0].Source != "api" {
		t.Errorf("Unexpected entry: %+v", resp.Writes[0])
	}
}

func TestHandleChatValidation(t *testing.T) {
	router, _, _ := setupRouter(t)
	w := doJSON(t, router, "POST", "/chat", ChatRequest{Message: "   "})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for empty message, got %d", w.Code)
	}
}

func TestHandleChatAIError(t *testing.T) {
	router, _, mockAI := setupRouter(t)
	mockAI.Err = fmt.Errorf("upstream unavailable")

	w := doJSON(t, router, "POST", "/chat", ChatRequest{Message: "Hej"})
	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", w.Code)
	}
}
