package api

import (
	"net/http"

	"github.com/jkrogh/fokus/pkg/ai"
	"github.com/jkrogh/fokus/pkg/db"
	"github.com/jkrogh/fokus/pkg/goal"
	"github.com/jkrogh/fokus/pkg/reflection"
	"github.com/jkrogh/fokus/pkg/sync"
)

// NewRouter creates a new HTTP router
func NewRouter(goals *goal.Service, reflections *reflection.Service, aiClient ai.Generator, repo *db.Repository, gitManager *sync.GitManager) *http.ServeMux {
	mux := http.NewServeMux()

	h := &Handler{
		Goals:       goals,
		Reflections: reflections,
		Tree:        goal.NewTreeBuilder(goals.Store()),
		AI:          aiClient,
		Repo:        repo,
		Git:         gitManager,
	}

	mux.HandleFunc("GET /goals/current", h.HandleCurrentGoals)
	mux.HandleFunc("GET /goals/tree", h.HandleGoalTree)
	mux.HandleFunc("GET /goals/{type}", h.HandleGetGoal)
	mux.HandleFunc("PUT /goals/{type}", h.HandleWriteGoal)
	mux.HandleFunc("POST /goals/{type}/tasks/{id}", h.HandleToggleTask)
	mux.HandleFunc("GET /reflections", h.HandleListReflections)
	mux.HandleFunc("GET /reflections/questions", h.HandleReflectionQuestions)
	mux.HandleFunc("GET /reflections/{type}/summary", h.HandleReflectionSummary)
	mux.HandleFunc("PUT /reflections/{type}", h.HandleWriteReflection)
	mux.HandleFunc("GET /activity", h.HandleActivity)
	mux.HandleFunc("POST /chat", h.HandleChat)

	return mux
}
