package http

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"coursemate-ai/internal/handlers"
	"coursemate-ai/internal/rag"
	"coursemate-ai/internal/storage"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	DB              *sql.DB
	Chats           storage.ChatStore
	Messages        storage.MessageStore
	Academics       storage.AcademicsStore
	Engine          rag.Engine
	Ingester        handlers.Ingester
	SearchAvailable bool
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(CORS)
	r.Use(LoggerMiddleware)
	r.Use(StudentIdentity)

	chatHandler := handlers.NewChatHandler(deps.Chats, deps.Messages, deps.Academics, deps.Engine)
	materialHandler := handlers.NewMaterialHandler(deps.Ingester, deps.Academics)
	healthHandler := handlers.NewHealthHandler(deps.DB, deps.SearchAvailable)

	r.Route("/api", func(r chi.Router) {
		r.Post("/chats", chatHandler.StartChat)
		r.Get("/chats", chatHandler.ListChats)
		r.Get("/chats/{chatID}/messages", chatHandler.ListMessages)
		r.Post("/chats/{chatID}/message", chatHandler.SendMessage)
		r.Post("/subjects/{subjectID}/materials", materialHandler.Upload)
	})

	r.Method(http.MethodGet, "/healthz", healthHandler)

	return r
}
