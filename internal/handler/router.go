package handler

import (
	"fmt"
	"net/http"

	apperrors "rfp-similarity/pkg/errors"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// NewRouter creates a new HTTP router with all routes configured.
// Middlewares wrap the whole handler, so unmatched routes and CORS
// preflights pass through them too; the first one is outermost.
func NewRouter(
	analysisHandler *AnalysisHandler,
	middlewares ...mux.MiddlewareFunc,
) http.Handler {
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(notFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok","service":"rfp-similarity"}`))
	}).Methods(http.MethodGet)

	router.HandleFunc("/analyze", analysisHandler.Analyze).Methods(http.MethodPost)
	router.HandleFunc("/reference", analysisHandler.GetReference).Methods(http.MethodGet)

	// Any origin, method and header is allowed.
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	})

	handler := c.Handler(router)
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return handler
}

func notFound(w http.ResponseWriter, r *http.Request) {
	err := apperrors.NewNotFoundError(fmt.Sprintf("no route for %s %s", r.Method, r.URL.Path))
	writeError(w, apperrors.GetStatusCode(err), err.Error())
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, fmt.Sprintf("method %s not allowed on %s", r.Method, r.URL.Path))
}
