package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-club-server/auth"
	"github.com/jrsteele09/go-club-server/content"
	"github.com/jrsteele09/go-club-server/internal/config"
	"github.com/jrsteele09/go-club-server/token"
	"github.com/jrsteele09/go-club-server/uploads"
	"github.com/rs/zerolog/log"
)

// Pinger reports whether a backing store is reachable. *sqlx.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Deps are the services the handlers call into
type Deps struct {
	Auth    *auth.Service
	Tokens  *token.Manager
	Content content.Repo
	Uploads uploads.Store
	DB      Pinger // optional, checked by /health
}

type Server struct {
	env     string // Environment (e.g., "DEV", "PROD")
	mux     *http.ServeMux
	handler http.HandlerFunc
	routes  []string
	config  config.Config

	auth    *auth.Service
	tokens  *token.Manager
	content content.Repo
	uploads uploads.Store
	db      Pinger
}

func New(config config.Config, deps Deps) (*Server, error) {
	if deps.Auth == nil || deps.Tokens == nil {
		return nil, errors.New("[Server New] auth service and token manager are required")
	}
	if deps.Content == nil || deps.Uploads == nil {
		return nil, errors.New("[Server New] content repo and upload store are required")
	}

	s := &Server{
		env:     config.GetEnv(),
		mux:     http.NewServeMux(),
		config:  config,
		auth:    deps.Auth,
		tokens:  deps.Tokens,
		content: deps.Content,
		uploads: deps.Uploads,
		db:      deps.DB,
	}
	// CORS wraps the mux so preflight requests never reach method-bound patterns
	s.handler = s.CorsMiddleware(s.mux.ServeHTTP)

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

// Routes returns the registered patterns in registration order
func (s *Server) Routes() []string {
	return append([]string(nil), s.routes...)
}

func (s *Server) logRoutes() {
	if s.env != config.EnvDev {
		return
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)
		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	color, ok := methodColors[method]
	if !ok {
		color = Gray
	}
	log.Debug().Msgf("[%s] %s", color+fmt.Sprintf("%-7s", method)+ResetColor, path)
}
