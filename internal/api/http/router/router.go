package router

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/cypresslabs/identity-server/internal/api/http/handler"
	"github.com/cypresslabs/identity-server/internal/api/http/middleware"
	"github.com/cypresslabs/identity-server/internal/logger"
	"github.com/cypresslabs/identity-server/internal/model"
)

// Router wires the HTTP handlers, middleware and routes.
type Router struct {
	userService    handler.UserService
	accounts       middleware.AccountLookup
	tokens         middleware.TokenService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// New creates a new Router instance.
func New(
	userService handler.UserService,
	accounts middleware.AccountLookup,
	tokens middleware.TokenService,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		userService:    userService,
		accounts:       accounts,
		tokens:         tokens,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Handler builds the route tree. Routes under /api/user are public for
// registration and login; the rest require a bearer token.
func (r *Router) Handler() http.Handler {
	root := mux.NewRouter()

	logging := middleware.NewLogging(r.logger)
	root.Use(logging.Handler)

	userHandler := handler.NewUser(r.userService, r.contextManager, r.logger)

	public := root.PathPrefix("/api/user").Subrouter()
	public.HandleFunc("/send-code", userHandler.SendCode).Methods(http.MethodPost, http.MethodOptions)
	public.HandleFunc("/register", userHandler.Register).Methods(http.MethodPost, http.MethodOptions)
	public.HandleFunc("/login-by-password", userHandler.LoginByPassword).Methods(http.MethodPost, http.MethodOptions)
	public.HandleFunc("/login-by-code", userHandler.LoginByCode).Methods(http.MethodPost, http.MethodOptions)

	authenticate := middleware.NewAuthenticate(r.tokens, r.accounts, r.contextManager, r.logger)

	private := root.PathPrefix("/api/user").Subrouter()
	private.Use(authenticate.Handler)
	private.HandleFunc("/me", userHandler.Me).Methods(http.MethodGet, http.MethodOptions)
	private.HandleFunc("/update", userHandler.Update).Methods(http.MethodPut, http.MethodOptions)
	private.HandleFunc("/set-password", userHandler.SetPassword).Methods(http.MethodPost, http.MethodOptions)
	private.HandleFunc("/set-phone", userHandler.SetPhone).Methods(http.MethodPost, http.MethodOptions)

	return root
}
