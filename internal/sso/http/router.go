package http

import (
	"log/slog"
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/aussiebroadwan/sso/api/sso" // Swagger docs
	"github.com/aussiebroadwan/sso/internal/sso/metrics"
	"github.com/aussiebroadwan/sso/internal/sso/service"
	"github.com/aussiebroadwan/sso/internal/sso/store"
	"github.com/aussiebroadwan/sso/pkg/httpx"
	"github.com/aussiebroadwan/sso/pkg/slogx"
)

//go:generate swag init --generalInfo router.go --dir ./,../../../pkg/authsdk --output ../../../api/sso --outputTypes go --packageName sso

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	adminToken   string
	cors         httpx.CORSConfig
	startTime    time.Time
	logger       *slog.Logger
	metrics      *metrics.Metrics

	store         store.Store
	TokenService  *service.TokenService
	UserService   *service.UserService
	ClientService *service.ClientService
}

// RouterOption customises a Router.
type RouterOption func(*Router)

// WithAdminToken enables the admin API behind the given bearer token.
func WithAdminToken(token string) RouterOption {
	return func(r *Router) { r.adminToken = token }
}

// WithCORS replaces httpx.DefaultCORS for the token endpoints.
func WithCORS(cfg httpx.CORSConfig) RouterOption {
	return func(r *Router) { r.cors = cfg }
}

// WithMetrics instruments every route and serves /metrics.
func WithMetrics(m *metrics.Metrics) RouterOption {
	return func(r *Router) { r.metrics = m }
}

func NewRouter(
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
	opts ...RouterOption,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		cors:         httpx.DefaultCORS,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerOAuth2()
	r.registerAdmin()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			AussieBroadWAN Single Sign-On API
//	@version		0.1.0
//	@description	Token lifecycle for sessions shared by independently deployed applications.
//	@description
//	@description				Access and refresh tokens are opaque. Relying parties refresh, revoke and
//	@description				resolve them to user claims through this service.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/sso
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Opaque access token. Format: "Bearer {token}".
//
//	@securityDefinitions.apikey	AdminToken
//	@in							header
//	@name						Authorization
//	@description				Static admin token (AUTH_ADMIN_TOKEN). Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// handleCORS registers h under pattern with CORS and instrumentation. Method
// filtering is left to the CORS middleware so disallowed methods get a JSON
// 405 carrying the CORS headers.
func (r *Router) handleCORS(pattern string, h http.Handler, methods []string, mws ...httpx.Middleware) {
	chain := append([]httpx.Middleware{
		r.metrics.Instrument(pattern),
		httpx.CORS(r.cors, methods...),
	}, mws...)
	r.Mux.Handle(pattern, httpx.Chain(h, chain...))
}

func (r *Router) registerOAuth2() {
	post := []string{http.MethodPost}

	// POST /refresh - strict rate limit by IP (refresh tokens are bearer credentials)
	refreshHandler := &RefreshHandler{Tokens: r.TokenService, Metrics: r.metrics}
	r.handleCORS("/v1/oauth2/refresh", refreshHandler, post,
		httpx.RateLimitByIP(httpx.StrictLimit),
	)

	// POST /revoke - strict rate limit by IP and client (client secret checks)
	revokeHandler := &RevokeHandler{
		Clients: r.ClientService,
		Tokens:  r.TokenService,
		Metrics: r.metrics,
	}
	r.handleCORS("/v1/oauth2/revoke", revokeHandler, post,
		httpx.RateLimitByIPAndClient(httpx.StrictLimit),
	)

	// GET|POST /userinfo - lenient rate limit (relying parties poll it)
	userInfoHandler := &UserInfoHandler{Tokens: r.TokenService, Metrics: r.metrics}
	r.handleCORS("/v1/oauth2/userinfo", userInfoHandler, []string{http.MethodGet, http.MethodPost},
		httpx.RateLimitByIP(httpx.LenientLimit),
	)
}

func (r *Router) registerAdmin() {
	admin := func(route string, h http.HandlerFunc) http.Handler {
		return httpx.Chain(h,
			r.metrics.Instrument(route),
			httpx.RateLimitByIP(httpx.ModerateLimit),
			httpx.RequireAdminToken(r.adminToken, bearerRealm),
		)
	}

	clients := &ClientsHandler{ClientService: r.ClientService}
	r.Mux.Handle("POST /v1/clients", admin("/v1/clients", clients.HandleCreate))
	r.Mux.Handle("GET /v1/clients", admin("/v1/clients", clients.HandleList))
	r.Mux.Handle("DELETE /v1/clients/{id}", admin("/v1/clients/{id}", clients.HandleDelete))

	users := &UsersHandler{UserService: r.UserService}
	r.Mux.Handle("POST /v1/users", admin("/v1/users", users.HandleCreate))
	r.Mux.Handle("GET /v1/users/{id}", admin("/v1/users/{id}", users.HandleGet))

	sessions := &SessionsHandler{Tokens: r.TokenService, Metrics: r.metrics}
	r.Mux.Handle("POST /v1/sessions", admin("/v1/sessions", sessions.HandleCreate))
}

func (r *Router) registerSystem() {
	// Health check endpoints - public rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)

	if r.metrics != nil {
		r.Mux.Handle("GET /metrics", r.metrics.Handler())
	}

	r.Mux.Handle("/swagger/", httpx.Chain(httpSwagger.Handler(),
		httpx.RateLimitByIP(httpx.PublicLimit),
	))
}
