package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/nestnote/nestnote/internal/session/service"
	"github.com/nestnote/nestnote/internal/session/store"
	"github.com/nestnote/nestnote/pkg/httpx"
	"github.com/nestnote/nestnote/pkg/jwtx"
	"github.com/nestnote/nestnote/pkg/slogx"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store            store.Store
	DirectoryService *service.DirectoryService
	SessionService   *service.SessionService
	InviteService    *service.InviteService
	JoinService      *service.JoinService
	SelectionService *service.SelectionService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerSitters()
	r.registerSessions()
	r.registerInvites()
	r.registerJoin()
	r.registerSelection()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			NestNote Session Service API
//	@version		0.1.0
//	@description	Caregiving session coordination: saved sitter directories, session invites with 6-digit join codes, and the sitter-side join flow.
//	@description
//	@description				Callers authenticate with bearer JWTs minted by the NestNote identity service.
//
//	@contact.name				NestNote Team
//	@contact.url				https://github.com/nestnote/nestnote
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
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerSitters() {
	h := &SittersHandler{DirectoryService: r.DirectoryService}

	// Reads get a lenient per-user limit, writes a moderate one.
	r.Mux.Handle("GET /v1/sitters",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("sitters:read"),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("POST /v1/sitters",
		httpx.Chain(http.HandlerFunc(h.HandleAdd),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("sitters:write"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("PUT /v1/sitters/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleUpdate),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("sitters:write"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("DELETE /v1/sitters/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleDelete),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("sitters:write"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSessions() {
	h := &SessionsHandler{SessionService: r.SessionService}

	r.Mux.Handle("POST /v1/sessions",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("sessions:write"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /v1/sessions",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("sessions:read"),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /v1/sessions/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("sessions:read"),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	// Sitter-side view of accepted sessions.
	r.Mux.Handle("GET /v1/sitter-sessions",
		httpx.Chain(http.HandlerFunc(h.HandleListSitterSessions),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("join:read"),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerInvites() {
	h := &InvitesHandler{InviteService: r.InviteService}
	share := &InviteShareHandler{InviteService: r.InviteService}

	r.Mux.Handle("POST /v1/sessions/{id}/invite",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("invites:write"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /v1/invites/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("invites:read"),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("PATCH /v1/invites/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleUpdate),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("invites:write"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("DELETE /v1/invites/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleDelete),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("invites:write"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /v1/invites/{id}/cancel",
		httpx.Chain(http.HandlerFunc(h.HandleCancel),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("invites:write"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /v1/invites/{id}/share",
		httpx.Chain(http.HandlerFunc(share.HandleShare),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("invites:read"),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /v1/invites/{id}/qr",
		httpx.Chain(http.HandlerFunc(share.HandleQR),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("invites:read"),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerJoin() {
	h := &JoinHandler{JoinService: r.JoinService}

	// POST /join/validate - public, strict rate limit by IP + submitted code.
	// The 6-digit code space is small, so guessing must be expensive.
	r.Mux.Handle("POST /v1/join/validate",
		httpx.Chain(http.HandlerFunc(h.HandleValidate),
			httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "code"),
		),
	)

	r.Mux.Handle("POST /v1/join/accept",
		httpx.Chain(http.HandlerFunc(h.HandleAccept),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("join:write"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /v1/join/decline",
		httpx.Chain(http.HandlerFunc(h.HandleDecline),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("join:write"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSelection() {
	h := &SelectionHandler{SelectionService: r.SelectionService}

	secured := func(next http.HandlerFunc) http.Handler {
		return httpx.Chain(next,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("invites:write"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		)
	}

	r.Mux.Handle("POST /v1/sessions/{id}/selection/begin", secured(h.HandleBegin))
	r.Mux.Handle("POST /v1/sessions/{id}/selection/select", secured(h.HandleSelect))
	r.Mux.Handle("POST /v1/sessions/{id}/selection/confirm", secured(h.HandleConfirm))
	r.Mux.Handle("POST /v1/sessions/{id}/selection/commit", secured(h.HandleCommit))
	r.Mux.Handle("GET /v1/sessions/{id}/selection", secured(h.HandleStatus))
	r.Mux.Handle("DELETE /v1/sessions/{id}/selection", secured(h.HandleEnd))
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
