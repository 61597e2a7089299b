package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/chillarlabs/chillar/internal/wallet/service"
	"github.com/chillarlabs/chillar/internal/wallet/settle"
	"github.com/chillarlabs/chillar/internal/wallet/store"
	"github.com/chillarlabs/chillar/pkg/httpx"
	"github.com/chillarlabs/chillar/pkg/jwtx"
	"github.com/chillarlabs/chillar/pkg/slogx"

	_ "github.com/chillarlabs/chillar/api/wallet" // Swagger docs
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

	store      store.Store
	settlement settle.Service

	AccountService       *service.AccountService
	SessionService       *service.SessionService
	AuthenticatorService *service.AuthenticatorService
	DelegationService    *service.DelegationService
	VaultService         *service.VaultService
	PaymentService       *service.PaymentService
	AttestService        *service.AttestService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	settlement settle.Service,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		settlement:   settlement,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAccounts()
	r.registerSessions()
	r.registerDevice()
	r.registerDelegations()
	r.registerPayments()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Chillar Wallet Core API
//	@version		0.1.0
//	@description	Key vault and delegated spend authorization engine for a phone-linked payment wallet.
//	@description
//	@description	Session tokens are EdDSA-signed JWTs minted by POST /v1/sessions after a PIN
//	@description	or device-authenticator unlock.
//
//	@contact.name				Chillar Labs
//	@contact.url				https://github.com/chillarlabs/chillar
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
//	@description				Wallet session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAccounts() {
	handler := &AccountsHandler{
		AccountService: r.AccountService,
	}

	// POST /accounts - onboarding, unauthenticated, moderate limit
	r.Mux.Handle("POST /v1/accounts",
		httpx.Chain(http.HandlerFunc(handler.HandleOnboard),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// GET /accounts/{id} - session-gated, must match the subject
	r.Mux.Handle("GET /v1/accounts/{id}",
		httpx.Chain(http.HandlerFunc(handler.HandleGet),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByAccount(httpx.LenientLimit),
		),
	)

	// POST /accounts/{id}/pin - strict limit, PIN attempts are guessable
	r.Mux.Handle("POST /v1/accounts/{id}/pin",
		httpx.Chain(http.HandlerFunc(handler.HandleChangePIN),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByAccount(httpx.StrictLimit),
		),
	)

	// POST /accounts/{id}/limit
	r.Mux.Handle("POST /v1/accounts/{id}/limit",
		httpx.Chain(http.HandlerFunc(handler.HandleSetLimit),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByAccount(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSessions() {
	handler := &SessionsHandler{SessionService: r.SessionService}

	// POST /sessions - unlock attempts, strict limit by IP
	r.Mux.Handle("POST /v1/sessions",
		httpx.Chain(http.HandlerFunc(handler.HandleUnlock),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerDevice() {
	handler := &DeviceHandler{
		AccountService:       r.AccountService,
		AuthenticatorService: r.AuthenticatorService,
	}

	r.Mux.Handle("POST /v1/device/enroll",
		httpx.Chain(http.HandlerFunc(handler.HandleEnroll),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByAccount(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("POST /v1/device/verify",
		httpx.Chain(http.HandlerFunc(handler.HandleVerify),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByAccount(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerDelegations() {
	handler := &DelegationsHandler{
		AccountService:    r.AccountService,
		DelegationService: r.DelegationService,
		VaultService:      r.VaultService,
	}

	r.Mux.Handle("POST /v1/delegations",
		httpx.Chain(http.HandlerFunc(handler.HandleGrant),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByAccount(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("GET /v1/delegations",
		httpx.Chain(http.HandlerFunc(handler.HandleList),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByAccount(httpx.LenientLimit),
		),
	)

	r.Mux.Handle("DELETE /v1/delegations/{id}",
		httpx.Chain(http.HandlerFunc(handler.HandleRevoke),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByAccount(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("POST /v1/delegations/{id}/limit",
		httpx.Chain(http.HandlerFunc(handler.HandleUpdateLimit),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByAccount(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerPayments() {
	payments := &PaymentsHandler{PaymentService: r.PaymentService}
	proofs := &ProofsHandler{AttestService: r.AttestService}

	r.Mux.Handle("POST /v1/payments",
		httpx.Chain(http.HandlerFunc(payments.HandleExecute),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByAccount(httpx.ModerateLimit),
		),
	)

	// Proofs are public: payout verifiers hold only the settlement ref.
	r.Mux.Handle("GET /v1/proofs/{ref}",
		httpx.Chain(http.HandlerFunc(proofs.HandleGet),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.verifier, r.settlement))
}
