package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/borgia-ae/borgia-api/internal/application/auth"
	"github.com/borgia-ae/borgia-api/internal/application/catalog"
	"github.com/borgia-ae/borgia-api/internal/application/dto"
	"github.com/borgia-ae/borgia-api/internal/application/ledger"
	"github.com/borgia-ae/borgia-api/internal/application/usecase"
	"github.com/borgia-ae/borgia-api/internal/application/workboard"
	"github.com/borgia-ae/borgia-api/internal/domain/authz"
	"github.com/borgia-ae/borgia-api/internal/domain/entity"
	"github.com/borgia-ae/borgia-api/internal/infrastructure/memory"
	"github.com/borgia-ae/borgia-api/internal/infrastructure/pdf"
	apphttp "github.com/borgia-ae/borgia-api/internal/interfaces/http"
	pkgjwt "github.com/borgia-ae/borgia-api/pkg/jwt"
	"github.com/borgia-ae/borgia-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret  = "test-secret-key-for-unit-tests"
	testIssuer     = "borgia-test"
	testExpMin     = 60
	testCookie     = "borgia_session"
	defaultShopID  = 1
	adminPassword  = "admin-password"
	memberPassword = "member-password"
)

// memRevoker revocador en memoria para comprobar el logout.
type memRevoker struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
}

func (r *memRevoker) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revoked[jti] = ttl
	return nil
}

func (r *memRevoker) IsRevoked(_ context.Context, jti string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.revoked[jti]
	return ok, nil
}

type harness struct {
	app     *fiber.App
	st      *memory.Store
	auth    *auth.AuthUseCase
	shops   *usecase.ShopUseCase
	revoker *memRevoker
}

// newHarness monta la API completa sobre el store en memoria con el catálogo sembrado.
func newHarness(t *testing.T) *harness {
	t.Helper()
	log := logger.Nop()
	cat, err := catalog.Load()
	require.NoError(t, err)
	st := memory.NewStore()
	require.NoError(t, catalog.NewBootstrap(cat, st.Permissions(), st.Groups(), st.Users(), st.Shops(), log).
		Run(defaultShopID, adminPassword))
	baseline, err := authz.LoadBaseline(st.Groups(), "members")
	require.NoError(t, err)

	revoker := &memRevoker{revoked: map[string]time.Duration{}}
	authUC := auth.NewAuthUseCase(st.Users(), st.Groups(), st.Shops(), revoker,
		auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}, defaultShopID)
	settingUC := usecase.NewSettingUseCase(st.Settings())
	shopUC := usecase.NewShopUseCase(st.Shops(), st.Groups(), st, cat, defaultShopID, log)
	builder := workboard.NewErrorContextBuilder(st.Groups(), shopUC, baseline)

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(builder, log)})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:      authUC,
		UserUC:      usecase.NewUserUseCase(st.Users(), st.Groups(), st, "members"),
		GroupUC:     usecase.NewGroupUseCase(st.Groups(), st.Users()),
		ShopUC:      shopUC,
		ProductUC:   usecase.NewProductUseCase(st.Products(), settingUC),
		SettingUC:   settingUC,
		ListingUC:   usecase.NewListingUseCase(st.Users(), st.Groups(), st.Shops(), st.Products(), st.Ledger(), settingUC, defaultShopID),
		LedgerUC:    ledger.NewLedgerUseCase(st, st.Ledger(), st.Products(), settingUC, log),
		WorkboardUC: workboard.NewWorkboardUseCase(st.Users(), st.Groups(), st.Shops(), st.Products(), st.Ledger(), pdf.NewCheckupReport()),
		Resolver:    authz.NewResolver(st.Shops(), st.Products()),
		Metrics:     apphttp.NewMetrics("borgia_test"),
		Cookie:      apphttp.SessionCookie{Name: testCookie},
		LoginPerMin: 600,
		LoginBurst:  100,
		Log:         log,
	})
	return &harness{app: app, st: st, auth: authUC, shops: shopUC, revoker: revoker}
}

// shop crea una tienda con sus grupos chiefs-/associates-.
func (h *harness) shop(t *testing.T, name string) *dto.ShopResponse {
	t.Helper()
	s, err := h.shops.Create(context.Background(), dto.CreateShopRequest{Name: name, Description: "Magasin " + name, Color: "#00ff00"})
	require.NoError(t, err)
	return s
}

// user crea un usuario activo con saldo y lo añade a los grupos indicados.
func (h *harness) user(t *testing.T, username, balance string, groups ...string) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(memberPassword), bcrypt.MinCost)
	require.NoError(t, err)
	u := &entity.User{
		Username: username, FirstName: "F" + username, LastName: "L" + username,
		PasswordHash: string(hash), Balance: decimal.RequireFromString(balance),
		IsActive: true, DateJoined: time.Now(),
	}
	require.NoError(t, h.st.Users().Create(u))
	for _, name := range groups {
		g, err := h.st.Groups().GetByName(name)
		require.NoError(t, err)
		require.NotNil(t, g, "grupo %s", name)
		require.NoError(t, h.st.Groups().AddMember(g.ID, u.ID))
	}
	return u
}

// admin devuelve el administrador sembrado por el bootstrap (miembro de presidents).
func (h *harness) admin(t *testing.T) *entity.User {
	t.Helper()
	u, err := h.st.Users().GetByUsername(entity.ReservedUsername)
	require.NoError(t, err)
	require.NotNil(t, u)
	return u
}

// product crea un producto activo con precio manual en la tienda.
func (h *harness) product(t *testing.T, shopID int64, name, price string) *entity.Product {
	t.Helper()
	p := &entity.Product{
		ShopID: shopID, Name: name, IsManualPrice: true, ManualPrice: decimal.RequireFromString(price),
		CorrectingFactor: decimal.NewFromInt(1), IsActive: true,
	}
	require.NoError(t, h.st.Products().Create(p))
	return p
}

// bearer genera un header Authorization para el usuario.
func bearer(t *testing.T, u *entity.User) string {
	t.Helper()
	s, err := pkgjwt.Generate(testJWTSecret, u.ID, u.Username, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + s.Token
}

// do lanza la petición con el header Authorization dado (vacío = anónimo).
func (h *harness) do(t *testing.T, method, path, authHeader string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = strings.NewReader(string(raw))
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := h.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}
