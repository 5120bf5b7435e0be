package http_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/borgia-ae/borgia-api/internal/application/dto"
	"github.com/borgia-ae/borgia-api/internal/domain/entity"
	apphttp "github.com/borgia-ae/borgia-api/internal/interfaces/http"
	pkgjwt "github.com/borgia-ae/borgia-api/pkg/jwt"
	"github.com/borgia-ae/borgia-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests SessionMiddleware
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: anónimo en el panel de presidents → 302 al login con next.
func TestSession_AnonimoRedirigeAlLoginConNext(t *testing.T) {
	h := newHarness(t)
	resp := h.do(t, http.MethodGet, "/managers/", "", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode, "anónimo debe ser redirigido")
	loc, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, apphttp.LoginPath, loc.Path)
	assert.Equal(t, "/managers/", loc.Query().Get("next"), "next debe ser la ruta original")
}

// Caso 1b: el redirect conserva la query original.
func TestSession_AnonimoConservaQueryEnNext(t *testing.T) {
	h := newHarness(t)
	resp := h.do(t, http.MethodGet, "/members/api/user/?order_by=balance", "", nil)
	defer resp.Body.Close()

	require.Equal(t, http.StatusFound, resp.StatusCode)
	loc, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/members/api/user/?order_by=balance", loc.Query().Get("next"))
}

// Caso 2: Bearer inválido → 401 (clientes API no se redirigen).
func TestSession_BearerInvalido_Retorna401(t *testing.T) {
	h := newHarness(t)
	resp := h.do(t, http.MethodGet, "/members/", "Bearer token.invalido.aqui", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

// Caso 2b: header Authorization sin esquema Bearer → 401.
func TestSession_HeaderMalFormado_Retorna401(t *testing.T) {
	h := newHarness(t)
	resp := h.do(t, http.MethodGet, "/members/", "Basic abc", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Caso 3: token firmado con otro secret → 401.
func TestSession_SecretIncorrecto_Retorna401(t *testing.T) {
	h := newHarness(t)
	u := h.user(t, "alice", "0", "members")
	s, err := pkgjwt.Generate("otro-secret-completamente-distinto", u.ID, u.Username, testIssuer, testExpMin)
	require.NoError(t, err)

	resp := h.do(t, http.MethodGet, "/members/", "Bearer "+s.Token, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "secret incorrecto debe invalidar el token")
}

// Caso 4: sesión en cookie válida → 200 en el panel de miembros.
func TestSession_CookieValida_Retorna200(t *testing.T) {
	h := newHarness(t)
	u := h.user(t, "alice", "10", "members")
	s, err := pkgjwt.Generate(testJWTSecret, u.ID, u.Username, testIssuer, testExpMin)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/members/", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: s.Token})
	resp, err := h.app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[dto.MembersWorkboardResponse](t, resp)
	assert.Equal(t, "alice", body.User.Username)
}

// Caso 5: usuario desactivado con token vigente → se le trata como anónimo.
func TestSession_UsuarioInactivo_Retorna401(t *testing.T) {
	h := newHarness(t)
	u := h.user(t, "alice", "0", "members")
	auth := bearer(t, u)
	u.IsActive = false
	require.NoError(t, h.st.Users().Update(u))

	resp := h.do(t, http.MethodGet, "/members/", auth, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireActingGroup
// ──────────────────────────────────────────────────────────────────────────────

func TestActingGroup_GrupoInexistente_Retorna404(t *testing.T) {
	h := newHarness(t)
	u := h.user(t, "alice", "0", "members")

	resp := h.do(t, http.MethodGet, "/nogroup/shops/", bearer(t, u), nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestActingGroup_NoMiembro_Retorna403(t *testing.T) {
	h := newHarness(t)
	u := h.user(t, "alice", "0", "members")

	resp := h.do(t, http.MethodGet, "/presidents/shops/", bearer(t, u), nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "FORBIDDEN", body.Code)
	require.NotNil(t, body.Context, "los 403 llevan contexto de navegación")
	assert.Equal(t, "presidents", body.Context.GroupName, "el grupo del path existe aunque el usuario no sea miembro")
}

// El middleware deja el grupo en Locals para los handlers.
func TestActingGroup_GuardaGrupoEnLocals(t *testing.T) {
	h := newHarness(t)
	u := h.user(t, "alice", "0", "members")

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(nil, logger.Nop())})
	app.Get("/:group_name/whoami",
		apphttp.SessionMiddleware(h.auth, testCookie),
		apphttp.RequireActingGroup(groupFinder{h}),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{
				"user_id": apphttp.GetUserID(c),
				"group":   apphttp.GetActingGroup(c).Name,
			})
		},
	)
	req := httptest.NewRequest(http.MethodGet, "/members/whoami", nil)
	req.Header.Set("Authorization", bearer(t, u))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[map[string]any](t, resp)
	assert.Equal(t, float64(u.ID), body["user_id"])
	assert.Equal(t, "members", body["group"])
}

type groupFinder struct{ h *harness }

func (f groupFinder) GetByName(name string) (*entity.Group, error) {
	return f.h.st.Groups().GetByName(name)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests LoginRateLimit
// ──────────────────────────────────────────────────────────────────────────────

func TestLoginRateLimit_AgotaBurst_Retorna429(t *testing.T) {
	app := fiber.New()
	app.Post("/login", apphttp.LoginRateLimit(1, 2), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/login", strings.NewReader("")), -1)
		require.NoError(t, err)
		codes = append(codes, resp.StatusCode)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}
