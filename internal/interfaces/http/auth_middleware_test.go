package http

import (
	"encoding/json"
	"io"
	nethttp "net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/AgroPedidos-api/internal/application/dto"
	"github.com/jhoicas/AgroPedidos-api/internal/domain/entity"
	"github.com/jhoicas/AgroPedidos-api/pkg/jwt"
)

const testSecret = "secreto-de-prueba"

// buildTestApp arma una app mínima con las mismas cadenas de middleware que el
// router real: una ruta autenticada y una restringida a staff.
func buildTestApp() *fiber.App {
	app := fiber.New()
	authed := app.Group("/", AuthMiddleware(testSecret))
	authed.Get("/perfil", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": GetUserID(c), "role": GetRole(c)})
	})
	staff := authed.Group("/inventario", RequireRole(entity.RoleAdmin, entity.RoleStaff))
	staff.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	return app
}

func tokenForRole(t *testing.T, userID, role string) string {
	t.Helper()
	token, err := jwt.Generate(testSecret, userID, role, "agropedidos-test", 15)
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, app *fiber.App, path, token string) *nethttp.Response {
	t.Helper()
	req, err := nethttp.NewRequest(nethttp.MethodGet, path, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func errorCode(t *testing.T, resp *nethttp.Response) string {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var e dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &e))
	return e.Code
}

func TestAuthMiddleware_SinToken(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "/perfil", "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", errorCode(t, resp))
}

func TestAuthMiddleware_FormatoInvalido(t *testing.T) {
	app := buildTestApp()
	req, err := nethttp.NewRequest(nethttp.MethodGet, "/perfil", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Basic abc123")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", errorCode(t, resp))
}

func TestAuthMiddleware_TokenValido_ExponeClaims(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "/perfil", tokenForRole(t, "user-42", entity.RoleRetailer))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var got map[string]string
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "user-42", got["user_id"])
	assert.Equal(t, entity.RoleRetailer, got["role"])
}

func TestAuthMiddleware_FirmaIncorrecta(t *testing.T) {
	app := buildTestApp()
	token, err := jwt.Generate("otro-secreto", "user-1", entity.RoleAdmin, "agropedidos-test", 15)
	require.NoError(t, err)
	resp := doRequest(t, app, "/perfil", token)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", errorCode(t, resp))
}

func TestAuthMiddleware_TokenExpirado(t *testing.T) {
	app := buildTestApp()
	token, err := jwt.Generate(testSecret, "user-1", entity.RoleAdmin, "agropedidos-test", -5)
	require.NoError(t, err)
	resp := doRequest(t, app, "/perfil", token)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", errorCode(t, resp))
}

func TestRequireRole_StaffAccede(t *testing.T) {
	app := buildTestApp()
	for _, role := range []string{entity.RoleAdmin, entity.RoleStaff} {
		resp := doRequest(t, app, "/inventario/", tokenForRole(t, "emp-1", role))
		assert.Equal(t, fiber.StatusOK, resp.StatusCode, "rol %s", role)
	}
}

func TestRequireRole_RetailerRechazado(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "/inventario/", tokenForRole(t, "user-1", entity.RoleRetailer))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", errorCode(t, resp))
}

func TestRequireRole_TokenSinRol(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "/inventario/", tokenForRole(t, "user-1", ""))
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_ROLE", errorCode(t, resp))
}

func TestJWT_GenerateParse_RoundTrip(t *testing.T) {
	token, err := jwt.Generate(testSecret, "user-99", entity.RoleStaff, "agropedidos-test", 60)
	require.NoError(t, err)

	userID, role, err := jwt.Parse(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "user-99", userID)
	assert.Equal(t, entity.RoleStaff, role)

	_, _, err = jwt.Parse("secreto-equivocado", token)
	assert.Error(t, err)
}
