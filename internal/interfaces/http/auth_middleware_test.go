package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	apphttp "github.com/jhoicas/Almacen-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Almacen-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = int64(42)
	testIssuer    = "almacen-api-test"
	testExpMin    = 60
)

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT y cargar locals
//   - RequireRole para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(allowedRoles ...entity.Role) *fiber.App {
	app := fiber.New(fiber.Config{
		// Silenciar errores internos en los tests
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	// Ruta protegida: JWT + RBAC
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":      true,
				"role":    apphttp.GetRole(c).String(),
				"user_id": apphttp.GetUserID(c),
				"name":    apphttp.GetFullName(c),
			})
		},
	)
	return app
}

// tokenForRole genera un JWT con el rol indicado.
func tokenForRole(t *testing.T, role entity.Role) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, int(role), "Usuario De Prueba", testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) (*http.Response, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded map[string]any
	if len(body) > 0 {
		_ = json.Unmarshal(body, &decoded)
	}
	return resp, decoded
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddlewareMissingToken(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)

	resp, body := doRequest(t, app, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, "Sin header debe dar 401")
	assert.Equal(t, "MISSING_TOKEN", body["code"])
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)

	resp, body := doRequest(t, app, "Token abc123")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, "Formato distinto de Bearer debe dar 401")
	assert.Equal(t, "INVALID_TOKEN", body["code"])
}

func TestAuthMiddlewareInvalidSignature(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)

	tok, err := pkgjwt.Generate("otra-clave-distinta", testUserID, int(entity.RoleAdmin), "X", testIssuer, testExpMin)
	require.NoError(t, err)
	resp, body := doRequest(t, app, "Bearer "+tok)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, "Firma con otra clave debe dar 401")
	assert.Equal(t, "INVALID_TOKEN", body["code"])
}

func TestAuthMiddlewareExpiredToken(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)

	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, int(entity.RoleAdmin), "X", testIssuer, -5)
	require.NoError(t, err)
	resp, _ := doRequest(t, app, "Bearer "+tok)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, "Token expirado debe dar 401")
}

func TestRequireRoleAllowsListedRole(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin, entity.RoleSeniorUser)

	resp, body := doRequest(t, app, tokenForRole(t, entity.RoleSeniorUser))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "SeniorUser", body["role"])
	assert.EqualValues(t, testUserID, body["user_id"])
	assert.Equal(t, "Usuario De Prueba", body["name"])
}

func TestRequireRoleRejectsOtherRole(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)

	resp, body := doRequest(t, app, tokenForRole(t, entity.RoleStorekeeper))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode, "Rol fuera de la lista debe dar 403")
	assert.Equal(t, "FORBIDDEN", body["code"])
}

func TestRequireRoleViewerCannotMutate(t *testing.T) {
	// El Viewer queda fuera de todos los grupos de mutación del ledger.
	app := buildTestApp(entity.RoleAdmin, entity.RoleSeniorUser, entity.RoleSeniorStorekeeper, entity.RoleStorekeeper)

	resp, _ := doRequest(t, app, tokenForRole(t, entity.RoleViewer))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestUnknownRoleDegradesToViewer(t *testing.T) {
	app := buildTestApp(entity.RoleViewer)

	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, 99, "X", testIssuer, testExpMin)
	require.NoError(t, err)
	resp, body := doRequest(t, app, "Bearer "+tok)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode, "Un role_id desconocido degrada a Viewer")
	assert.Equal(t, "Viewer", body["role"])
}
