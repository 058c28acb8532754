package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"fish-ledger/internal/model"
	"fish-ledger/internal/repository"
	"fish-ledger/internal/service"
	"fish-ledger/pkg/config"
	"fish-ledger/pkg/database"
	"fish-ledger/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*gorm.DB, repository.UserRepository, string) {
	t.Helper()
	jwt.Configure("middleware-test-secret", time.Hour)
	log := logrus.New()
	log.SetOutput(io.Discard)

	cfg := &config.Config{DBDriver: "sqlite", DBPath: filepath.Join(t.TempDir(), "auth.db"), SlowQuery: time.Second}
	db, err := database.Connect(cfg, log)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })

	userRepo := repository.NewUserRepo(db)
	require.NoError(t, service.SeedAccess(repository.NewPrivilegeRepo(db), repository.NewRoleRepo(db), userRepo,
		"owner@example.com", "secret123", log))

	res, err := service.NewAuthService(userRepo, log).Login("owner@example.com", "secret123")
	require.NoError(t, err)
	return db, userRepo, res.Token
}

func call(t *testing.T, app *fiber.App, header string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	return resp.StatusCode
}

func TestRequireAuth(t *testing.T) {
	_, userRepo, token := setup(t)

	app := fiber.New()
	app.Get("/protected", RequireAuth(userRepo, 30*time.Minute), RequirePrivilege("sale:delete"),
		func(c *fiber.Ctx) error { return c.SendString(c.Locals("user_email").(string)) })

	assert.Equal(t, http.StatusUnauthorized, call(t, app, ""))
	assert.Equal(t, http.StatusUnauthorized, call(t, app, "Token "+token))
	assert.Equal(t, http.StatusUnauthorized, call(t, app, "Bearer not-a-jwt"))
	assert.Equal(t, http.StatusOK, call(t, app, "Bearer "+token))
}

func TestRequireAuthRejectsIdleSession(t *testing.T) {
	db, userRepo, token := setup(t)
	stale := time.Now().UTC().Add(-2 * time.Hour)
	require.NoError(t, db.Model(&model.User{}).Where("email = ?", "owner@example.com").Update("last_seen_at", stale).Error)

	app := fiber.New()
	app.Get("/protected", RequireAuth(userRepo, 30*time.Minute), func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) })
	assert.Equal(t, http.StatusUnauthorized, call(t, app, "Bearer "+token))

	lenient := fiber.New()
	lenient.Get("/protected", RequireAuth(userRepo, 0), func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) })
	assert.Equal(t, http.StatusOK, call(t, lenient, "Bearer "+token))
}

func TestRequirePrivilegeDeniesMissingCode(t *testing.T) {
	app := fiber.New()
	app.Get("/protected", func(c *fiber.Ctx) error {
		c.Locals("user_privileges", []string{"sale:view"})
		return c.Next()
	}, RequireAnyPrivilege("sale:create", "sale:update"), func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) })

	assert.Equal(t, http.StatusForbidden, call(t, app, ""))
}
