package server

import (
	"net/http"
	"testing"
	"time"

	"quill/internal/cache"
	"quill/internal/config"
	"quill/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Port:                "0",
		SessionSecret:       "test-session-secret",
		PageSize:            10,
		FeedCacheTTLSeconds: 20,
		UploadDir:           t.TempDir(),
		LoginURL:            "/auth/login/",
		Env:                 "test",
	}
}

func newTestServer(t *testing.T) (*Server, *fiber.App, *gorm.DB) {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.Post{},
		&models.Comment{},
		&models.Follow{},
	))

	srv, err := NewServerWithDeps(testConfig(t), db, cache.NewWithClient(nil))
	require.NoError(t, err)

	return srv, srv.App(), db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: username + "@example.com", Password: "pw"}
	require.NoError(t, db.Create(user).Error)
	return user
}

// asUser attaches a valid session cookie for the given user.
func asUser(t *testing.T, srv *Server, req *http.Request, user *models.User) {
	t.Helper()
	token, err := srv.IssueSession(user.ID, time.Hour)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: token})
}
