package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"cityshare/internal/cache"
	"cityshare/internal/config"
	"cityshare/internal/database"
	"cityshare/internal/notifications"
	"cityshare/internal/repository"
	"cityshare/internal/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	os.Setenv("APP_ENV", "test")
	os.Exit(m.Run())
}

// newTestApp wires a full server against in-memory SQLite and miniredis,
// with the full route table but without the metrics middleware.
func newTestApp(t *testing.T) (*fiber.App, *Server) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache.SetClient(redisClient)
	t.Cleanup(func() {
		cache.SetClient(nil)
		_ = redisClient.Close()
	})

	cfg := &config.Config{
		JWTSecret: "test-secret",
		Env:       "test",
	}

	userRepo := repository.NewUserRepository(db)
	itemRepo := repository.NewItemRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	wishlistRepo := repository.NewWishlistRepository(db)
	impactRepo := repository.NewImpactRepository(db)

	s := &Server{
		config:       cfg,
		db:           db,
		redis:        redisClient,
		userRepo:     userRepo,
		itemRepo:     itemRepo,
		bookingRepo:  bookingRepo,
		messageRepo:  messageRepo,
		ratingRepo:   ratingRepo,
		wishlistRepo: wishlistRepo,
		impactRepo:   impactRepo,
		hub:          notifications.NewHub(),
	}
	s.itemService = service.NewItemService(itemRepo)
	s.bookingService = service.NewBookingService(bookingRepo, itemRepo)
	s.messageService = service.NewMessageService(messageRepo, userRepo, s.hub)
	s.ratingService = service.NewRatingService(ratingRepo, bookingRepo, userRepo)

	app := fiber.New()
	s.SetupRoutes(app)
	return app, s
}

// doJSON performs a request against the test app with an optional bearer
// token and JSON body, returning the response with its decoded body.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	return resp, raw
}

type authResponse struct {
	Token string `json:"token"`
	User  struct {
		ID       uint   `json:"id"`
		Username string `json:"username"`
	} `json:"user"`
}

// registerUser signs up a user through the API and returns the session.
func registerUser(t *testing.T, app *fiber.App, username string) authResponse {
	t.Helper()

	resp, raw := doJSON(t, app, http.MethodPost, "/api/register", "", map[string]string{
		"username": username,
		"password": "CityShare2026!",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "register %s: %s", username, raw)

	var out authResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	require.NotEmpty(t, out.Token)
	return out
}

// createItem lists an item for the authenticated user and returns its ID.
func createItem(t *testing.T, app *fiber.App, token, title string) uint {
	t.Helper()

	resp, raw := doJSON(t, app, http.MethodPost, "/api/items", token, map[string]interface{}{
		"title":       title,
		"description": fmt.Sprintf("%s in good condition", title),
		"category":    "tools",
		"location":    "Springfield",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "create item: %s", raw)

	var item struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(raw, &item))
	return item.ID
}
