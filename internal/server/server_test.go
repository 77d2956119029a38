package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"sunflowerpost/internal/config"
	"sunflowerpost/internal/featureflags"
	"sunflowerpost/internal/models"
	"sunflowerpost/internal/repository"
	"sunflowerpost/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestServer builds a Server over an in-memory database with routes
// registered on a bare fiber app. Metrics and redis are left out; the
// route setup and auth middleware are the real thing.
func newTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.FollowEdge{},
		&models.ReactionMark{},
		&models.SavedItem{},
		&models.Book{},
		&models.TVMovie{},
		&models.Discussion{},
		&models.Reply{},
		&models.JournalEntry{},
		&models.ListItem{},
	))

	cfg := &config.Config{JWTSecret: "test-secret"}

	userRepo := repository.NewUserRepository(db)
	followRepo := repository.NewFollowRepository(db)
	reactionRepo := repository.NewReactionRepository(db)
	savedRepo := repository.NewSavedRepository(db)
	bookRepo := repository.NewBookRepository(db)
	tvMovieRepo := repository.NewTVMovieRepository(db)
	discussionRepo := repository.NewDiscussionRepository(db)
	journalRepo := repository.NewJournalRepository(db)
	listItemRepo := repository.NewListItemRepository(db)

	s := &Server{
		config:         cfg,
		db:             db,
		userRepo:       userRepo,
		followRepo:     followRepo,
		reactionRepo:   reactionRepo,
		savedRepo:      savedRepo,
		bookRepo:       bookRepo,
		tvMovieRepo:    tvMovieRepo,
		discussionRepo: discussionRepo,
		journalRepo:    journalRepo,
		listItemRepo:   listItemRepo,
		featureFlags:   featureflags.NewManager(""),
		aliasRand:      rand.New(rand.NewSource(42)),
	}
	s.followService = service.NewFollowService(followRepo, userRepo)
	s.userService = service.NewUserService(userRepo, bookRepo, tvMovieRepo, discussionRepo, listItemRepo)
	s.journalService = service.NewJournalServiceWithModel(journalRepo, nil)

	app := fiber.New()
	s.SetupRoutes(app)
	return s, app
}

// setTestModel swaps in a canned journaling model.
func setTestModel(s *Server, model llms.Model) {
	s.journalService = service.NewJournalServiceWithModel(s.journalRepo, model)
}

func jsonRequest(t *testing.T, method, target string, body any, token string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

// signupUser registers a user through the real endpoint and returns their
// token and decoded user object.
func signupUser(t *testing.T, app *fiber.App, name, email, password string) (string, map[string]any) {
	t.Helper()
	req := jsonRequest(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}, "")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	user, _ := body["user"].(map[string]any)
	require.NotNil(t, user)
	return token, user
}

func signupN(t *testing.T, app *fiber.App, n int) []string {
	t.Helper()
	tokens := make([]string, n)
	for i := range tokens {
		name := fmt.Sprintf("member%d", i)
		tokens[i], _ = signupUser(t, app, name, name+"@example.com", "longenough1")
	}
	return tokens
}
