package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"

	"github.com/yukikurage/acme-dashboard/internal/auth"
	"github.com/yukikurage/acme-dashboard/internal/constants"
	"github.com/yukikurage/acme-dashboard/internal/middleware"
	"github.com/yukikurage/acme-dashboard/internal/repository"
	"github.com/yukikurage/acme-dashboard/internal/services"
	"github.com/yukikurage/acme-dashboard/internal/testutil"
)

type testEnv struct {
	db     *gorm.DB
	router *gin.Engine
	users  repository.UserRepository
	logs   *observer.ObservedLogs
}

func setupTestEnv(t *testing.T) testEnv {
	return setupTestEnvWithAI(t, nil)
}

// setupTestEnvWithAI builds the full router over sqlite. Log entries go to
// the test output and are also kept in env.logs.
func setupTestEnvWithAI(t *testing.T, aiService *services.AIService) testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.SQLite(t)
	observed, logs := observer.New(zapcore.DebugLevel)
	log := zap.New(zapcore.NewTee(zaptest.NewLogger(t).Core(), observed)).Sugar()

	userRepo := repository.NewUserRepository(db, log)
	companyRepo := repository.NewCompanyRepository(db, log)

	authService := services.NewAuthService(userRepo, log)
	invoiceService := services.NewInvoiceService(
		repository.NewDashboardRepository(db, log),
		repository.NewInvoiceRepository(db, log),
		repository.NewCustomerRepository(db, log),
	)
	companyService := services.NewCompanyService(
		companyRepo,
		userRepo,
		repository.NewInvitationRepository(db, log),
		auth.NewInvitationSigner("test-secret", 24*time.Hour),
	)
	workspaceService := services.NewWorkspaceService(
		repository.NewProjectRepository(db, log),
		repository.NewTaskRepository(db, log),
		companyRepo,
		aiService,
	)

	r := gin.New()
	r.Use(middleware.ErrorLogger(log))
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	RegisterRoutes(r, Handlers{
		Auth:           NewAuthHandler(authService),
		Invoices:       NewInvoiceHandler(invoiceService),
		Companies:      NewCompanyHandler(companyService),
		Workspace:      NewWorkspaceHandler(workspaceService),
		CompanyService: companyService,
	})

	return testEnv{db: db, router: r, users: userRepo, logs: logs}
}

// fakeOpenAI answers every chat completion with content.
func fakeOpenAI(t *testing.T, content string) *services.AIService {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		assert.NoError(t, json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			ID:     "chatcmpl-test",
			Object: "chat.completion",
			Model:  openai.GPT4o,
			Choices: []openai.ChatCompletionChoice{{
				Message: openai.ChatCompletionMessage{
					Role:    openai.ChatMessageRoleAssistant,
					Content: content,
				},
				FinishReason: openai.FinishReasonStop,
			}},
		}))
	}))
	t.Cleanup(srv.Close)

	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = srv.URL + "/v1"
	return services.NewAIServiceWithClient(openai.NewClientWithConfig(cfg))
}

// client replays the session cookie across requests.
type client struct {
	t       *testing.T
	router  *gin.Engine
	cookies []*http.Cookie
}

func (e testEnv) client(t *testing.T) *client {
	return &client{t: t, router: e.router}
}

func (c *client) do(method, url string, payload interface{}) *httptest.ResponseRecorder {
	c.t.Helper()

	var body *bytes.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(c.t, err)
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, url, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}

	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)

	if cookies := w.Result().Cookies(); len(cookies) > 0 {
		c.cookies = cookies
	}
	return w
}

// signup registers a user and leaves the client logged in as them.
func (c *client) signup(name, email string) string {
	c.t.Helper()
	w := c.do(http.MethodPost, "/api/auth/signup", map[string]string{
		"name":     name,
		"email":    email,
		"password": "supersecret",
	})
	require.Equal(c.t, http.StatusCreated, w.Code, w.Body.String())

	var user struct {
		ID string `json:"id"`
	}
	decode(c.t, w, &user)
	return user.ID
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func createdID(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		ID string `json:"id"`
	}
	decode(t, w, &created)
	require.NotEmpty(t, created.ID)
	return created.ID
}
