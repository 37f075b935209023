package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	"github.com/yukikurage/acme-dashboard/internal/repository"
	"github.com/yukikurage/acme-dashboard/internal/testutil"
)

type repos struct {
	users       repository.UserRepository
	companies   repository.CompanyRepository
	projects    repository.ProjectRepository
	tasks       repository.TaskRepository
	invitations repository.InvitationRepository
}

func newRepos(db *gorm.DB, log *zap.SugaredLogger) repos {
	return repos{
		users:       repository.NewUserRepository(db, log),
		companies:   repository.NewCompanyRepository(db, log),
		projects:    repository.NewProjectRepository(db, log),
		tasks:       repository.NewTaskRepository(db, log),
		invitations: repository.NewInvitationRepository(db, log),
	}
}

func setupRepos(t *testing.T) (*gorm.DB, repos) {
	t.Helper()
	db := testutil.SQLite(t)
	return db, newRepos(db, zaptest.NewLogger(t).Sugar())
}

// fakeOpenAI serves a single canned chat completion.
func fakeOpenAI(t *testing.T, content string) *AIService {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		assert.NoError(t, json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			ID:     "chatcmpl-test",
			Object: "chat.completion",
			Model:  openai.GPT4o,
			Choices: []openai.ChatCompletionChoice{{
				Index: 0,
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
	return NewAIServiceWithClient(openai.NewClientWithConfig(cfg))
}
