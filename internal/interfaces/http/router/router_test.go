package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"z-doc-ai-api/internal/application/docgen"
	"z-doc-ai-api/internal/application/export"
	"z-doc-ai-api/internal/application/ledger"
	"z-doc-ai-api/internal/application/sequencer"
	"z-doc-ai-api/internal/application/workspace"
	"z-doc-ai-api/internal/config"
	"z-doc-ai-api/internal/infrastructure/document/docx"
	"z-doc-ai-api/internal/infrastructure/persistence/postgres/pgtest"
	"z-doc-ai-api/internal/interfaces/http/handler"
	"z-doc-ai-api/internal/interfaces/http/router"
	workflowprompt "z-doc-ai-api/internal/workflow/prompt"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	t         *testing.T
	engine    *gin.Engine
	completer *docgen.ScriptedCompleter
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		App: config.AppConfig{Name: "z-doc-ai-api", Env: "test"},
		LLM: config.LLMConfig{RequestTimeout: time.Second},
		Generation: config.GenerationConfig{
			ContextMaxRunes:     500,
			PreviewRunes:        200,
			DefaultOutlineCount: 5,
			MaxOutlineCount:     20,
		},
		Security: config.SecurityConfig{
			JWT: config.JWTConfig{
				Secret:            "test-secret",
				Issuer:            "z-doc-ai-api",
				Expiration:        time.Hour,
				RefreshExpiration: 24 * time.Hour,
			},
			CORS: config.CORSConfig{AllowedOrigins: []string{"*"}},
		},
	}

	s := pgtest.Open(t)
	completer := docgen.NewScriptedCompleter()
	gen := docgen.NewGenerator(completer, workflowprompt.NewRegistry(), cfg)
	l := ledger.NewLedger(s.Tx, s.Sections, s.Events)
	refine := ledger.NewService(l, gen, s.Projects, s.Sections)
	ws := workspace.NewService(s.Tx, s.Projects, s.Sections, gen, refine)
	seq := sequencer.NewSequencer(s.Projects, s.Sections, gen, l, nil, cfg)

	r := router.New(cfg, &router.Handlers{
		Health:   handler.NewHealthHandler(s.Client, nil, "test"),
		Auth:     handler.NewAuthHandler(cfg.Security.JWT, s.Users),
		User:     handler.NewUserHandler(s.Users),
		Project:  handler.NewProjectHandler(ws),
		Section:  handler.NewSectionHandler(ws, refine),
		Generate: handler.NewGenerateHandler(gen, seq, refine),
		Export:   handler.NewExportHandler(export.NewService(s.Projects, s.Sections)),
	}, nil)

	return &testServer{t: t, engine: r.Engine(), completer: completer}
}

func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out), string(env.Data))
	return out
}

func (s *testServer) register(username string) string {
	s.t.Helper()
	w := s.do(http.MethodPost, "/v1/auth/register", "", map[string]string{
		"username": username,
		"password": "secret-pass",
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	auth := decode[struct {
		AccessToken string `json:"access_token"`
	}](s.t, w)
	require.NotEmpty(s.t, auth.AccessToken)
	return auth.AccessToken
}

type projectBody struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	ContainerType string `json:"container_type"`
	Sections      []struct {
		ID      string `json:"id"`
		Title   string `json:"title"`
		Content string `json:"content"`
	} `json:"sections"`
	OutlineFallback bool `json:"outline_fallback"`
}

func (s *testServer) createReport(token string) projectBody {
	s.t.Helper()
	w := s.do(http.MethodPost, "/v1/projects", token, map[string]any{
		"title":          "Q3 Report",
		"topic":          "quarterly results",
		"container_type": "word",
		"sections": []map[string]any{
			{"title": "Summary", "order_index": 0},
			{"title": "Outlook", "order_index": 1},
		},
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	return decode[projectBody](s.t, w)
}

func TestSystemEndpoints(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/health", "/live", "/ready"} {
		w := s.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestV1_RequiresToken(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/v1/projects", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodGet, "/v1/projects", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_RegisterLoginMe(t *testing.T) {
	s := newTestServer(t)
	s.register("alice")

	w := s.do(http.MethodPost, "/v1/auth/register", "", map[string]string{"username": "alice", "password": "secret-pass"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(http.MethodPost, "/v1/auth/login", "", map[string]string{"username": "alice", "password": "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/v1/auth/login", "", map[string]string{"username": "alice", "password": "secret-pass"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	auth := decode[struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}](t, w)

	w = s.do(http.MethodGet, "/v1/users/me", auth.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	me := decode[struct {
		Username string `json:"username"`
	}](t, w)
	assert.Equal(t, "alice", me.Username)

	// refresh token 不能当作 access token 使用
	w = s.do(http.MethodGet, "/v1/users/me", auth.RefreshToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/v1/auth/refresh", "", map[string]string{"refresh_token": auth.RefreshToken})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestAuth_RegisterValidation(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/v1/auth/register", "", map[string]string{"username": "al", "password": "secret-pass"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/v1/auth/register", "", map[string]string{"username": "alice", "password": "short"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProjects_CRUD(t *testing.T) {
	s := newTestServer(t)
	token := s.register("alice")

	p := s.createReport(token)
	assert.Equal(t, "word", p.ContainerType)
	require.Len(t, p.Sections, 2)
	assert.Equal(t, "Summary", p.Sections[0].Title)

	w := s.do(http.MethodGet, "/v1/projects", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[struct {
		Projects []projectBody `json:"projects"`
	}](t, w)
	require.Len(t, list.Projects, 1)

	w = s.do(http.MethodPut, "/v1/projects/"+p.ID, token, map[string]string{"title": "Q3 Report (final)"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Q3 Report (final)", decode[projectBody](t, w).Title)

	w = s.do(http.MethodDelete, "/v1/projects/"+p.ID, token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(http.MethodGet, "/v1/projects/"+p.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProjects_InvalidContainerType(t *testing.T) {
	s := newTestServer(t)
	token := s.register("alice")

	w := s.do(http.MethodPost, "/v1/projects", token, map[string]any{
		"title":          "Doc",
		"container_type": "spreadsheet",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProjects_OwnerScoped(t *testing.T) {
	s := newTestServer(t)
	alice := s.register("alice")
	bob := s.register("bobby")

	p := s.createReport(alice)

	w := s.do(http.MethodGet, "/v1/projects/"+p.ID, bob, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodGet, "/v1/export/"+p.ID, bob, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSections_AddUpdateHistory(t *testing.T) {
	s := newTestServer(t)
	token := s.register("alice")
	p := s.createReport(token)

	w := s.do(http.MethodPost, "/v1/projects/"+p.ID+"/sections", token, map[string]string{"title": "Appendix"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	added := decode[struct {
		ID         string `json:"id"`
		OrderIndex int    `json:"order_index"`
	}](t, w)
	assert.Equal(t, 2, added.OrderIndex)

	w = s.do(http.MethodPut, "/v1/sections/"+added.ID, token, map[string]string{"content": "Tables."})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/v1/sections/"+added.ID+"/history", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	history := decode[[]struct {
		Kind       string `json:"kind"`
		NewContent string `json:"new_content"`
	}](t, w)
	require.Len(t, history, 1)
	assert.Equal(t, "edit", history[0].Kind)
	assert.Equal(t, "Tables.", history[0].NewContent)

	w = s.do(http.MethodDelete, "/v1/sections/"+added.ID, token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(http.MethodGet, "/v1/projects/"+p.ID+"/sections", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]json.RawMessage](t, w), 2)
}

func TestGenerate_Outline(t *testing.T) {
	s := newTestServer(t)
	token := s.register("alice")

	s.completer.Fn = func(_ context.Context, _ []*schema.Message) (string, error) {
		return "1. Market\n2. Product\n3. Team", nil
	}
	w := s.do(http.MethodPost, "/v1/generate/outline", token, map[string]any{
		"topic":          "startup pitch",
		"container_type": "slide",
		"count":          3,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	out := decode[struct {
		Headings []string `json:"headings"`
		Fallback bool     `json:"fallback"`
	}](t, w)
	assert.False(t, out.Fallback)
	assert.Equal(t, []string{"Market", "Product", "Team"}, out.Headings)

	w = s.do(http.MethodPost, "/v1/generate/outline", token, map[string]any{
		"topic":          "startup pitch",
		"container_type": "spreadsheet",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerate_OutlineFallback(t *testing.T) {
	s := newTestServer(t)
	token := s.register("alice")

	s.completer.Fn = func(_ context.Context, _ []*schema.Message) (string, error) {
		return "", errors.New("provider down")
	}
	w := s.do(http.MethodPost, "/v1/generate/outline", token, map[string]any{
		"topic":          "startup pitch",
		"container_type": "word",
		"count":          2,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	out := decode[struct {
		Headings []string `json:"headings"`
		Fallback bool     `json:"fallback"`
		Reason   string   `json:"fallback_reason"`
	}](t, w)
	assert.True(t, out.Fallback)
	assert.Len(t, out.Headings, 2)
	assert.NotEmpty(t, out.Reason)
}

func TestGenerate_ContentRefineExport(t *testing.T) {
	s := newTestServer(t)
	token := s.register("alice")
	p := s.createReport(token)

	s.completer.Fn = func(_ context.Context, msgs []*schema.Message) (string, error) {
		prompt := msgs[len(msgs)-1].Content
		switch {
		case strings.Contains(prompt, "User wants: Make it shorter"):
			return "Revenue grew.", nil
		case strings.Contains(prompt, "Section: Summary"):
			return "Revenue grew 12% on strong demand.", nil
		default:
			return "We expect continued growth.", nil
		}
	}

	w := s.do(http.MethodPost, "/v1/generate/content", token, map[string]string{"project_id": p.ID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	results := decode[[]struct {
		SectionID string `json:"section_id"`
		Content   string `json:"content"`
		Fallback  bool   `json:"fallback"`
	}](t, w)
	require.Len(t, results, 2)
	assert.Equal(t, "Revenue grew 12% on strong demand.", results[0].Content)
	assert.False(t, results[1].Fallback)

	summaryID := results[0].SectionID
	w = s.do(http.MethodPost, "/v1/generate/refine", token, map[string]string{
		"section_id": summaryID,
		"prompt":     "Make it shorter",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	refined := decode[struct {
		Content string `json:"content"`
		EventID string `json:"event_id"`
	}](t, w)
	assert.Equal(t, "Revenue grew.", refined.Content)
	assert.NotEmpty(t, refined.EventID)

	w = s.do(http.MethodPost, "/v1/generate/feedback", token, map[string]string{
		"section_id": summaryID,
		"feedback":   "like",
	})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/v1/sections/"+summaryID+"/history", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	history := decode[[]struct {
		Kind string `json:"kind"`
	}](t, w)
	require.Len(t, history, 3)
	assert.Equal(t, "generation", history[0].Kind)
	assert.Equal(t, "refinement", history[1].Kind)
	assert.Equal(t, "feedback", history[2].Kind)

	w = s.do(http.MethodGet, "/v1/export/"+p.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), `filename="Q3 Report.docx"`)

	outline, err := docx.ReadOutline(w.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "Q3 Report", outline.Title)
	require.Len(t, outline.Sections, 2)
	assert.Equal(t, "Summary", outline.Sections[0].Heading)
	assert.Equal(t, []string{"Revenue grew."}, outline.Sections[0].Paragraphs)

	w = s.do(http.MethodGet, "/v1/export/"+p.ID+"/preview", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	preview := decode[struct {
		HTML string `json:"html"`
	}](t, w)
	assert.Contains(t, preview.HTML, "<h2>Summary</h2>")
}

func TestGenerate_FeedbackValidation(t *testing.T) {
	s := newTestServer(t)
	token := s.register("alice")

	w := s.do(http.MethodPost, "/v1/generate/feedback", token, map[string]string{
		"section_id": "missing",
		"feedback":   "love",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/v1/generate/feedback", token, map[string]string{
		"section_id": "missing",
		"feedback":   "like",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
