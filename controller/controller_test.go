package controller_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"braincontrol/controller"
	"braincontrol/model"
	"braincontrol/model/modeltest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func init() {
	gin.SetMode(gin.TestMode)
}

type fixture struct {
	router *gin.Engine
	store  *model.Store
	user   *model.User
	agent  *model.Agent
}

// newRouter seeds one WhatsApp group "G1" with 25 messages.
func newRouter(t *testing.T) *fixture {
	store, _ := modeltest.Open(t)
	fx := modeltest.NewFixture(t, store)
	user := fx.User("alice", start)
	agent := fx.Agent("brain", "Be *helpful*.")
	fx.Group("G1", "Family", "WhatsApp")
	fx.Thread("G1", 25, start, user, agent)

	r := gin.New()
	controller.SetupRoutes(r, store)
	return &fixture{router: r, store: store, user: user, agent: agent}
}

func (f *fixture) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Result struct {
		Data json.RawMessage `json:"data"`
	} `json:"result"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Result.Data, data))
	}
	return env
}

type messageJSON struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Role    string `json:"role"`
	Agent   *struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"agent"`
	User *struct {
		ID       string  `json:"id"`
		UserName *string `json:"userName"`
	} `json:"user"`
}

func TestGetMessagesProcedures(t *testing.T) {
	f := newRouter(t)

	for _, ns := range []string{"groups", "agents"} {
		t.Run(ns, func(t *testing.T) {
			w := f.do(t, http.MethodGet, "/api/trpc/"+ns+".getMessages?id=G1", "")
			require.Equal(t, http.StatusOK, w.Code)
			var messages []messageJSON
			decode(t, w, &messages)
			require.Len(t, messages, 20)
			assert.Equal(t, "m24", messages[0].Content)
			for _, m := range messages {
				assert.True(t, (m.Agent == nil) != (m.User == nil), m.Content)
				if m.Role == "assistant" {
					require.NotNil(t, m.Agent)
					assert.Equal(t, "brain", m.Agent.Name)
				} else {
					require.NotNil(t, m.User)
					assert.Equal(t, "alice", *m.User.UserName)
				}
			}

			w = f.do(t, http.MethodGet, "/api/trpc/"+ns+".getMessages?id=G1&limit=5", "")
			require.Equal(t, http.StatusOK, w.Code)
			decode(t, w, &messages)
			require.Len(t, messages, 5)
			assert.Equal(t, "m20", messages[4].Content)
		})
	}
}

func TestGetMessagesUnknownGroup(t *testing.T) {
	f := newRouter(t)

	w := f.do(t, http.MethodGet, "/api/trpc/groups.getMessages?id=missing", "")
	require.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w, nil)
	assert.JSONEq(t, `[]`, string(env.Result.Data))
}

func TestGetMessagesBadInput(t *testing.T) {
	f := newRouter(t)

	for _, query := range []string{"", "?limit=5", "?id=G1&limit=0", "?id=G1&limit=abc"} {
		t.Run(query, func(t *testing.T) {
			w := f.do(t, http.MethodGet, "/api/trpc/groups.getMessages"+query, "")
			assert.Equal(t, http.StatusBadRequest, w.Code)
			env := decode(t, w, nil)
			require.NotNil(t, env.Error)
			assert.Equal(t, "BAD_REQUEST", env.Error.Code)
		})
	}
}

func TestGetAllProcedures(t *testing.T) {
	f := newRouter(t)

	w := f.do(t, http.MethodGet, "/api/trpc/groups.getAll", "")
	require.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w, nil)
	assert.JSONEq(t, `[{"id":"G1","name":"Family","description":"Family chat","connector":{"name":"WhatsApp"}}]`, string(env.Result.Data))

	w = f.do(t, http.MethodGet, "/api/trpc/agents.getAll", "")
	require.Equal(t, http.StatusOK, w.Code)
	var agents []map[string]interface{}
	decode(t, w, &agents)
	require.Len(t, agents, 1)
	assert.Equal(t, "brain", agents[0]["name"])
	assert.Equal(t, "Be *helpful*.", agents[0]["constitution"])

	w = f.do(t, http.MethodGet, "/api/trpc/users.getAll", "")
	require.Equal(t, http.StatusOK, w.Code)
	var users []map[string]interface{}
	decode(t, w, &users)
	require.Len(t, users, 1)
	assert.Equal(t, "alice", users[0]["userName"])
	assert.Equal(t, map[string]interface{}{"messages": float64(13)}, users[0]["_count"])
	assert.Contains(t, users[0], "telegramId")
}

func TestUpdateOne(t *testing.T) {
	f := newRouter(t)

	w := f.do(t, http.MethodPost, "/api/trpc/users.updateOne", `{"id":"`+f.user.ID+`","userName":"Alice"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var user map[string]interface{}
	decode(t, w, &user)
	assert.Equal(t, "Alice", user["userName"])
	assert.Equal(t, f.user.ID, user["id"])

	w = f.do(t, http.MethodGet, "/api/trpc/users.getAll", "")
	var users []map[string]interface{}
	decode(t, w, &users)
	require.Len(t, users, 1)
	assert.Equal(t, "Alice", users[0]["userName"])
}

func TestUpdateOneErrors(t *testing.T) {
	f := newRouter(t)

	cases := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{name: "unknown id", body: `{"id":"nonexistent"}`, status: http.StatusNotFound, code: "NOT_FOUND"},
		{name: "missing id", body: `{"userName":"x"}`, status: http.StatusBadRequest, code: "BAD_REQUEST"},
		{name: "null userName", body: `{"id":"` + f.user.ID + `","userName":null}`, status: http.StatusBadRequest, code: "BAD_REQUEST"},
		{name: "not json", body: `id=1`, status: http.StatusBadRequest, code: "BAD_REQUEST"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := f.do(t, http.MethodPost, "/api/trpc/users.updateOne", tc.body)
			assert.Equal(t, tc.status, w.Code)
			env := decode(t, w, nil)
			require.NotNil(t, env.Error)
			assert.Equal(t, tc.code, env.Error.Code)
		})
	}
}

func TestIndexPage(t *testing.T) {
	f := newRouter(t)

	t.Run("no selection", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/", "")
		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "Select a group to see its messages")
		assert.Contains(t, body, "alice")
		assert.Contains(t, body, "Be *helpful*.")
		assert.Contains(t, body, "Family chat - WhatsApp")
		assert.Contains(t, body, `href="/?groupId=G1"`)
		assert.NotContains(t, body, "Loading ...")
	})

	t.Run("selected group", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/?groupId=G1", "")
		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.NotContains(t, body, "Select a group to see its messages")
		assert.Contains(t, body, "Brain - Agent [brain]")

		// Oldest of the 20 newest first, newest last.
		first := strings.Index(body, "<p>m5</p>")
		last := strings.Index(body, "<p>m24</p>")
		require.NotEqual(t, -1, first)
		require.NotEqual(t, -1, last)
		assert.Less(t, first, last)
		assert.NotContains(t, body, "<p>m4</p>")
	})
}

func TestEditForm(t *testing.T) {
	f := newRouter(t)

	form := url.Values{"userName": {"Alice"}, "groupId": {"G1"}}
	req := httptest.NewRequest(http.MethodPost, "/users/"+f.user.ID, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/?groupId=G1", w.Header().Get("Location"))

	w = f.do(t, http.MethodGet, "/api/trpc/users.getAll", "")
	var users []map[string]interface{}
	decode(t, w, &users)
	assert.Equal(t, "Alice", users[0]["userName"])

	req = httptest.NewRequest(http.MethodPost, "/users/nonexistent", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w = httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealth(t *testing.T) {
	f := newRouter(t)
	w := f.do(t, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStoreDown(t *testing.T) {
	store, db := modeltest.Open(t)
	fx := modeltest.NewFixture(t, store)
	fx.User("alice", start)
	fx.Group("G1", "Family", "WhatsApp")

	r := gin.New()
	controller.SetupRoutes(r, store)
	f := &fixture{router: r, store: store}

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	procedures := []struct {
		method, target, body string
	}{
		{method: http.MethodGet, target: "/healthz"},
		{method: http.MethodGet, target: "/api/trpc/users.getAll"},
		{method: http.MethodGet, target: "/api/trpc/agents.getAll"},
		{method: http.MethodGet, target: "/api/trpc/groups.getAll"},
		{method: http.MethodGet, target: "/api/trpc/groups.getMessages?id=G1"},
		{method: http.MethodGet, target: "/api/trpc/agents.getMessages?id=G1"},
		{method: http.MethodPost, target: "/api/trpc/users.updateOne", body: `{"id":"u1","userName":"x"}`},
	}
	for _, p := range procedures {
		t.Run(p.target, func(t *testing.T) {
			w := f.do(t, p.method, p.target, p.body)
			assert.Equal(t, http.StatusServiceUnavailable, w.Code)
			env := decode(t, w, nil)
			require.NotNil(t, env.Error)
			assert.Equal(t, "SERVICE_UNAVAILABLE", env.Error.Code)
		})
	}

	t.Run("page stays loading", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/?groupId=G1", "")
		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Equal(t, 3, strings.Count(body, "Loading ..."))
		assert.NotContains(t, body, "Select a group to see its messages")
		assert.NotContains(t, body, `class="card message"`)
	})

	t.Run("edit form", func(t *testing.T) {
		form := url.Values{"userName": {"Alice"}}
		req := httptest.NewRequest(http.MethodPost, "/users/u1", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}
