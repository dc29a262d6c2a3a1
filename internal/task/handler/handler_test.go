package handler

import (
	"context"
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prateek4576/mytodoapp/internal/auth"
	"github.com/prateek4576/mytodoapp/internal/logger"
	"github.com/prateek4576/mytodoapp/internal/middleware"
	"github.com/prateek4576/mytodoapp/internal/session"
	"github.com/prateek4576/mytodoapp/internal/task"
	"github.com/prateek4576/mytodoapp/internal/user"
	"github.com/prateek4576/mytodoapp/internal/user/usertest"
)

type fakeTaskStore struct {
	mu    sync.Mutex
	tasks map[uuid.UUID]task.Task
}

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{tasks: make(map[uuid.UUID]task.Task)}
}

func (f *fakeTaskStore) ListByUser(_ context.Context, userID uuid.UUID) ([]task.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []task.Task
	for _, t := range f.tasks {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTaskStore) FindByID(_ context.Context, id, userID uuid.UUID) (*task.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	t, ok := f.tasks[id]
	if !ok || t.UserID != userID {
		return nil, task.ErrNotFound
	}
	return &t, nil
}

func (f *fakeTaskStore) Insert(_ context.Context, n task.NewTask) (*task.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	t := task.Task{
		ID:          uuid.New(),
		UserID:      n.UserID,
		Title:       n.Title,
		Description: n.Description,
		CreatedAt:   time.Now(),
	}
	f.tasks[t.ID] = t
	return &t, nil
}

func (f *fakeTaskStore) Update(_ context.Context, id, userID uuid.UUID, u task.Update) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	t, ok := f.tasks[id]
	if !ok || t.UserID != userID {
		return task.ErrNotFound
	}
	t.Title, t.Description, t.Completed = u.Title, u.Description, u.Completed
	f.tasks[id] = t
	return nil
}

func (f *fakeTaskStore) Delete(_ context.Context, id, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	t, ok := f.tasks[id]
	if !ok || t.UserID != userID {
		return task.ErrNotFound
	}
	delete(f.tasks, id)
	return nil
}

type fixture struct {
	tasks  *fakeTaskStore
	router *gin.Engine
	user   user.User
	cookie *http.Cookie
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := usertest.NewStore()
	sessions := session.NewMemoryStore()
	log := logger.New(0)

	u := user.User{ID: uuid.New(), Email: "a@x.com"}
	users.Seed(u)

	sess, err := session.New(u.ID.String())
	require.NoError(t, err)
	require.NoError(t, sessions.Create(context.Background(), sess))

	tasks := newFakeTaskStore()
	gate := middleware.NewSessionGate(sessions, auth.NewSerializer(users), log)

	router := gin.New()
	router.SetHTMLTemplate(template.Must(template.New("").Parse(`
		{{define "dashboard.html"}}{{range .tasks}}{{.Title}};{{end}}{{end}}
		{{define "edit-task.html"}}{{.task.Title}}{{end}}
	`)))

	protected := router.Group("/")
	protected.Use(gate.RequireAuth())
	NewHandler(tasks, log).RegisterRoutes(protected)

	return &fixture{
		tasks:  tasks,
		router: router,
		user:   u,
		cookie: &http.Cookie{Name: session.CookieName, Value: sess.SessionID},
	}
}

func (f *fixture) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.AddCookie(f.cookie)

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *fixture) seedTask(title string, completed bool) task.Task {
	t := task.Task{
		ID:        uuid.New(),
		UserID:    f.user.ID,
		Title:     title,
		Completed: completed,
		CreatedAt: time.Now(),
	}
	f.tasks.tasks[t.ID] = t
	return t
}

func TestDashboard_ListsOwnTasksOnly(t *testing.T) {
	f := newFixture(t)
	f.seedTask("mine", false)

	other := task.Task{ID: uuid.New(), UserID: uuid.New(), Title: "theirs"}
	f.tasks.tasks[other.ID] = other

	w := f.do(http.MethodGet, "/dashboard", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "mine")
	assert.NotContains(t, w.Body.String(), "theirs")
}

func TestCreate(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/task", url.Values{
		"title":       {"buy milk"},
		"description": {"2 liters"},
	})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))

	tasks, err := f.tasks.ListByUser(context.Background(), f.user.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "buy milk", tasks[0].Title)
	assert.Equal(t, "2 liters", tasks[0].Description)
}

func TestUpdate(t *testing.T) {
	f := newFixture(t)
	seeded := f.seedTask("old", false)

	w := f.do(http.MethodPost, "/task/edit/"+seeded.ID.String(), url.Values{
		"title":       {"new"},
		"description": {"d"},
		"completed":   {"on"},
	})

	assert.Equal(t, http.StatusSeeOther, w.Code)

	got, err := f.tasks.FindByID(context.Background(), seeded.ID, f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, "new", got.Title)
	assert.True(t, got.Completed)
}

func TestEditPage(t *testing.T) {
	f := newFixture(t)
	seeded := f.seedTask("editable", false)

	w := f.do(http.MethodGet, "/task/edit/"+seeded.ID.String(), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "editable")
}

func TestDelete_CompletedTask(t *testing.T) {
	f := newFixture(t)
	seeded := f.seedTask("done", true)

	w := f.do(http.MethodGet, "/task/delete/"+seeded.ID.String(), nil)

	assert.Equal(t, http.StatusFound, w.Code)

	_, err := f.tasks.FindByID(context.Background(), seeded.ID, f.user.ID)
	assert.ErrorIs(t, err, task.ErrNotFound)
}

func TestDelete_IncompleteTask_Kept(t *testing.T) {
	f := newFixture(t)
	seeded := f.seedTask("pending", false)

	w := f.do(http.MethodGet, "/task/delete/"+seeded.ID.String(), nil)

	assert.Equal(t, http.StatusFound, w.Code)

	_, err := f.tasks.FindByID(context.Background(), seeded.ID, f.user.ID)
	assert.NoError(t, err)
}

func TestProtectedRoutes_AnonymousRedirected(t *testing.T) {
	f := newFixture(t)
	f.seedTask("secret", false)

	req := httptest.NewRequest(http.MethodPost, "/task", strings.NewReader("title=x"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	tasks, err := f.tasks.ListByUser(context.Background(), f.user.ID)
	require.NoError(t, err)
	assert.Len(t, tasks, 1) // unchanged
}
