package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/config"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/service/auth"
	"github.com/phrazzld/taskboard-api/internal/store"
	"github.com/stretchr/testify/require"
)

// recordingPublisher captures broadcasts so tests can assert the
// producer path fired.
type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

type publishedEvent struct {
	resource   string
	action     string
	monthLabel string
	entityID   uuid.UUID
}

func (p *recordingPublisher) record(e publishedEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) all() []publishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]publishedEvent, len(p.events))
	copy(out, p.events)
	return out
}

func (p *recordingPublisher) PublishTaskChange(event string, task *domain.Task, monthLabel string) {
	p.record(publishedEvent{resource: "task", action: event, monthLabel: monthLabel, entityID: task.ID})
}

func (p *recordingPublisher) PublishMonthChange(event string, month *domain.Month) {
	p.record(publishedEvent{resource: "month", action: event, entityID: month.ID})
}

func (p *recordingPublisher) PublishUserChange(event string, user *domain.User) {
	p.record(publishedEvent{resource: "user", action: event, entityID: user.ID})
}

func (p *recordingPublisher) PublishDeliverableChange(event string, deliverable *domain.Deliverable) {
	p.record(publishedEvent{resource: "deliverable", action: event, entityID: deliverable.ID})
}

func (p *recordingPublisher) PublishReporterChange(event string, reporter *domain.Reporter) {
	p.record(publishedEvent{resource: "reporter", action: event, entityID: reporter.ID})
}

func (p *recordingPublisher) PublishTeamDaysOffChange(event string, daysOff *domain.TeamDaysOff) {
	p.record(publishedEvent{resource: "teamDaysOff", action: event, entityID: daysOff.ID})
}

// fakeTaskStore is an in-memory store.TaskStore.
type fakeTaskStore struct {
	mu    sync.Mutex
	tasks map[uuid.UUID]*domain.Task
}

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{tasks: make(map[uuid.UUID]*domain.Task)}
}

func (s *fakeTaskStore) Create(_ context.Context, task *domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *task
	s.tasks[task.ID] = &copied
	return nil
}

func (s *fakeTaskStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	task, ok := s.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	copied := *task
	return &copied, nil
}

func (s *fakeTaskStore) ListByMonth(_ context.Context, monthID uuid.UUID) ([]*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Task
	for _, task := range s.tasks {
		if task.MonthID == monthID {
			copied := *task
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *fakeTaskStore) Update(_ context.Context, task *domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[task.ID]; !ok {
		return store.ErrTaskNotFound
	}
	copied := *task
	s.tasks[task.ID] = &copied
	return nil
}

func (s *fakeTaskStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[id]; !ok {
		return store.ErrTaskNotFound
	}
	delete(s.tasks, id)
	return nil
}

func (s *fakeTaskStore) WithTx(*sql.Tx) store.TaskStore { return s }

// fakeMonthStore is an in-memory store.MonthStore.
type fakeMonthStore struct {
	mu     sync.Mutex
	months map[uuid.UUID]*domain.Month
}

func newFakeMonthStore() *fakeMonthStore {
	return &fakeMonthStore{months: make(map[uuid.UUID]*domain.Month)}
}

func (s *fakeMonthStore) Create(_ context.Context, month *domain.Month) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.months {
		if existing.Label == month.Label {
			return store.ErrMonthLabelExists
		}
	}
	copied := *month
	s.months[month.ID] = &copied
	return nil
}

func (s *fakeMonthStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Month, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	month, ok := s.months[id]
	if !ok {
		return nil, store.ErrMonthNotFound
	}
	copied := *month
	return &copied, nil
}

func (s *fakeMonthStore) GetByLabel(_ context.Context, label string) (*domain.Month, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, month := range s.months {
		if month.Label == label {
			copied := *month
			return &copied, nil
		}
	}
	return nil, store.ErrMonthNotFound
}

func (s *fakeMonthStore) List(_ context.Context) ([]*domain.Month, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.Month, 0, len(s.months))
	for _, month := range s.months {
		copied := *month
		out = append(out, &copied)
	}
	return out, nil
}

func (s *fakeMonthStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.months[id]; !ok {
		return store.ErrMonthNotFound
	}
	delete(s.months, id)
	return nil
}

// fakeUserStore is an in-memory store.UserStore.
type fakeUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*domain.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uuid.UUID]*domain.User)}
}

func (s *fakeUserStore) Create(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return store.ErrEmailExists
		}
	}
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *fakeUserStore) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (s *fakeUserStore) List(_ context.Context) ([]*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.User, 0, len(s.users))
	for _, user := range s.users {
		copied := *user
		out = append(out, &copied)
	}
	return out, nil
}

func (s *fakeUserStore) Update(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; !ok {
		return store.ErrUserNotFound
	}
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *fakeUserStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return store.ErrUserNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *fakeUserStore) WithTx(*sql.Tx) store.UserStore { return s }

// doJSON performs a request against handler with an optional JSON body
// and chi URL params.
func doJSON(
	t *testing.T,
	handler http.HandlerFunc,
	method string,
	body any,
	params map[string]string,
) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, "/", &buf)

	if len(params) > 0 {
		routeCtx := chi.NewRouteContext()
		for key, value := range params {
			routeCtx.URLParams.Add(key, value)
		}
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
	}

	recorder := httptest.NewRecorder()
	handler(recorder, req)
	return recorder
}

func newTestJWTService(t *testing.T) auth.JWTService {
	t.Helper()
	svc, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:            "test-secret-that-is-long-enough-for-testing",
		TokenLifetimeMinutes: 60,
	})
	require.NoError(t, err)
	return svc
}
