package service

import (
	"context"
	"sync"
	"testing"
	"time"

	repository "github.com/eventbooker/ticketing/internal/database/postgres"
	"github.com/eventbooker/ticketing/internal/entity"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEventRepo struct {
	mu     sync.Mutex
	events map[string]*entity.Event
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: make(map[string]*entity.Event)}
}

func (r *fakeEventRepo) Create(_ context.Context, event *entity.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *event
	r.events[event.ID] = &clone
	return nil
}

func (r *fakeEventRepo) GetByID(_ context.Context, id string) (*entity.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	event, ok := r.events[id]
	if !ok {
		return nil, entity.ErrEventNotFound
	}
	clone := *event
	return &clone, nil
}

func (r *fakeEventRepo) GetAll(_ context.Context) ([]*entity.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	events := make([]*entity.Event, 0, len(r.events))
	for _, event := range r.events {
		clone := *event
		events = append(events, &clone)
	}
	return events, nil
}

func (r *fakeEventRepo) UpdateStatus(_ context.Context, id string, status entity.EventStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	event, ok := r.events[id]
	if !ok {
		return entity.ErrEventNotFound
	}
	event.Status = status
	return nil
}

var _ repository.EventRepository = (*fakeEventRepo)(nil)

func validEventRequest() *CreateEventRequest {
	return &CreateEventRequest{
		Title:     "Summer Concert",
		Venue:     "Main Arena",
		StartDate: time.Now().Add(24 * time.Hour),
		EndDate:   time.Now().Add(27 * time.Hour),
	}
}

func TestCreateEvent(t *testing.T) {
	organizer := &entity.User{ID: "organizer-1", Role: entity.RoleOrganizer}

	t.Run("organizer creates event", func(t *testing.T) {
		repo := newFakeEventRepo()
		svc := NewEventService(repo, newFakeCategoryRepo(), nil)

		event, err := svc.CreateEvent(context.Background(), validEventRequest(), organizer)
		require.NoError(t, err)
		assert.Equal(t, organizer.ID, event.OrganizerID)
		assert.Equal(t, entity.EventStatusPublished, event.Status)
	})

	t.Run("client cannot create events", func(t *testing.T) {
		svc := NewEventService(newFakeEventRepo(), newFakeCategoryRepo(), nil)

		_, err := svc.CreateEvent(context.Background(), validEventRequest(), &entity.User{ID: "client-1", Role: entity.RoleClient})
		assert.ErrorIs(t, err, entity.ErrForbidden)
	})

	t.Run("start date in the past", func(t *testing.T) {
		svc := NewEventService(newFakeEventRepo(), newFakeCategoryRepo(), nil)

		req := validEventRequest()
		req.StartDate = time.Now().Add(-time.Hour)
		_, err := svc.CreateEvent(context.Background(), req, organizer)
		assert.ErrorIs(t, err, entity.ErrEventDatePast)
	})

	t.Run("end before start", func(t *testing.T) {
		svc := NewEventService(newFakeEventRepo(), newFakeCategoryRepo(), nil)

		req := validEventRequest()
		req.EndDate = req.StartDate.Add(-time.Hour)
		_, err := svc.CreateEvent(context.Background(), req, organizer)
		assert.ErrorIs(t, err, entity.ErrInvalidInput)
	})
}

func TestUpdateEventStatus(t *testing.T) {
	organizer := &entity.User{ID: "organizer-1", Role: entity.RoleOrganizer}

	setup := func(t *testing.T) (*fakeEventRepo, EventService, *entity.Event) {
		repo := newFakeEventRepo()
		svc := NewEventService(repo, newFakeCategoryRepo(), nil)
		event, err := svc.CreateEvent(context.Background(), validEventRequest(), organizer)
		require.NoError(t, err)
		return repo, svc, event
	}

	t.Run("organizer cancels own event", func(t *testing.T) {
		repo, svc, event := setup(t)

		require.NoError(t, svc.UpdateEventStatus(context.Background(), event.ID, entity.EventStatusCancelled, organizer))

		got, err := repo.GetByID(context.Background(), event.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.EventStatusCancelled, got.Status)
	})

	t.Run("other organizer is rejected", func(t *testing.T) {
		_, svc, event := setup(t)

		err := svc.UpdateEventStatus(context.Background(), event.ID, entity.EventStatusCancelled,
			&entity.User{ID: "organizer-2", Role: entity.RoleOrganizer})
		assert.ErrorIs(t, err, entity.ErrForbidden)
	})

	t.Run("admin may override", func(t *testing.T) {
		_, svc, event := setup(t)

		err := svc.UpdateEventStatus(context.Background(), event.ID, entity.EventStatusCompleted,
			&entity.User{ID: "admin-1", Role: entity.RoleAdmin})
		assert.NoError(t, err)
	})

	t.Run("unknown status", func(t *testing.T) {
		_, svc, event := setup(t)

		err := svc.UpdateEventStatus(context.Background(), event.ID, entity.EventStatus("BOGUS"), organizer)
		assert.ErrorIs(t, err, entity.ErrInvalidInput)
	})
}

func TestCreateCategory(t *testing.T) {
	organizer := &entity.User{ID: "organizer-1", Role: entity.RoleOrganizer}

	setup := func(t *testing.T) (EventService, *entity.Event) {
		svc := NewEventService(newFakeEventRepo(), newFakeCategoryRepo(), nil)
		event, err := svc.CreateEvent(context.Background(), validEventRequest(), organizer)
		require.NoError(t, err)
		return svc, event
	}

	t.Run("organizer adds a tier", func(t *testing.T) {
		svc, event := setup(t)

		category, err := svc.CreateCategory(context.Background(), event.ID, &CreateCategoryRequest{
			Name:       "VIP",
			Price:      decimal.NewFromFloat(120.00),
			TotalStock: 50,
		}, organizer)
		require.NoError(t, err)
		assert.Equal(t, event.ID, category.EventID)
		assert.Equal(t, 50, category.TotalStock)
	})

	t.Run("negative price is rejected", func(t *testing.T) {
		svc, event := setup(t)

		_, err := svc.CreateCategory(context.Background(), event.ID, &CreateCategoryRequest{
			Name:       "VIP",
			Price:      decimal.NewFromFloat(-1.00),
			TotalStock: 50,
		}, organizer)
		assert.ErrorIs(t, err, entity.ErrInvalidInput)
	})

	t.Run("stranger is rejected", func(t *testing.T) {
		svc, event := setup(t)

		_, err := svc.CreateCategory(context.Background(), event.ID, &CreateCategoryRequest{
			Name:       "VIP",
			Price:      decimal.NewFromFloat(10.00),
			TotalStock: 50,
		}, &entity.User{ID: "organizer-2", Role: entity.RoleOrganizer})
		assert.ErrorIs(t, err, entity.ErrForbidden)
	})

	t.Run("unknown event", func(t *testing.T) {
		svc, _ := setup(t)

		_, err := svc.CreateCategory(context.Background(), "missing", &CreateCategoryRequest{
			Name:       "VIP",
			Price:      decimal.NewFromFloat(10.00),
			TotalStock: 50,
		}, organizer)
		assert.ErrorIs(t, err, entity.ErrEventNotFound)
	})
}
