package service

import (
	"context"
	"time"

	repository "github.com/eventbooker/ticketing/internal/database/postgres"
	"github.com/eventbooker/ticketing/internal/database/redis"
	"github.com/eventbooker/ticketing/internal/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type eventService struct {
	eventRepo    repository.EventRepository
	categoryRepo repository.CategoryRepository
	cache        *redis.AvailabilityCache
}

func NewEventService(
	eventRepo repository.EventRepository,
	categoryRepo repository.CategoryRepository,
	cache *redis.AvailabilityCache,
) *eventService {
	return &eventService{
		eventRepo:    eventRepo,
		categoryRepo: categoryRepo,
		cache:        cache,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, req *CreateEventRequest, user *entity.User) (*entity.Event, error) {
	if user.Role != entity.RoleOrganizer && !user.IsAdmin() {
		return nil, entity.ErrForbidden
	}
	if req.StartDate.Before(time.Now()) {
		return nil, entity.ErrEventDatePast
	}
	if !req.EndDate.After(req.StartDate) {
		return nil, entity.ErrInvalidInput
	}

	event := &entity.Event{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Description: req.Description,
		Venue:       req.Venue,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      entity.EventStatusPublished,
		OrganizerID: user.ID,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *eventService) GetEvent(ctx context.Context, id string) (*entity.Event, error) {
	return s.eventRepo.GetByID(ctx, id)
}

func (s *eventService) GetAllEvents(ctx context.Context) ([]*entity.Event, error) {
	return s.eventRepo.GetAll(ctx)
}

func (s *eventService) UpdateEventStatus(ctx context.Context, id string, status entity.EventStatus, user *entity.User) error {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if event.OrganizerID != user.ID && !user.IsAdmin() {
		return entity.ErrForbidden
	}

	switch status {
	case entity.EventStatusDraft, entity.EventStatusPublished,
		entity.EventStatusCancelled, entity.EventStatusCompleted:
	default:
		return entity.ErrInvalidInput
	}

	if err := s.eventRepo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *eventService) CreateCategory(ctx context.Context, eventID string, req *CreateCategoryRequest, user *entity.User) (*entity.TicketCategory, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.OrganizerID != user.ID && !user.IsAdmin() {
		return nil, entity.ErrForbidden
	}
	if req.Price.IsNegative() {
		return nil, entity.ErrInvalidInput
	}

	category := &entity.TicketCategory{
		ID:          uuid.New().String(),
		EventID:     eventID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		TotalStock:  req.TotalStock,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	s.invalidate(ctx, eventID)
	return category, nil
}

// GetEventCategories serves availability snapshots through the cache.
// A stale snapshot is acceptable; the reservation path always rechecks
// against the authoritative counters.
func (s *eventService) GetEventCategories(ctx context.Context, eventID string) ([]*entity.TicketCategory, error) {
	if s.cache != nil {
		categories, err := s.cache.GetCategories(ctx, eventID)
		if err == nil {
			return categories, nil
		}
		if !redis.IsCacheMiss(err) {
			logrus.Errorf("failed to read availability cache for event %s: %s", eventID, err.Error())
		}
	}

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	categories, err := s.categoryRepo.GetByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetCategories(ctx, eventID, categories); err != nil {
			logrus.Errorf("failed to populate availability cache for event %s: %s", eventID, err.Error())
		}
	}
	return categories, nil
}

func (s *eventService) invalidate(ctx context.Context, eventID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, eventID); err != nil {
		logrus.Errorf("failed to invalidate availability cache for event %s: %s", eventID, err.Error())
	}
}
