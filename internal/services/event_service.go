package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/karnikjan/EasyEvent/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type EventService struct {
	eventRepo models.EventRepo
	userRepo  models.UserRepo
}

func NewEventService(eventRepo models.EventRepo, userRepo models.UserRepo) *EventService {
	return &EventService{
		eventRepo: eventRepo,
		userRepo:  userRepo,
	}
}

type CreateEventInput struct {
	Title       string
	Description string
	Price       float64
	Date        string
}

var eventDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseEventDate accepts RFC 3339 timestamps, HTML datetime-local values and plain dates.
// Values without a zone are taken as UTC.
func ParseEventDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range eventDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: invalid date %q", ErrValidation, value)
}

func (es *EventService) CreateEvent(ctx context.Context, creatorID string, input CreateEventInput) (*models.Event, error) {
	date, err := ParseEventDate(input.Date)
	if err != nil {
		return nil, err
	}

	creator, err := primitive.ObjectIDFromHex(creatorID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid creator id", ErrValidation)
	}

	event := &models.Event{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Price:       input.Price,
		Date:        date,
		Creator:     creator,
	}
	if err := models.Validate.Struct(event); err != nil {
		return nil, validationError(err)
	}

	if _, err := es.userRepo.GetUserByID(ctx, creatorID); err != nil {
		return nil, classifyLookup(err, "user")
	}

	created, err := es.eventRepo.CreateEvent(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return created, nil
}

func (es *EventService) ListEvents(ctx context.Context) ([]*models.Event, error) {
	events, err := es.eventRepo.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

func (es *EventService) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	event, err := es.eventRepo.GetEventByID(ctx, id)
	if err != nil {
		return nil, classifyLookup(err, "event")
	}
	return event, nil
}

func (es *EventService) ListEventsByCreator(ctx context.Context, creatorID string) ([]*models.Event, error) {
	events, err := es.eventRepo.ListEventsByCreator(ctx, creatorID)
	if err != nil {
		return nil, classifyLookup(err, "user")
	}
	return events, nil
}
