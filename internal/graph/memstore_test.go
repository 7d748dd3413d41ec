package graph

import (
	"context"
	"sort"
	"sync"

	"github.com/karnikjan/EasyEvent/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memStore is an in-memory stand-in for the Mongo repositories.
type memStore struct {
	mu       sync.Mutex
	users    map[primitive.ObjectID]models.User
	events   map[primitive.ObjectID]models.Event
	bookings map[primitive.ObjectID]models.Booking
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[primitive.ObjectID]models.User{},
		events:   map[primitive.ObjectID]models.Event{},
		bookings: map[primitive.ObjectID]models.Booking{},
	}
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, models.ErrInvalidID
	}
	return oid, nil
}

func (s *memStore) CreateUser(_ context.Context, user *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return nil, models.ErrEmailTaken
		}
	}
	user.BeforeCreate()
	s.users[user.ID] = *user
	return user, nil
}

func (s *memStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, models.ErrUserNotFound
}

func (s *memStore) GetUserByID(_ context.Context, id string) (*models.User, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[oid]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	return &u, nil
}

func (s *memStore) CreateEvent(_ context.Context, event *models.Event) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	event.BeforeCreate()
	s.events[event.ID] = *event
	return event, nil
}

func (s *memStore) GetEventByID(_ context.Context, id string) (*models.Event, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[oid]
	if !ok {
		return nil, models.ErrEventNotFound
	}
	return &e, nil
}

func (s *memStore) ListEvents(context.Context) ([]*models.Event, error) {
	return s.filterEvents(func(models.Event) bool { return true }), nil
}

func (s *memStore) ListEventsByCreator(_ context.Context, creatorID string) ([]*models.Event, error) {
	oid, err := parseID(creatorID)
	if err != nil {
		return nil, err
	}
	return s.filterEvents(func(e models.Event) bool { return e.Creator == oid }), nil
}

func (s *memStore) filterEvents(keep func(models.Event) bool) []*models.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := []*models.Event{}
	for _, e := range s.events {
		if keep(e) {
			events = append(events, &e)
		}
	}
	sort.Slice(events, func(i, j int) bool {
		if !events[i].Date.Equal(events[j].Date) {
			return events[i].Date.Before(events[j].Date)
		}
		return events[i].ID.Hex() < events[j].ID.Hex()
	})
	return events
}

func (s *memStore) CreateBooking(_ context.Context, booking *models.Booking) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	booking.BeforeCreate()
	s.bookings[booking.ID] = *booking
	return booking, nil
}

func (s *memStore) GetBookingByID(_ context.Context, id string) (*models.Booking, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[oid]
	if !ok {
		return nil, models.ErrBookingNotFound
	}
	return &b, nil
}

func (s *memStore) ListBookingsByUser(_ context.Context, userID string) ([]*models.Booking, error) {
	oid, err := parseID(userID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	bookings := []*models.Booking{}
	for _, b := range s.bookings {
		if b.User == oid {
			bookings = append(bookings, &b)
		}
	}
	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].ID.Hex() < bookings[j].ID.Hex()
	})
	return bookings, nil
}

func (s *memStore) DeleteBooking(_ context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bookings[oid]; !ok {
		return models.ErrBookingNotFound
	}
	delete(s.bookings, oid)
	return nil
}

func (s *memStore) deleteEvent(id primitive.ObjectID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.events, id)
}
