package mocks

import (
	"context"

	"github.com/karnikjan/EasyEvent/internal/models"
	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// UserRepo is a testify mock of models.UserRepo.
type UserRepo struct {
	mock.Mock
}

func NewUserRepo(t testingT) *UserRepo {
	m := &UserRepo{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *UserRepo) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	args := m.Called(ctx, user)
	created, _ := args.Get(0).(*models.User)
	return created, args.Error(1)
}

func (m *UserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *UserRepo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

// EventRepo is a testify mock of models.EventRepo.
type EventRepo struct {
	mock.Mock
}

func NewEventRepo(t testingT) *EventRepo {
	m := &EventRepo{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *EventRepo) CreateEvent(ctx context.Context, event *models.Event) (*models.Event, error) {
	args := m.Called(ctx, event)
	created, _ := args.Get(0).(*models.Event)
	return created, args.Error(1)
}

func (m *EventRepo) GetEventByID(ctx context.Context, id string) (*models.Event, error) {
	args := m.Called(ctx, id)
	event, _ := args.Get(0).(*models.Event)
	return event, args.Error(1)
}

func (m *EventRepo) ListEvents(ctx context.Context) ([]*models.Event, error) {
	args := m.Called(ctx)
	events, _ := args.Get(0).([]*models.Event)
	return events, args.Error(1)
}

func (m *EventRepo) ListEventsByCreator(ctx context.Context, creatorID string) ([]*models.Event, error) {
	args := m.Called(ctx, creatorID)
	events, _ := args.Get(0).([]*models.Event)
	return events, args.Error(1)
}

// BookingRepo is a testify mock of models.BookingRepo.
type BookingRepo struct {
	mock.Mock
}

func NewBookingRepo(t testingT) *BookingRepo {
	m := &BookingRepo{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *BookingRepo) CreateBooking(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	args := m.Called(ctx, booking)
	created, _ := args.Get(0).(*models.Booking)
	return created, args.Error(1)
}

func (m *BookingRepo) GetBookingByID(ctx context.Context, id string) (*models.Booking, error) {
	args := m.Called(ctx, id)
	booking, _ := args.Get(0).(*models.Booking)
	return booking, args.Error(1)
}

func (m *BookingRepo) ListBookingsByUser(ctx context.Context, userID string) ([]*models.Booking, error) {
	args := m.Called(ctx, userID)
	bookings, _ := args.Get(0).([]*models.Booking)
	return bookings, args.Error(1)
}

func (m *BookingRepo) DeleteBooking(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var (
	_ models.UserRepo    = (*UserRepo)(nil)
	_ models.EventRepo   = (*EventRepo)(nil)
	_ models.BookingRepo = (*BookingRepo)(nil)
)
