package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/karnikjan/EasyEvent/internal/models"
)

type BookingService struct {
	bookingRepo models.BookingRepo
	eventRepo   models.EventRepo
	userRepo    models.UserRepo
	logger      *slog.Logger
}

func NewBookingService(bookingRepo models.BookingRepo, eventRepo models.EventRepo, userRepo models.UserRepo, logger *slog.Logger) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		eventRepo:   eventRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// BookEvent links userID to an existing event.
func (bs *BookingService) BookEvent(ctx context.Context, userID, eventID string) (*models.Booking, error) {
	if !models.IsValidID(eventID) {
		return nil, fmt.Errorf("%w: invalid event id", ErrValidation)
	}

	event, err := bs.eventRepo.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, classifyLookup(err, "event")
	}
	user, err := bs.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, classifyLookup(err, "user")
	}

	booking, err := bs.bookingRepo.CreateBooking(ctx, &models.Booking{Event: event.ID, User: user.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	bs.logger.Debug("event booked",
		"booking_id", booking.ID.Hex(),
		"event_id", eventID,
		"user_id", userID,
	)
	return booking, nil
}

func (bs *BookingService) ListBookings(ctx context.Context, userID string) ([]*models.Booking, error) {
	bookings, err := bs.bookingRepo.ListBookingsByUser(ctx, userID)
	if err != nil {
		return nil, classifyLookup(err, "user")
	}
	return bookings, nil
}

// CancelBooking deletes one of userID's bookings and returns the event it was for.
func (bs *BookingService) CancelBooking(ctx context.Context, userID, bookingID string) (*models.Event, error) {
	if !models.IsValidID(bookingID) {
		return nil, fmt.Errorf("%w: invalid booking id", ErrValidation)
	}

	booking, err := bs.bookingRepo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, classifyLookup(err, "booking")
	}
	if booking.User.Hex() != userID {
		return nil, fmt.Errorf("%w: booking belongs to another user", ErrForbidden)
	}

	event, eventErr := bs.eventRepo.GetEventByID(ctx, booking.Event.Hex())
	if eventErr != nil && !errors.Is(eventErr, models.ErrEventNotFound) {
		return nil, fmt.Errorf("failed to get event: %w", eventErr)
	}

	if err := bs.bookingRepo.DeleteBooking(ctx, bookingID); err != nil {
		return nil, classifyLookup(err, "booking")
	}

	bs.logger.Debug("booking cancelled",
		"booking_id", bookingID,
		"user_id", userID,
	)

	// the booking is gone either way; a dangling event reference is still reported
	if eventErr != nil {
		return nil, classifyLookup(eventErr, "event")
	}
	return event, nil
}
