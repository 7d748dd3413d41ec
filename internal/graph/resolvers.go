package graph

import (
	"context"
	"log/slog"

	"github.com/graphql-go/graphql"
	"github.com/karnikjan/EasyEvent/internal/helpers"
	"github.com/karnikjan/EasyEvent/internal/models"
	"github.com/karnikjan/EasyEvent/internal/services"
)

type UserService interface {
	CreateUser(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*services.AuthData, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
}

type EventService interface {
	CreateEvent(ctx context.Context, creatorID string, input services.CreateEventInput) (*models.Event, error)
	ListEvents(ctx context.Context) ([]*models.Event, error)
	GetEvent(ctx context.Context, id string) (*models.Event, error)
	ListEventsByCreator(ctx context.Context, creatorID string) ([]*models.Event, error)
}

type BookingService interface {
	BookEvent(ctx context.Context, userID, eventID string) (*models.Booking, error)
	ListBookings(ctx context.Context, userID string) ([]*models.Booking, error)
	CancelBooking(ctx context.Context, userID, bookingID string) (*models.Event, error)
}

// Resolver holds the field resolvers. Identity comes from the request context,
// never from resolver state.
type Resolver struct {
	users    UserService
	events   EventService
	bookings BookingService
	logger   *slog.Logger
}

func NewResolver(users UserService, events EventService, bookings BookingService, logger *slog.Logger) *Resolver {
	return &Resolver{
		users:    users,
		events:   events,
		bookings: bookings,
		logger:   logger,
	}
}

func (r *Resolver) createUser(p graphql.ResolveParams) (interface{}, error) {
	in, _ := p.Args["userInput"].(map[string]interface{})
	email, _ := in["email"].(string)
	password, _ := in["password"].(string)

	user, err := r.users.CreateUser(p.Context, email, password)
	if err != nil {
		return nil, r.toGraphError(p.Context, p.Info.FieldName, err)
	}
	return user, nil
}

func (r *Resolver) login(p graphql.ResolveParams) (interface{}, error) {
	email, _ := p.Args["email"].(string)
	password, _ := p.Args["password"].(string)

	auth, err := r.users.Login(p.Context, email, password)
	if err != nil {
		return nil, r.toGraphError(p.Context, p.Info.FieldName, err)
	}
	return auth, nil
}

func (r *Resolver) createEvent(p graphql.ResolveParams) (interface{}, error) {
	id, ok := helpers.IdentityFromContext(p.Context)
	if !ok {
		return nil, errUnauthenticated
	}

	in, _ := p.Args["eventInput"].(map[string]interface{})
	input := services.CreateEventInput{}
	input.Title, _ = in["title"].(string)
	input.Description, _ = in["description"].(string)
	input.Price, _ = in["price"].(float64)
	input.Date, _ = in["date"].(string)

	event, err := r.events.CreateEvent(p.Context, id.UserID, input)
	if err != nil {
		return nil, r.toGraphError(p.Context, p.Info.FieldName, err)
	}
	return event, nil
}

func (r *Resolver) listEvents(p graphql.ResolveParams) (interface{}, error) {
	events, err := r.events.ListEvents(p.Context)
	if err != nil {
		return nil, r.toGraphError(p.Context, p.Info.FieldName, err)
	}
	return events, nil
}

func (r *Resolver) bookEvent(p graphql.ResolveParams) (interface{}, error) {
	id, ok := helpers.IdentityFromContext(p.Context)
	if !ok {
		return nil, errUnauthenticated
	}

	eventID, _ := p.Args["eventId"].(string)
	booking, err := r.bookings.BookEvent(p.Context, id.UserID, eventID)
	if err != nil {
		return nil, r.toGraphError(p.Context, p.Info.FieldName, err)
	}
	return booking, nil
}

func (r *Resolver) listBookings(p graphql.ResolveParams) (interface{}, error) {
	id, ok := helpers.IdentityFromContext(p.Context)
	if !ok {
		return nil, errUnauthenticated
	}

	bookings, err := r.bookings.ListBookings(p.Context, id.UserID)
	if err != nil {
		return nil, r.toGraphError(p.Context, p.Info.FieldName, err)
	}
	return bookings, nil
}

func (r *Resolver) cancelBooking(p graphql.ResolveParams) (interface{}, error) {
	id, ok := helpers.IdentityFromContext(p.Context)
	if !ok {
		return nil, errUnauthenticated
	}

	bookingID, _ := p.Args["bookingId"].(string)
	event, err := r.bookings.CancelBooking(p.Context, id.UserID, bookingID)
	if err != nil {
		return nil, r.toGraphError(p.Context, p.Info.FieldName, err)
	}
	return event, nil
}

// relations

func (r *Resolver) userCreatedEvents(p graphql.ResolveParams) (interface{}, error) {
	user := p.Source.(*models.User)
	events, err := r.events.ListEventsByCreator(p.Context, user.ID.Hex())
	if err != nil {
		return nil, r.toGraphError(p.Context, "User.createdEvents", err)
	}
	return events, nil
}

func (r *Resolver) eventCreator(p graphql.ResolveParams) (interface{}, error) {
	event := p.Source.(*models.Event)
	user, err := r.users.GetUser(p.Context, event.Creator.Hex())
	if err != nil {
		return nil, r.toGraphError(p.Context, "Event.creator", err)
	}
	return user, nil
}

func (r *Resolver) bookingEvent(p graphql.ResolveParams) (interface{}, error) {
	booking := p.Source.(*models.Booking)
	event, err := r.events.GetEvent(p.Context, booking.Event.Hex())
	if err != nil {
		return nil, r.toGraphError(p.Context, "Booking.event", err)
	}
	return event, nil
}

func (r *Resolver) bookingUser(p graphql.ResolveParams) (interface{}, error) {
	booking := p.Source.(*models.Booking)
	user, err := r.users.GetUser(p.Context, booking.User.Hex())
	if err != nil {
		return nil, r.toGraphError(p.Context, "Booking.user", err)
	}
	return user, nil
}
