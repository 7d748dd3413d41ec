package graph

import (
	"time"

	"github.com/graphql-go/graphql"
	"github.com/karnikjan/EasyEvent/internal/models"
	"github.com/karnikjan/EasyEvent/internal/services"
)

// dateLayout renders instants the way JavaScript's Date.toISOString does.
const dateLayout = "2006-01-02T15:04:05.000Z07:00"

func formatDate(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

// NewSchema builds the executable schema around r.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	var userType, eventType *graphql.Object

	userType = graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"_id": &graphql.Field{
					Type: graphql.NewNonNull(graphql.ID),
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return p.Source.(*models.User).ID.Hex(), nil
					},
				},
				"email": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
				"password": &graphql.Field{
					Type: graphql.String,
					Resolve: func(graphql.ResolveParams) (interface{}, error) {
						return nil, nil
					},
				},
				"createdEvents": &graphql.Field{
					Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(eventType))),
					Resolve: r.userCreatedEvents,
				},
			}
		}),
	})

	eventType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Event",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"_id": &graphql.Field{
					Type: graphql.NewNonNull(graphql.ID),
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return p.Source.(*models.Event).ID.Hex(), nil
					},
				},
				"title":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
				"description": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
				"price":       &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
				"date": &graphql.Field{
					Type: graphql.NewNonNull(graphql.String),
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return formatDate(p.Source.(*models.Event).Date), nil
					},
				},
				"creator": &graphql.Field{
					Type:    graphql.NewNonNull(userType),
					Resolve: r.eventCreator,
				},
			}
		}),
	})

	bookingType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Booking",
		Fields: graphql.Fields{
			"_id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.Booking).ID.Hex(), nil
				},
			},
			"event": &graphql.Field{
				Type:    graphql.NewNonNull(eventType),
				Resolve: r.bookingEvent,
			},
			"user": &graphql.Field{
				Type:    graphql.NewNonNull(userType),
				Resolve: r.bookingUser,
			},
			"createdAt": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return formatDate(p.Source.(*models.Booking).CreatedAt), nil
				},
			},
			"updatedAt": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return formatDate(p.Source.(*models.Booking).UpdatedAt), nil
				},
			},
		},
	})

	authDataType := graphql.NewObject(graphql.ObjectConfig{
		Name: "AuthData",
		Fields: graphql.Fields{
			"userId": &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"token":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"tokenExpiration": &graphql.Field{
				Type:        graphql.NewNonNull(graphql.Int),
				Description: "Token lifetime in hours.",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return int(p.Source.(*services.AuthData).TTL / time.Hour), nil
				},
			},
		},
	})

	userInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UserInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"email":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	eventInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "EventInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"title":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"description": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"price":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
			"date":        &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	credentialArgs := graphql.FieldConfigArgument{
		"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
		"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
	}

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"events": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(eventType))),
				Resolve: r.listEvents,
			},
			"bookings": &graphql.Field{
				Type:        graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(bookingType))),
				Description: "Bookings made by the caller.",
				Resolve:     r.listBookings,
			},
			"login": &graphql.Field{
				Type:    graphql.NewNonNull(authDataType),
				Args:    credentialArgs,
				Resolve: r.login,
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createUser": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"userInput": &graphql.ArgumentConfig{Type: graphql.NewNonNull(userInput)},
				},
				Resolve: r.createUser,
			},
			"login": &graphql.Field{
				Type:    graphql.NewNonNull(authDataType),
				Args:    credentialArgs,
				Resolve: r.login,
			},
			"createEvent": &graphql.Field{
				Type: eventType,
				Args: graphql.FieldConfigArgument{
					"eventInput": &graphql.ArgumentConfig{Type: graphql.NewNonNull(eventInput)},
				},
				Resolve: r.createEvent,
			},
			"bookEvent": &graphql.Field{
				Type: graphql.NewNonNull(bookingType),
				Args: graphql.FieldConfigArgument{
					"eventId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.bookEvent,
			},
			"cancelBooking": &graphql.Field{
				Type: graphql.NewNonNull(eventType),
				Args: graphql.FieldConfigArgument{
					"bookingId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.cancelBooking,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    query,
		Mutation: mutation,
	})
}
