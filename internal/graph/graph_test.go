package graph

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/karnikjan/EasyEvent/internal/helpers"
	"github.com/karnikjan/EasyEvent/internal/logger"
	"github.com/karnikjan/EasyEvent/internal/models"
	"github.com/karnikjan/EasyEvent/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type testAPI struct {
	exec   *Executor
	store  *memStore
	tokens *helpers.JWTManager
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	store := newMemStore()
	tokens := helpers.NewJWTManager(helpers.JWTOptions{
		KeyID:  "test",
		Secret: "graph-test-secret-0123",
		Issuer: "easyevent",
		TTL:    time.Hour,
	})
	log := logger.NewDiscard()

	resolver := NewResolver(
		services.NewUserService(store, helpers.NewBcryptHasher(bcrypt.MinCost), tokens, false),
		services.NewEventService(store, store),
		services.NewBookingService(store, store, store, log),
		log,
	)
	schema, err := NewSchema(resolver)
	require.NoError(t, err)

	return &testAPI{exec: NewExecutor(schema), store: store, tokens: tokens}
}

type gqlError struct {
	Message    string                 `json:"message"`
	Extensions map[string]interface{} `json:"extensions"`
}

type gqlResponse struct {
	Data   map[string]interface{} `json:"data"`
	Errors []gqlError             `json:"errors"`
}

func (r gqlResponse) code() string {
	if len(r.Errors) == 0 {
		return ""
	}
	code, _ := r.Errors[0].Extensions["code"].(string)
	return code
}

func (api *testAPI) do(t *testing.T, ctx context.Context, query string, vars map[string]interface{}) gqlResponse {
	t.Helper()
	result := api.exec.Execute(ctx, Request{Query: query, Variables: vars})
	raw, err := json.Marshal(result)
	require.NoError(t, err)

	var resp gqlResponse
	require.NoError(t, json.Unmarshal(raw, &resp))
	return resp
}

// asUser authenticates the way the HTTP middleware does: from the token alone.
func (api *testAPI) asUser(t *testing.T, token string) context.Context {
	t.Helper()
	claims, err := api.tokens.ValidateToken(token)
	require.NoError(t, err)
	return helpers.WithIdentity(context.Background(), helpers.Identity{UserID: claims.UserID, Email: claims.Email})
}

const (
	createUserMutation = `mutation($email: String!, $password: String!) {
		createUser(userInput: {email: $email, password: $password}) { _id email password }
	}`
	loginQuery = `query($email: String!, $password: String!) {
		login(email: $email, password: $password) { userId token tokenExpiration }
	}`
	createEventMutation = `mutation {
		createEvent(eventInput: {title: "T", price: 10, date: "2024-01-01", description: "d"}) {
			_id title description price date creator { _id email }
		}
	}`
	bookingsQuery = `{ bookings { _id createdAt event { _id title date } user { _id } } }`
)

func (api *testAPI) signupAndLogin(t *testing.T, email, password string) (userID, token string) {
	t.Helper()
	created := api.do(t, context.Background(), createUserMutation, map[string]interface{}{"email": email, "password": password})
	require.Empty(t, created.Errors)

	login := api.do(t, context.Background(), loginQuery, map[string]interface{}{"email": email, "password": password})
	require.Empty(t, login.Errors)
	auth := login.Data["login"].(map[string]interface{})
	return auth["userId"].(string), auth["token"].(string)
}

func TestEndToEnd_SignupLoginCreateEvent(t *testing.T) {
	api := newTestAPI(t)

	created := api.do(t, context.Background(), createUserMutation, map[string]interface{}{"email": "a@x.com", "password": "pw"})
	require.Empty(t, created.Errors)
	user := created.Data["createUser"].(map[string]interface{})
	assert.Equal(t, "a@x.com", user["email"])
	assert.Nil(t, user["password"])
	userID := user["_id"].(string)

	login := api.do(t, context.Background(), loginQuery, map[string]interface{}{"email": "a@x.com", "password": "pw"})
	require.Empty(t, login.Errors)
	auth := login.Data["login"].(map[string]interface{})
	assert.Equal(t, userID, auth["userId"])
	assert.EqualValues(t, 1, auth["tokenExpiration"])

	ctx := api.asUser(t, auth["token"].(string))
	event := api.do(t, ctx, createEventMutation, nil)
	require.Empty(t, event.Errors)

	ev := event.Data["createEvent"].(map[string]interface{})
	assert.Equal(t, "T", ev["title"])
	assert.Equal(t, "d", ev["description"])
	assert.EqualValues(t, 10, ev["price"])
	assert.Equal(t, "2024-01-01T00:00:00.000Z", ev["date"])
	creator := ev["creator"].(map[string]interface{})
	assert.Equal(t, userID, creator["_id"])
	assert.Equal(t, "a@x.com", creator["email"])
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	api := newTestAPI(t)
	vars := map[string]interface{}{"email": "a@x.com", "password": "pw"}

	first := api.do(t, context.Background(), createUserMutation, vars)
	require.Empty(t, first.Errors)

	second := api.do(t, context.Background(), createUserMutation, vars)
	require.Len(t, second.Errors, 1)
	assert.Equal(t, "authentication error: user already exists", second.Errors[0].Message)
	assert.Equal(t, CodeAuthenticationFailed, second.code())
	assert.Nil(t, second.Data["createUser"])
}

func TestCreateUser_PasswordTooLong(t *testing.T) {
	api := newTestAPI(t)

	resp := api.do(t, context.Background(), createUserMutation,
		map[string]interface{}{"email": "a@x.com", "password": strings.Repeat("a", 80)})

	require.Len(t, resp.Errors, 1)
	assert.Equal(t, CodeBadUserInput, resp.code())
	assert.Equal(t, "validation error: password must be at most 72 bytes", resp.Errors[0].Message)
	_, err := api.store.GetUserByEmail(context.Background(), "a@x.com")
	assert.ErrorIs(t, err, models.ErrUserNotFound)
}

func TestStoredPasswordIsHashed(t *testing.T) {
	api := newTestAPI(t)
	api.signupAndLogin(t, "a@x.com", "pw")

	stored, err := api.store.GetUserByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.NotEqual(t, "pw", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("pw")))
}

func TestLogin_WrongPassword(t *testing.T) {
	api := newTestAPI(t)
	api.signupAndLogin(t, "a@x.com", "pw")

	resp := api.do(t, context.Background(), loginQuery, map[string]interface{}{"email": "a@x.com", "password": "wrong"})

	require.Len(t, resp.Errors, 1)
	assert.Equal(t, CodeAuthenticationFailed, resp.code())
	assert.Nil(t, resp.Data)
}

func TestLogin_AsMutation(t *testing.T) {
	api := newTestAPI(t)
	userID, _ := api.signupAndLogin(t, "a@x.com", "pw")

	resp := api.do(t, context.Background(), `mutation { login(email: "a@x.com", password: "pw") { userId } }`, nil)

	require.Empty(t, resp.Errors)
	assert.Equal(t, userID, resp.Data["login"].(map[string]interface{})["userId"])
}

func TestProtectedOperations_RequireIdentity(t *testing.T) {
	api := newTestAPI(t)
	id := primitive.NewObjectID().Hex()

	tests := []struct {
		name  string
		query string
	}{
		{name: "createEvent", query: createEventMutation},
		{name: "bookEvent", query: `mutation { bookEvent(eventId: "` + id + `") { _id } }`},
		{name: "cancelBooking", query: `mutation { cancelBooking(bookingId: "` + id + `") { _id } }`},
		{name: "bookings", query: bookingsQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := api.do(t, context.Background(), tt.query, nil)

			require.Len(t, resp.Errors, 1)
			assert.Equal(t, "unauthenticated", resp.Errors[0].Message)
			assert.Equal(t, CodeUnauthenticated, resp.code())
		})
	}
}

func TestEvents_Public(t *testing.T) {
	api := newTestAPI(t)
	userID, token := api.signupAndLogin(t, "a@x.com", "pw")
	require.Empty(t, api.do(t, api.asUser(t, token), createEventMutation, nil).Errors)

	resp := api.do(t, context.Background(), `{ events { title creator { _id createdEvents { title } } } }`, nil)

	require.Empty(t, resp.Errors)
	events := resp.Data["events"].([]interface{})
	require.Len(t, events, 1)
	creator := events[0].(map[string]interface{})["creator"].(map[string]interface{})
	assert.Equal(t, userID, creator["_id"])
	assert.Len(t, creator["createdEvents"], 1)
}

func TestEvents_Empty(t *testing.T) {
	api := newTestAPI(t)

	resp := api.do(t, context.Background(), `{ events { _id } }`, nil)

	require.Empty(t, resp.Errors)
	assert.Equal(t, []interface{}{}, resp.Data["events"])
}

func TestCreateEvent_Validation(t *testing.T) {
	api := newTestAPI(t)
	_, token := api.signupAndLogin(t, "a@x.com", "pw")

	resp := api.do(t, api.asUser(t, token), `mutation {
		createEvent(eventInput: {title: "T", price: 0, date: "2024-01-01", description: "d"}) { _id }
	}`, nil)

	require.Len(t, resp.Errors, 1)
	assert.Equal(t, CodeBadUserInput, resp.code())
	assert.Equal(t, "validation error: price must be greater than 0", resp.Errors[0].Message)
}

func TestBookEvent_UnknownEvent(t *testing.T) {
	api := newTestAPI(t)
	_, token := api.signupAndLogin(t, "a@x.com", "pw")

	resp := api.do(t, api.asUser(t, token), `mutation($id: ID!) { bookEvent(eventId: $id) { _id } }`,
		map[string]interface{}{"id": primitive.NewObjectID().Hex()})

	require.Len(t, resp.Errors, 1)
	assert.Equal(t, CodeNotFound, resp.code())
}

func TestBookEvent_MalformedID(t *testing.T) {
	api := newTestAPI(t)
	_, token := api.signupAndLogin(t, "a@x.com", "pw")

	resp := api.do(t, api.asUser(t, token), `mutation { bookEvent(eventId: "nope") { _id } }`, nil)

	require.Len(t, resp.Errors, 1)
	assert.Equal(t, CodeBadUserInput, resp.code())
}

func TestBookAndCancel(t *testing.T) {
	api := newTestAPI(t)
	userID, token := api.signupAndLogin(t, "a@x.com", "pw")
	ctx := api.asUser(t, token)

	event := api.do(t, ctx, createEventMutation, nil)
	require.Empty(t, event.Errors)
	eventID := event.Data["createEvent"].(map[string]interface{})["_id"].(string)

	booked := api.do(t, ctx, `mutation($id: ID!) { bookEvent(eventId: $id) { _id createdAt updatedAt event { _id } user { _id } } }`,
		map[string]interface{}{"id": eventID})
	require.Empty(t, booked.Errors)
	booking := booked.Data["bookEvent"].(map[string]interface{})
	bookingID := booking["_id"].(string)
	assert.Equal(t, eventID, booking["event"].(map[string]interface{})["_id"])
	assert.Equal(t, userID, booking["user"].(map[string]interface{})["_id"])
	_, err := time.Parse(time.RFC3339, booking["createdAt"].(string))
	assert.NoError(t, err)

	listed := api.do(t, ctx, bookingsQuery, nil)
	require.Empty(t, listed.Errors)
	require.Len(t, listed.Data["bookings"], 1)

	cancelled := api.do(t, ctx, `mutation($id: ID!) { cancelBooking(bookingId: $id) { _id title } }`,
		map[string]interface{}{"id": bookingID})
	require.Empty(t, cancelled.Errors)
	assert.Equal(t, eventID, cancelled.Data["cancelBooking"].(map[string]interface{})["_id"])

	listed = api.do(t, ctx, bookingsQuery, nil)
	require.Empty(t, listed.Errors)
	assert.Empty(t, listed.Data["bookings"])

	again := api.do(t, ctx, `mutation($id: ID!) { cancelBooking(bookingId: $id) { _id } }`,
		map[string]interface{}{"id": bookingID})
	assert.Equal(t, CodeNotFound, again.code())
}

func TestBookings_ScopedToCaller(t *testing.T) {
	api := newTestAPI(t)
	_, aliceToken := api.signupAndLogin(t, "alice@x.com", "pw")
	_, bobToken := api.signupAndLogin(t, "bob@x.com", "pw")
	alice := api.asUser(t, aliceToken)
	bob := api.asUser(t, bobToken)

	event := api.do(t, alice, createEventMutation, nil)
	eventID := event.Data["createEvent"].(map[string]interface{})["_id"].(string)

	booked := api.do(t, alice, `mutation($id: ID!) { bookEvent(eventId: $id) { _id } }`, map[string]interface{}{"id": eventID})
	require.Empty(t, booked.Errors)
	bookingID := booked.Data["bookEvent"].(map[string]interface{})["_id"].(string)

	bobs := api.do(t, bob, bookingsQuery, nil)
	require.Empty(t, bobs.Errors)
	assert.Empty(t, bobs.Data["bookings"])

	stolen := api.do(t, bob, `mutation($id: ID!) { cancelBooking(bookingId: $id) { _id } }`, map[string]interface{}{"id": bookingID})
	assert.Equal(t, CodeForbidden, stolen.code())

	alices := api.do(t, alice, bookingsQuery, nil)
	assert.Len(t, alices.Data["bookings"], 1)
}

func TestBookings_DanglingEvent(t *testing.T) {
	api := newTestAPI(t)
	_, token := api.signupAndLogin(t, "a@x.com", "pw")
	ctx := api.asUser(t, token)

	event := api.do(t, ctx, createEventMutation, nil)
	eventID := event.Data["createEvent"].(map[string]interface{})["_id"].(string)
	require.Empty(t, api.do(t, ctx, `mutation($id: ID!) { bookEvent(eventId: $id) { _id } }`, map[string]interface{}{"id": eventID}).Errors)

	oid, err := primitive.ObjectIDFromHex(eventID)
	require.NoError(t, err)
	api.store.deleteEvent(oid)

	resp := api.do(t, ctx, bookingsQuery, nil)

	require.NotEmpty(t, resp.Errors)
	assert.Equal(t, CodeNotFound, resp.code())
}

func TestToGraphError_HidesInternalErrors(t *testing.T) {
	r := NewResolver(nil, nil, nil, logger.NewDiscard())

	err := r.toGraphError(context.Background(), "events", assert.AnError)

	var gerr *Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, "internal server error", gerr.Message)
	assert.Equal(t, CodeInternal, gerr.Code)

	err = r.toGraphError(context.Background(), "events", models.ErrEventNotFound)
	assert.Equal(t, CodeInternal, err.(*Error).Code)
}

func TestIsMutation(t *testing.T) {
	assert.True(t, IsMutation(`mutation { createUser(userInput: {email: "a", password: "b"}) { _id } }`, ""))
	assert.False(t, IsMutation(`{ events { _id } }`, ""))
	assert.False(t, IsMutation(`query Q { events { _id } }`, "Q"))
	assert.True(t, IsMutation(`query Q { events { _id } } mutation M { bookEvent(eventId: "1") { _id } }`, "M"))
	assert.False(t, IsMutation(`{ broken`, ""))
}

func TestExecuteQueryOnly_RejectsMutations(t *testing.T) {
	api := newTestAPI(t)

	result := api.exec.ExecuteQueryOnly(context.Background(), Request{Query: createEventMutation})

	require.Len(t, result.Errors, 1)
	assert.Equal(t, CodeBadUserInput, result.Errors[0].Extensions["code"])
}

func TestSelectsField(t *testing.T) {
	assert.True(t, SelectsField(`{ login(email: "a", password: "b") { token } }`, "", "login"))
	assert.True(t, SelectsField(`{ ...F } fragment F on Query { login(email: "a", password: "b") { token } }`, "", "login"))
	assert.True(t, SelectsField(`{ ... on Query { login(email: "a", password: "b") { token } } }`, "", "login"))
	assert.False(t, SelectsField(`{ events { _id } }`, "", "login"))
	assert.False(t, SelectsField(`query A { events { _id } } query B { login(email: "a", password: "b") { token } }`, "A", "login"))
	assert.False(t, SelectsField(`{ broken`, "", "login"))
}

func TestExecuteQueryOnly_RejectsLogin(t *testing.T) {
	api := newTestAPI(t)
	api.signupAndLogin(t, "a@x.com", "pw")

	result := api.exec.ExecuteQueryOnly(context.Background(), Request{
		Query:     loginQuery,
		Variables: map[string]interface{}{"email": "a@x.com", "password": "pw"},
	})

	require.Len(t, result.Errors, 1)
	assert.Equal(t, CodeBadUserInput, result.Errors[0].Extensions["code"])
	assert.Nil(t, result.Data)
}
