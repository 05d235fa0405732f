package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	authorization "github.com/toma2023/fluent-academy-serverside/contexts/identity-access/authorization-service"
	sessiontoken "github.com/toma2023/fluent-academy-serverside/contexts/identity-access/session-token-service"
	classcatalog "github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/class-catalog-service"
	enrollment "github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/enrollment-service"
	sandboxprovider "github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/enrollment-service/adapters/sandbox"
	selectionledger "github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/selection-ledger"
	"github.com/toma2023/fluent-academy-serverside/internal/platform/docstore"
	"github.com/toma2023/fluent-academy-serverside/internal/platform/docstore/memory"
	"github.com/toma2023/fluent-academy-serverside/internal/platform/messaging"
)

type testEnv struct {
	server        *Server
	store         *memory.Store
	bus           *messaging.Bus
	authorization authorization.Module
	stop          context.CancelFunc
}

func newTestServer(t *testing.T, enforceGuards bool) *testEnv {
	t.Helper()
	logger := slog.Default()
	store := memory.NewStore()
	bus := messaging.NewBus(16, logger)

	sessions, err := sessiontoken.NewJWTModule("test-secret", time.Hour, logger)
	if err != nil {
		t.Fatalf("session module: %v", err)
	}
	authz := authorization.NewInMemoryModule(store, logger)
	payments := enrollment.NewInMemoryModule(store, bus, enrollment.Settings{}, logger)

	ctx, cancel := context.WithCancel(context.Background())
	if err := payments.Consumer.Start(ctx); err != nil {
		t.Fatalf("start consumer: %v", err)
	}

	env := &testEnv{
		server: New(Modules{
			SessionToken:  sessions,
			Authorization: authz,
			Catalog:       classcatalog.NewInMemoryModule(store, logger),
			Selections:    selectionledger.NewInMemoryModule(store, logger),
			Enrollment:    payments,
		}, Config{Addr: ":0", EnforceRoleGuards: enforceGuards}, logger),
		store:         store,
		bus:           bus,
		authorization: authz,
		stop:          cancel,
	}
	t.Cleanup(env.drain)
	return env
}

func (e *testEnv) drain() {
	e.stop()
	e.bus.Wait()
}

func (e *testEnv) do(t *testing.T, method string, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	e.server.Handler().ServeHTTP(rr, req)
	return rr
}

func (e *testEnv) token(t *testing.T, email string) string {
	t.Helper()
	rr := e.do(t, http.MethodPost, "/jwt", map[string]string{"email": email}, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("issue token: %d %s", rr.Code, rr.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	decodeBody(t, rr, &resp)
	return resp.Token
}

func (e *testEnv) registerUser(t *testing.T, email string) string {
	t.Helper()
	rr := e.do(t, http.MethodPost, "/users", map[string]string{"email": email, "name": email}, "")
	var resp struct {
		InsertedID string `json:"insertedId"`
	}
	decodeBody(t, rr, &resp)
	if resp.InsertedID == "" {
		t.Fatalf("expected %s to be created, got %s", email, rr.Body.String())
	}
	return resp.InsertedID
}

func (e *testEnv) seedAdmin(t *testing.T, email string) string {
	t.Helper()
	if err := e.authorization.SeedAdmin.Execute(context.Background(), email); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	return e.token(t, email)
}

func (e *testEnv) seedInstructor(t *testing.T, adminToken string, email string) string {
	t.Helper()
	userID := e.registerUser(t, email)
	rr := e.do(t, http.MethodPatch, "/users/instructor/"+userID, nil, adminToken)
	if rr.Code != http.StatusOK {
		t.Fatalf("promote instructor: %d %s", rr.Code, rr.Body.String())
	}
	return e.token(t, email)
}

func (e *testEnv) seed(t *testing.T, collection string, doc map[string]any) {
	t.Helper()
	if _, err := e.store.Collection(collection).InsertOne(context.Background(), doc); err != nil {
		t.Fatalf("seed %s: %v", collection, err)
	}
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), out); err != nil {
		t.Fatalf("decode body %q: %v", rr.Body.String(), err)
	}
}

func assertErrorBody(t *testing.T, rr *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	if rr.Code != status {
		t.Fatalf("expected %d, got %d body=%s", status, rr.Code, rr.Body.String())
	}
	var body struct {
		Error   bool   `json:"error"`
		Message string `json:"message"`
	}
	decodeBody(t, rr, &body)
	if !body.Error || body.Message != message {
		t.Fatalf("expected {error:true,message:%q}, got %s", message, rr.Body.String())
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	env := newTestServer(t, true)
	cases := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/addClass"},
		{http.MethodGet, "/users"},
		{http.MethodGet, "/users/admin/a@example.com"},
		{http.MethodGet, "/users/instructor/a@example.com"},
		{http.MethodPatch, "/users/admin/u1"},
		{http.MethodPatch, "/addClass/c1"},
		{http.MethodPut, "/addFeedback/c1"},
		{http.MethodPut, "/updateMyClass/c1"},
		{http.MethodPost, "/create-payment-intent"},
		{http.MethodPost, "/payments"},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rr := env.do(t, tc.method, tc.path, map[string]any{}, "")
			assertErrorBody(t, rr, http.StatusUnauthorized, unauthorizedMessage)
		})
	}
}

func TestInvalidTokenIsRejected(t *testing.T) {
	env := newTestServer(t, true)
	rr := env.do(t, http.MethodGet, "/users/admin/a@example.com", nil, "not-a-jwt")
	assertErrorBody(t, rr, http.StatusUnauthorized, unauthorizedMessage)

	rr = env.do(t, http.MethodGet, "/selects", nil, "not-a-jwt")
	assertErrorBody(t, rr, http.StatusUnauthorized, unauthorizedMessage)
}

func TestCreateClassForbiddenForStudent(t *testing.T) {
	env := newTestServer(t, true)
	env.registerUser(t, "student@example.com")
	token := env.token(t, "student@example.com")

	rr := env.do(t, http.MethodPost, "/addClass", map[string]any{"name": "Ink", "price": 20, "seats": 4}, token)
	assertErrorBody(t, rr, http.StatusForbidden, forbiddenMessage)
	if n := env.store.Count(docstore.CollectionClasses); n != 0 {
		t.Fatalf("expected no class to be created, got %d", n)
	}
}

func TestInstructorCreatesPendingClass(t *testing.T) {
	env := newTestServer(t, true)
	adminToken := env.seedAdmin(t, "admin@example.com")
	instructorToken := env.seedInstructor(t, adminToken, "teacher@example.com")

	rr := env.do(t, http.MethodPost, "/addClass", map[string]any{"name": "Ink", "price": 20, "seats": 4}, instructorToken)
	if rr.Code != http.StatusOK {
		t.Fatalf("create class: %d %s", rr.Code, rr.Body.String())
	}
	var created struct {
		InsertedID string `json:"insertedId"`
	}
	decodeBody(t, rr, &created)

	rr = env.do(t, http.MethodGet, "/addClass/"+created.InsertedID, nil, "")
	var class struct {
		Status          string `json:"status"`
		EnrollStudent   int64  `json:"enrollStudent"`
		InstructorEmail string `json:"instructorEmail"`
	}
	decodeBody(t, rr, &class)
	if class.Status != "pending" || class.EnrollStudent != 0 || class.InstructorEmail != "teacher@example.com" {
		t.Fatalf("unexpected class: %s", rr.Body.String())
	}

	// Admin-only mutation refuses the instructor and accepts the admin.
	rr = env.do(t, http.MethodPatch, "/addClass/"+created.InsertedID, map[string]string{"status": "approved"}, instructorToken)
	assertErrorBody(t, rr, http.StatusForbidden, forbiddenMessage)
	rr = env.do(t, http.MethodPatch, "/addClass/"+created.InsertedID, map[string]string{"status": "approved"}, adminToken)
	if rr.Code != http.StatusOK {
		t.Fatalf("approve class: %d %s", rr.Code, rr.Body.String())
	}
}

func TestRegisterUserIsIdempotent(t *testing.T) {
	env := newTestServer(t, true)
	env.registerUser(t, "a@example.com")

	rr := env.do(t, http.MethodPost, "/users", map[string]string{"email": "a@example.com", "role": "admin"}, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var resp struct {
		Message string `json:"message"`
	}
	decodeBody(t, rr, &resp)
	if resp.Message != "user already exists" {
		t.Fatalf("expected existing-user message, got %s", rr.Body.String())
	}
	if n := env.store.Count(docstore.CollectionUsers); n != 1 {
		t.Fatalf("expected one user, got %d", n)
	}
}

func TestRoleChecksReportStoredRole(t *testing.T) {
	env := newTestServer(t, true)
	env.seedAdmin(t, "admin@example.com")
	env.registerUser(t, "student@example.com")
	studentToken := env.token(t, "student@example.com")

	cases := []struct {
		path string
		key  string
		want bool
	}{
		{"/users/admin/admin@example.com", "admin", true},
		{"/users/admin/student@example.com", "admin", false},
		{"/users/instructor/admin@example.com", "instructor", false},
		{"/users/instructor/ghost@example.com", "instructor", false},
	}
	for _, tc := range cases {
		rr := env.do(t, http.MethodGet, tc.path, nil, studentToken)
		if rr.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", tc.path, rr.Code)
		}
		var body map[string]bool
		decodeBody(t, rr, &body)
		if body[tc.key] != tc.want {
			t.Fatalf("%s: expected %s=%v, got %s", tc.path, tc.key, tc.want, rr.Body.String())
		}
	}
}

func TestRoleAssignmentRequiresAdmin(t *testing.T) {
	env := newTestServer(t, true)
	userID := env.registerUser(t, "student@example.com")
	token := env.token(t, "student@example.com")

	rr := env.do(t, http.MethodPatch, "/users/admin/"+userID, nil, token)
	assertErrorBody(t, rr, http.StatusForbidden, forbiddenMessage)

	rr = env.do(t, http.MethodGet, "/users/admin/student@example.com", nil, token)
	var body map[string]bool
	decodeBody(t, rr, &body)
	if body["admin"] {
		t.Fatalf("self escalation must not succeed")
	}
}

func TestRoleGuardsCanBeDisabled(t *testing.T) {
	env := newTestServer(t, false)
	rr := env.do(t, http.MethodPatch, "/addClass/c-legacy", map[string]string{"status": "denied"}, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected legacy open route, got %d %s", rr.Code, rr.Body.String())
	}
	var resp struct {
		UpsertedCount int64 `json:"upsertedCount"`
	}
	decodeBody(t, rr, &resp)
	if resp.UpsertedCount != 1 {
		t.Fatalf("expected status write to upsert, got %s", rr.Body.String())
	}
}

func TestTopClassOrdering(t *testing.T) {
	env := newTestServer(t, true)
	for i, enrolled := range []int{1, 9, 3, 7, 2} {
		env.seed(t, docstore.CollectionClasses, map[string]any{
			"_id":           "c" + string(rune('a'+i)),
			"status":        "approved",
			"seats":         10,
			"enrollStudent": enrolled,
		})
	}
	env.seed(t, docstore.CollectionClasses, map[string]any{"_id": "pending", "status": "pending", "enrollStudent": 99})

	rr := env.do(t, http.MethodGet, "/topClass?sortBy=enrollStudent&limit=3", nil, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var classes []struct {
		EnrollStudent int64 `json:"enrollStudent"`
	}
	decodeBody(t, rr, &classes)
	if len(classes) != 3 || classes[0].EnrollStudent != 9 || classes[1].EnrollStudent != 7 || classes[2].EnrollStudent != 3 {
		t.Fatalf("expected [9,7,3], got %s", rr.Body.String())
	}

	rr = env.do(t, http.MethodGet, "/topClass?limit=abc", nil, "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad limit, got %d", rr.Code)
	}
}

func TestSelectionsAreScopedToToken(t *testing.T) {
	env := newTestServer(t, true)
	aToken := env.token(t, "a@example.com")

	rr := env.do(t, http.MethodPost, "/selects", map[string]any{"email": "b@example.com", "classId": "c1", "price": 10}, aToken)
	if rr.Code != http.StatusOK {
		t.Fatalf("add selection: %d %s", rr.Code, rr.Body.String())
	}

	rr = env.do(t, http.MethodGet, "/selects?email=a@example.com", nil, aToken)
	var selections []struct {
		Email string `json:"email"`
	}
	decodeBody(t, rr, &selections)
	if len(selections) != 1 || selections[0].Email != "a@example.com" {
		t.Fatalf("expected token email to own the selection, got %s", rr.Body.String())
	}

	rr = env.do(t, http.MethodGet, "/selects?email=b@example.com", nil, aToken)
	assertErrorBody(t, rr, http.StatusForbidden, forbiddenMessage)

	rr = env.do(t, http.MethodGet, "/selects?email=a@example.com", nil, "")
	if rr.Code != http.StatusOK || bytes.TrimSpace(rr.Body.Bytes())[0] != '[' {
		t.Fatalf("expected empty list without token, got %d %s", rr.Code, rr.Body.String())
	}
	decodeBody(t, rr, &selections)
	if len(selections) != 0 {
		t.Fatalf("expected no selections without token, got %d", len(selections))
	}
}

func TestRemoveUnknownSelectionReportsZero(t *testing.T) {
	env := newTestServer(t, true)
	rr := env.do(t, http.MethodDelete, "/selects/does-not-exist", nil, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var resp struct {
		DeletedCount int64 `json:"deletedCount"`
	}
	decodeBody(t, rr, &resp)
	if resp.DeletedCount != 0 {
		t.Fatalf("expected zero deleted, got %s", rr.Body.String())
	}
}

func TestPaymentFlowEnrollsStudent(t *testing.T) {
	env := newTestServer(t, true)
	env.seed(t, docstore.CollectionClasses, map[string]any{"_id": "c1", "status": "approved", "price": 50, "seats": 5, "enrollStudent": 10})
	token := env.token(t, "a@example.com")

	rr := env.do(t, http.MethodPost, "/selects", map[string]any{"classId": "c1", "price": 50}, token)
	var added struct {
		InsertedID string `json:"insertedId"`
	}
	decodeBody(t, rr, &added)

	rr = env.do(t, http.MethodPost, "/create-payment-intent", map[string]any{"price": 50}, token)
	if rr.Code != http.StatusOK {
		t.Fatalf("create intent: %d %s", rr.Code, rr.Body.String())
	}

	rr = env.do(t, http.MethodPost, "/payments", map[string]any{
		"price":         50,
		"transactionId": "pi_test",
		"addItems":      []string{added.InsertedID},
		"selectedItems": []string{"c1"},
	}, token)
	if rr.Code != http.StatusOK {
		t.Fatalf("complete payment: %d %s", rr.Code, rr.Body.String())
	}
	var paid struct {
		InsertResult struct {
			InsertedID string `json:"insertedId"`
		} `json:"insertResult"`
		DeleteResult struct {
			DeletedCount int64 `json:"deletedCount"`
		} `json:"deleteResult"`
	}
	decodeBody(t, rr, &paid)
	if paid.InsertResult.InsertedID == "" || paid.DeleteResult.DeletedCount != 1 {
		t.Fatalf("unexpected payment response %s", rr.Body.String())
	}
	env.drain()

	rr = env.do(t, http.MethodGet, "/addClass/c1", nil, "")
	var class struct {
		Seats         int64 `json:"seats"`
		EnrollStudent int64 `json:"enrollStudent"`
	}
	decodeBody(t, rr, &class)
	if class.Seats != 4 || class.EnrollStudent != 11 {
		t.Fatalf("expected seats=4 enrollStudent=11, got %s", rr.Body.String())
	}

	rr = env.do(t, http.MethodGet, "/payments/a@example.com", nil, "")
	var history []map[string]any
	decodeBody(t, rr, &history)
	if len(history) != 1 {
		t.Fatalf("expected one payment in history, got %s", rr.Body.String())
	}
}

func TestHealthz(t *testing.T) {
	env := newTestServer(t, true)
	rr := env.do(t, http.MethodGet, "/healthz", nil, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

var errStoreDown = errors.New("connection refused")

// unavailableStore fails every read and write.
type unavailableStore struct{}

func (unavailableStore) Collection(string) docstore.Collection { return unavailableCollection{} }
func (unavailableStore) Ping(context.Context) error { return errStoreDown }
func (unavailableStore) Close(context.Context) error { return nil }

type unavailableCollection struct{}

func (unavailableCollection) FindOne(context.Context, docstore.Filter, any) error { return errStoreDown }
func (unavailableCollection) Find(context.Context, docstore.Filter, docstore.FindOptions, any) error {
	return errStoreDown
}
func (unavailableCollection) InsertOne(context.Context, any) (docstore.InsertResult, error) {
	return docstore.InsertResult{}, errStoreDown
}
func (unavailableCollection) InsertIfAbsent(context.Context, docstore.Filter, any) (docstore.InsertResult, bool, error) {
	return docstore.InsertResult{}, false, errStoreDown
}
func (unavailableCollection) UpdateOne(context.Context, docstore.Filter, map[string]any, bool) (docstore.UpdateResult, error) {
	return docstore.UpdateResult{}, errStoreDown
}
func (unavailableCollection) DeleteOne(context.Context, docstore.Filter) (docstore.DeleteResult, error) {
	return docstore.DeleteResult{}, errStoreDown
}
func (unavailableCollection) Increment(context.Context, docstore.Filter, map[string]int64) (docstore.UpdateResult, error) {
	return docstore.UpdateResult{}, errStoreDown
}

func TestListingFailuresAnswerPlainTextNamingTheOperation(t *testing.T) {
	logger := slog.Default()
	sessions, err := sessiontoken.NewJWTModule("test-secret", time.Hour, logger)
	if err != nil {
		t.Fatalf("session module: %v", err)
	}
	store := memory.NewStore()
	server := New(Modules{
		SessionToken:  sessions,
		Authorization: authorization.NewInMemoryModule(store, logger),
		Catalog:       classcatalog.NewDocstoreModule(unavailableStore{}, logger),
		Selections:    selectionledger.NewInMemoryModule(store, logger),
		Enrollment: enrollment.NewDocstoreModule(
			unavailableStore{},
			messaging.NewBus(1, logger),
			sandboxprovider.NewProvider(),
			enrollment.Settings{},
			logger,
		),
	}, Config{Addr: ":0", EnforceRoleGuards: true}, logger)

	cases := []struct {
		path string
		want string
	}{
		{"/topClass?sortBy=enrollStudent&limit=6", topClassesFailedMessage},
		{"/payments/a@example.com", paymentHistoryFailedMessage},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			server.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tc.path, nil))
			if rr.Code != http.StatusInternalServerError {
				t.Fatalf("expected 500, got %d body=%s", rr.Code, rr.Body.String())
			}
			if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
				t.Fatalf("expected plain text body, got content type %q", ct)
			}
			body := strings.TrimSpace(rr.Body.String())
			if body != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, body)
			}
			if strings.Contains(body, errStoreDown.Error()) {
				t.Fatalf("driver error leaked into response: %q", body)
			}
		})
	}
}
