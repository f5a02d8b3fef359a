package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"appealapp/src/client"
	"appealapp/src/models"
	"appealapp/src/response"
	"appealapp/src/types"
	"appealapp/src/wizard"
)

func testToken(t *testing.T, ttl time.Duration) string {
	t.Helper()
	claims := types.Claims{
		UserID:   42,
		Username: "ivanov",
		Role:     string(models.UserRoleUser),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func signedInClient(t *testing.T, url string) *client.Client {
	t.Helper()
	c := client.New(url)
	require.NoError(t, c.Session().SignIn(testToken(t, time.Hour)))
	return c
}

// filledForm walks a complete valid individual flow.
func filledForm(t *testing.T) *wizard.FormState {
	t.Helper()
	f := wizard.NewFormState()
	steps := []map[string]string{
		{"name": "Иванов Иван Иванович", "address": "г. Москва, ул. Ленина, д. 10", "phone": "+79991234567"},
		{"resolutionNumber": "18810177170500000000", "resolutionDate": "2025-05-01"},
		{"issuingAuthority": "ГИБДД, Иванов И.И.", "receivedDate": "2025-05-12"},
		{"violationDate": "2025-04-28", "violationTime": "14:30", "violationAddress": "г. Москва, ул. Тверская, д. 1"},
		{"carModel": "Toyota Camry", "carPlate": "А123ВС77", "detectionMethod": "Камера"},
	}
	for _, fields := range steps {
		for name, value := range fields {
			f.SetField(name, value)
		}
		require.True(t, f.Advance())
	}
	f.SetAttachment(wizard.FieldPhoto, wizard.NewAttachment("scan.png", 9, "image/png",
		[]byte("png bytes")))
	require.True(t, f.Advance())
	f.SetConsent(wizard.FieldAgreement, true)
	f.SetConsent(wizard.FieldTerms, true)
	require.True(t, f.CanSubmit())
	return f
}

func TestLoginStoresSession(t *testing.T) {
	token := testToken(t, time.Hour)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/login", r.URL.Path)
		json.NewEncoder(w).Encode(response.TokenResponse{Token: token, UID: 42, Username: "ivanov", Role: "user"})
	}))
	defer srv.Close()

	c := client.New(srv.URL)
	require.NoError(t, c.Login(context.Background(), "ivanov", "secret1"))

	assert.True(t, c.Session().SignedIn())
	assert.Equal(t, uint(42), c.Session().UserID())
	assert.Equal(t, "ivanov", c.Session().Username())
}

func TestLoginBadCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(response.ErrorResponse{Error: "invalid credentials"})
	}))
	defer srv.Close()

	c := client.New(srv.URL)
	err := c.Login(context.Background(), "ivanov", "wrong")

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "invalid credentials", apiErr.Message)
	assert.False(t, c.Session().SignedIn())
}

func TestSessionNotifiesSubscribers(t *testing.T) {
	s := client.NewSession()
	var states []bool
	unsubscribe := s.Subscribe(func(signedIn bool) { states = append(states, signedIn) })

	require.NoError(t, s.SignIn(testToken(t, time.Hour)))
	s.SignOut()
	unsubscribe()
	require.NoError(t, s.SignIn(testToken(t, time.Hour)))

	assert.Equal(t, []bool{true, false}, states)
}

func TestExpiredTokenIsNotLive(t *testing.T) {
	s := client.NewSession()
	require.NoError(t, s.SignIn(testToken(t, -time.Minute)))
	assert.False(t, s.SignedIn())
}

func TestSubmitRequiresSession(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer srv.Close()

	c := client.New(srv.URL)
	_, err := c.SubmitComplaint(context.Background(), filledForm(t))

	assert.ErrorIs(t, err, client.ErrNotSignedIn)
	assert.Zero(t, hits, "no network call without a session")
}

func TestSubmitIncompleteForm(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected request")
	}))
	defer srv.Close()

	c := signedInClient(t, srv.URL)
	f := filledForm(t)
	f.SetConsent(wizard.FieldTerms, false)

	_, err := c.SubmitComplaint(context.Background(), f)
	assert.ErrorIs(t, err, client.ErrFormIncomplete)
	assert.Equal(t, "Иванов Иван Иванович", f.Value("name"))
}

func TestSubmitComplaintSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/user":
			json.NewEncoder(w).Encode(models.User{ID: 42, Username: "ivanov", Email: "ivanov@example.ru"})
		case "/api/complaints":
			require.Equal(t, http.MethodPost, r.Method)
			require.NotEmpty(t, r.Header.Get("Authorization"))
			require.NoError(t, r.ParseMultipartForm(8<<20))

			assert.Equal(t, "individual", r.FormValue("userType"))
			assert.Equal(t, "Иванов Иван Иванович", r.FormValue("name"))
			assert.Equal(t, "true", r.FormValue("agreement"))
			assert.Equal(t, "true", r.FormValue("terms"))
			assert.Equal(t, "ivanov@example.ru", r.FormValue("email"), "email filled from the account")
			assert.NotEmpty(t, r.FormValue("description"), "description derived from the resolution")
			assert.Empty(t, r.FormValue("currentStep"), "no step bookkeeping on the wire")

			file, header, err := r.FormFile("photo")
			require.NoError(t, err)
			defer file.Close()
			assert.Equal(t, "scan.png", header.Filename)

			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(response.SuccessResponse{Data: models.Complaint{
				ID: 7, Kind: models.ComplaintKindIndividual, Status: models.ComplaintStatusPending,
			}})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := signedInClient(t, srv.URL)
	f := filledForm(t)

	created, err := c.SubmitComplaint(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, uint(7), created.ID)
	assert.Equal(t, models.ComplaintStatusPending, created.Status)

	// 2xx resets the form
	assert.Equal(t, 1, f.Step())
	assert.Empty(t, f.Value("name"))
	assert.False(t, f.Consent(wizard.FieldAgreement))
}

func TestSubmitPreservesValuesOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/user" {
			json.NewEncoder(w).Encode(models.User{Email: "ivanov@example.ru"})
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(response.ValidationErrorResponse{
			Error:  "проверьте правильность заполнения полей",
			Fields: map[string]string{"inn": "Неверный формат ИНН"},
		})
	}))
	defer srv.Close()

	c := signedInClient(t, srv.URL)
	f := filledForm(t)

	_, err := c.SubmitComplaint(context.Background(), f)

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Неверный формат ИНН", apiErr.Fields["inn"])

	// values survive the failure for a manual retry
	assert.Equal(t, 7, f.Step())
	assert.Equal(t, "Иванов Иван Иванович", f.Value("name"))
	assert.True(t, f.Consent(wizard.FieldTerms))
}

func TestSubmitRetryResendsFullAttachment(t *testing.T) {
	var sizes []int64
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/user" {
			json.NewEncoder(w).Encode(models.User{Email: "ivanov@example.ru"})
			return
		}
		require.NoError(t, r.ParseMultipartForm(8<<20))
		_, header, err := r.FormFile("photo")
		require.NoError(t, err)
		sizes = append(sizes, header.Size)

		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(response.ErrorResponse{Error: "temporary failure"})
			return
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(response.SuccessResponse{Data: models.Complaint{ID: 3}})
	}))
	defer srv.Close()

	c := signedInClient(t, srv.URL)
	f := filledForm(t)

	_, err := c.SubmitComplaint(context.Background(), f)
	require.Error(t, err)

	// the manual retry carries the full file again
	created, err := c.SubmitComplaint(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, uint(3), created.ID)
	require.Equal(t, []int64{9, 9}, sizes)
}

func TestSingleInFlightSubmission(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/user" {
			json.NewEncoder(w).Encode(models.User{Email: "ivanov@example.ru"})
			return
		}
		close(started)
		<-release
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(response.SuccessResponse{Data: models.Complaint{ID: 1}})
	}))
	defer srv.Close()

	c := signedInClient(t, srv.URL)
	first := filledForm(t)

	firstErr := make(chan error, 1)
	go func() {
		_, err := c.SubmitComplaint(context.Background(), first)
		firstErr <- err
	}()

	// second submission while the first is parked in the handler
	<-started
	_, err := c.SubmitComplaint(context.Background(), filledForm(t))
	assert.ErrorIs(t, err, client.ErrSubmissionInFlight)

	close(release)
	assert.NoError(t, <-firstErr)
}

func TestMyComplaints(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/complaints", r.URL.Path)
		require.Equal(t, http.MethodGet, r.Method)
		json.NewEncoder(w).Encode(response.SuccessResponse{Data: []models.Complaint{
			{ID: 2, Status: models.ComplaintStatusPending},
			{ID: 1, Status: models.ComplaintStatusResolved},
		}})
	}))
	defer srv.Close()

	c := signedInClient(t, srv.URL)
	complaints, err := c.MyComplaints(context.Background())
	require.NoError(t, err)
	require.Len(t, complaints, 2)
	assert.Equal(t, uint(2), complaints[0].ID)
}
