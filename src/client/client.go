package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"appealapp/src/dto"
	"appealapp/src/models"
	"appealapp/src/response"
	"appealapp/src/wizard"
)

// DefaultTimeout bounds every request; SubmitComplaint additionally honors
// the caller's context.
const DefaultTimeout = 30 * time.Second

var (
	// ErrNotSignedIn is returned before any network call when no live
	// session token is held.
	ErrNotSignedIn = errors.New("необходимо войти в систему")
	// ErrSubmissionInFlight is returned when a submission is already
	// running on this client.
	ErrSubmissionInFlight = errors.New("отправка уже выполняется")
	// ErrFormIncomplete is returned when the form fails its own
	// validation; the failing fields stay in FormState.Errors.
	ErrFormIncomplete = errors.New("форма заполнена не полностью")
)

// APIError carries a non-2xx server reply. Fields is populated on
// validation failures (400) with the per-field messages.
type APIError struct {
	Status  int
	Message string
	Fields  map[string]string
}

func (e *APIError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(names, ", "))
}

// Client talks to one appeal server. It owns the Session and allows a
// single in-flight submission at a time.
type Client struct {
	baseURL string
	http    *http.Client
	session *Session
	busy    int32
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		session: NewSession(),
	}
}

func (c *Client) Session() *Session { return c.session }

// Register creates an account. The caller still has to log in.
func (c *Client) Register(ctx context.Context, input dto.RegisterDTO) error {
	return c.doJSON(ctx, http.MethodPost, "/api/register", input, false, nil)
}

// Login authenticates and stores the returned token in the session.
func (c *Client) Login(ctx context.Context, username, password string) error {
	var tok response.TokenResponse
	input := dto.LoginDTO{Username: username, Password: password}
	if err := c.doJSON(ctx, http.MethodPost, "/api/login", input, false, &tok); err != nil {
		return err
	}
	return c.session.SignIn(tok.Token)
}

// Logout drops the session token.
func (c *Client) Logout() {
	c.session.SignOut()
}

// Me returns the signed-in account.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.doJSON(ctx, http.MethodGet, "/api/user", nil, true, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile changes the account's email, phone or password.
func (c *Client) UpdateProfile(ctx context.Context, input dto.UpdateUserDTO) (*models.User, error) {
	var user models.User
	if err := c.doJSON(ctx, http.MethodPut, "/api/user/update", input, true, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// MyComplaints lists the caller's complaints, newest first.
func (c *Client) MyComplaints(ctx context.Context) ([]models.Complaint, error) {
	var listed struct {
		Data []models.Complaint `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/complaints", nil, true, &listed); err != nil {
		return nil, err
	}
	return listed.Data, nil
}

// AllComplaints lists every complaint. Admin role required.
func (c *Client) AllComplaints(ctx context.Context) ([]models.Complaint, error) {
	var listed struct {
		Data []models.Complaint `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/admin/complaints", nil, true, &listed); err != nil {
		return nil, err
	}
	return listed.Data, nil
}

// SetComplaintStatus applies a status transition. Admin role required.
func (c *Client) SetComplaintStatus(ctx context.Context, id uint, status string) (*models.Complaint, error) {
	var updated struct {
		Data models.Complaint `json:"data"`
	}
	path := fmt.Sprintf("/api/admin/complaints/%d/status", id)
	input := dto.UpdateComplaintStatusDTO{Status: status}
	if err := c.doJSON(ctx, http.MethodPut, path, input, true, &updated); err != nil {
		return nil, err
	}
	return &updated.Data, nil
}

// SubmitComplaint sends a completed wizard form as multipart/form-data.
// It refuses locally, before any network call, when no live token is held
// or the form does not pass its own validation, and allows one in-flight
// submission at a time. On 2xx the form is reset; on failure every entered
// value is preserved and the server's message is returned, with the
// failing fields when the server names them. There is no automatic retry.
func (c *Client) SubmitComplaint(ctx context.Context, form *wizard.FormState) (*models.Complaint, error) {
	token, ok := c.session.Token()
	if !ok {
		return nil, ErrNotSignedIn
	}
	if !atomic.CompareAndSwapInt32(&c.busy, 0, 1) {
		return nil, ErrSubmissionInFlight
	}
	defer atomic.StoreInt32(&c.busy, 0)

	if !form.CanSubmit() {
		return nil, ErrFormIncomplete
	}

	body, contentType, err := c.buildPayload(ctx, form)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/complaints", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeError(resp)
	}

	var created struct {
		Data models.Complaint `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, err
	}
	form.Reset()
	return &created.Data, nil
}

// buildPayload assembles the multipart body: the flow kind, every
// non-empty text field, both consent flags and the attachment when one is
// held. Step bookkeeping never leaves the client. The individual flow
// collects neither an email nor a free-text description on its steps, so
// the email is filled in from the account and the description is derived
// from the contested resolution.
func (c *Client) buildPayload(ctx context.Context, form *wizard.FormState) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("userType", string(form.Kind())); err != nil {
		return nil, "", err
	}
	for name, value := range form.Values() {
		if value == "" {
			continue
		}
		if err := w.WriteField(name, value); err != nil {
			return nil, "", err
		}
	}
	if form.Kind() == wizard.KindIndividual && form.Value("description") == "" {
		summary := fmt.Sprintf("Обжалование постановления №%s от %s",
			form.Value("resolutionNumber"), form.Value("resolutionDate"))
		if err := w.WriteField("description", summary); err != nil {
			return nil, "", err
		}
	}
	if form.Value("email") == "" {
		user, err := c.Me(ctx)
		if err != nil {
			return nil, "", err
		}
		if err := w.WriteField("email", user.Email); err != nil {
			return nil, "", err
		}
	}
	for _, name := range []string{wizard.FieldAgreement, wizard.FieldTerms} {
		if err := w.WriteField(name, strconv.FormatBool(form.Consent(name))); err != nil {
			return nil, "", err
		}
	}
	for _, name := range []string{wizard.FieldPhoto, wizard.FieldFinePhoto} {
		a := form.Attachment(name)
		if a == nil {
			continue
		}
		part, err := w.CreateFormFile("photo", a.Name)
		if err != nil {
			return nil, "", err
		}
		src, err := a.Open()
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(part, src); err != nil {
			return nil, "", err
		}
		break
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

// doJSON runs one JSON request. A nil out discards the response body.
func (c *Client) doJSON(ctx context.Context, method, path string, body interface{}, auth bool, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth {
		token, ok := c.session.Token()
		if !ok {
			return ErrNotSignedIn
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	var parsed response.ValidationErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err == nil && parsed.Error != "" {
		apiErr.Message = parsed.Error
		apiErr.Fields = parsed.Fields
	} else {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
