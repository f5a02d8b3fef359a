package integration

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"appealapp/src/models"
	"appealapp/src/response"
)

func TestLogin(t *testing.T) {
	reqBody := map[string]string{"username": "alice", "password": "123456"}
	resp := doRequest(t, "POST", "/api/login", "", reqBody, http.StatusOK)

	var result response.TokenResponse
	err := json.Unmarshal(resp.Body.Bytes(), &result)
	require.NoError(t, err)
	require.Equal(t, "alice", result.Username)
	require.NotEmpty(t, result.Token)
}

func TestLoginWrongPassword(t *testing.T) {
	reqBody := map[string]string{"username": "alice", "password": "nope"}
	doRequest(t, "POST", "/api/login", "", reqBody, http.StatusUnauthorized)
}

func TestRegister(t *testing.T) {
	reqBody := map[string]string{"username": "newuser", "password": "123456", "email": "new@test.ru"}
	resp := doRequest(t, "POST", "/api/register", "", reqBody, http.StatusCreated)
	require.Contains(t, resp.Body.String(), "registered")

	token := loginUser(t, "newuser", "123456")
	require.NotEmpty(t, token)
}

func TestGetUserHidesPassword(t *testing.T) {
	token := loginUser(t, "alice", "123456")

	resp := doRequest(t, "GET", "/api/user", token, nil, http.StatusOK)

	var user models.User
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &user))
	require.Equal(t, "alice", user.Username)
	require.NotContains(t, resp.Body.String(), "password")
}

func TestUpdateUserPhone(t *testing.T) {
	token := loginUser(t, "alice", "123456")

	reqBody := map[string]string{"phone": "+79995554433"}
	resp := doRequest(t, "PUT", "/api/user/update", token, reqBody, http.StatusOK)

	var user models.User
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &user))
	require.Equal(t, "+79995554433", user.Phone)
}

func TestUpdatePasswordWrongOldOne(t *testing.T) {
	token := loginUser(t, "alice", "123456")

	reqBody := map[string]string{"old_password": "nope", "password": "newsecret"}
	doRequest(t, "PUT", "/api/user/update", token, reqBody, http.StatusUnauthorized)
}

func TestAuthStatus(t *testing.T) {
	token := loginUser(t, "alice", "123456")
	resp := doRequest(t, "GET", "/api/auth/status", token, nil, http.StatusOK)
	require.Contains(t, resp.Body.String(), "valid")

	doRequest(t, "GET", "/api/auth/status", "garbage", nil, http.StatusUnauthorized)
}
