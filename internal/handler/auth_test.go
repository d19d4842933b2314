package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/bible-study/internal/handler"
	"github.com/sakif/bible-study/internal/model"
)

func TestAuthHandler_RegisterLoginMe(t *testing.T) {
	db := newTestStore(t)
	authSvc := newTestAuthService(t, db)
	h := handler.NewAuthHandler(authSvc, testLogger())

	// --- Register ---
	rr := httptest.NewRecorder()
	h.HandleRegister(rr, newRequest(t, http.MethodPost, "/api/auth/register",
		`{"name":"Ruth","email":" Ruth@Example.com ","password":"whither-thou-goest"}`, nil, nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, rr.Body.String(), "password")

	registered := decodeBody[model.User](t, rr)
	assert.NotEmpty(t, registered.ID)
	assert.Equal(t, "ruth@example.com", registered.Email)

	// --- Duplicate email ---
	rr = httptest.NewRecorder()
	h.HandleRegister(rr, newRequest(t, http.MethodPost, "/api/auth/register",
		`{"name":"Other","email":"ruth@example.com","password":"x"}`, nil, nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Email already registered", decodeBody[handler.ErrorResponse](t, rr).Detail)

	// --- Login ---
	rr = httptest.NewRecorder()
	h.HandleLogin(rr, newRequest(t, http.MethodPost, "/api/auth/login",
		`{"email":"RUTH@example.com","password":"whither-thou-goest"}`, nil, nil))
	require.Equal(t, http.StatusOK, rr.Code)

	tok := decodeBody[handler.TokenResponse](t, rr)
	assert.Equal(t, "bearer", tok.TokenType)
	require.NotEmpty(t, tok.AccessToken)

	user, err := authSvc.Authenticate(t.Context(), tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	// --- Me ---
	rr = httptest.NewRecorder()
	h.HandleMe(rr, newRequest(t, http.MethodGet, "/api/auth/me", "", user, nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Ruth", decodeBody[model.User](t, rr).Name)
}

func TestAuthHandler_HandleLogin_Failures(t *testing.T) {
	db := newTestStore(t)
	h := handler.NewAuthHandler(newTestAuthService(t, db), testLogger())

	rr := httptest.NewRecorder()
	h.HandleRegister(rr, newRequest(t, http.MethodPost, "/api/auth/register",
		`{"name":"Boaz","email":"boaz@example.com","password":"correct-horse"}`, nil, nil))
	require.Equal(t, http.StatusOK, rr.Code)

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"wrong password", `{"email":"boaz@example.com","password":"wrong"}`, http.StatusUnauthorized},
		{"unknown email", `{"email":"nobody@example.com","password":"correct-horse"}`, http.StatusUnauthorized},
		{"missing password", `{"email":"boaz@example.com"}`, http.StatusUnprocessableEntity},
		{"malformed body", `not json`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			h.HandleLogin(rr, newRequest(t, http.MethodPost, "/api/auth/login", tt.body, nil, nil))
			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestAuthHandler_HandleRegister_Validation(t *testing.T) {
	h := handler.NewAuthHandler(newTestAuthService(t, newTestStore(t)), testLogger())

	tests := []struct {
		name       string
		body       string
		wantDetail string
	}{
		{"missing name", `{"email":"a@b.co","password":"pw"}`, "name is required"},
		{"blank name", `{"name":"   ","email":"a@b.co","password":"pw"}`, "name is required"},
		{"blank email", `{"name":"A","email":"  ","password":"pw"}`, "email is required"},
		{"bad email", `{"name":"A","email":"not-an-email","password":"pw"}`, "email must be a valid email address"},
		{"missing password", `{"name":"A","email":"a@b.co"}`, "password is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			h.HandleRegister(rr, newRequest(t, http.MethodPost, "/api/auth/register", tt.body, nil, nil))

			assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
			assert.Equal(t, tt.wantDetail, decodeBody[handler.ErrorResponse](t, rr).Detail)
		})
	}
}

func TestAuthHandler_HandleRegister_TrimsEmailBeforeValidation(t *testing.T) {
	h := handler.NewAuthHandler(newTestAuthService(t, newTestStore(t)), testLogger())

	tests := []struct {
		name      string
		email     string
		wantEmail string
	}{
		{"leading and trailing spaces", "  naomi@example.com ", "naomi@example.com"},
		{"escaped tab and newline", `\tOrpah@Example.com\n`, "orpah@example.com"},
		{"upper case", "JESSE@EXAMPLE.COM", "jesse@example.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := `{"name":" Naomi ","email":"` + tt.email + `","password":"pw"}`
			rr := httptest.NewRecorder()
			h.HandleRegister(rr, newRequest(t, http.MethodPost, "/api/auth/register", body, nil, nil))

			require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
			user := decodeBody[model.User](t, rr)
			assert.Equal(t, tt.wantEmail, user.Email)
			assert.Equal(t, "Naomi", user.Name)
		})
	}
}
