package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"dating-backend/internal/models"
	"dating-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserRouter(users ...*models.User) chi.Router {
	userRepo := newFakeUserRepo(users...)
	svc := services.NewUserService(userRepo, "test-secret")
	h := NewUserHandler(svc)

	r := chi.NewRouter()
	r.Get("/users", h.ListMembers)
	r.Put("/users", h.UpdateProfile)
	return r
}

func TestListMembers(t *testing.T) {
	router := newUserRouter(
		&models.User{ID: 1, Username: "alice", KnownAs: "Alice",
			DateOfBirth: time.Date(1995, time.January, 10, 0, 0, 0, 0, time.UTC)},
		&models.User{ID: 2, Username: "bob", KnownAs: "Bob",
			DateOfBirth: time.Date(1990, time.June, 1, 0, 0, 0, 0, time.UTC)},
	)

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	rec := doRequest(router, req, "alice")
	require.Equal(t, http.StatusOK, rec.Code)

	var members []models.Member
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &members))
	require.Len(t, members, 2)
	assert.Equal(t, "alice", members[0].Username)
	assert.Equal(t, "bob", members[1].Username)
	assert.Greater(t, members[0].Age, 0)
}

func TestUpdateProfile(t *testing.T) {
	user := &models.User{ID: 1, Username: "alice"}
	router := newUserRouter(user)

	body := `{"introduction":"hello","city":"Oslo","country":"Norway"}`
	req := httptest.NewRequest(http.MethodPut, "/users", strings.NewReader(body))
	rec := doRequest(router, req, "alice")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	assert.Equal(t, "hello", user.Introduction)
	assert.Equal(t, "Oslo", user.City)
	assert.Equal(t, "Norway", user.Country)
}

func TestUpdateProfile_BadBody(t *testing.T) {
	router := newUserRouter(&models.User{ID: 1, Username: "alice"})

	req := httptest.NewRequest(http.MethodPut, "/users", strings.NewReader("{"))
	rec := doRequest(router, req, "alice")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateProfile_UnknownCaller(t *testing.T) {
	router := newUserRouter()

	req := httptest.NewRequest(http.MethodPut, "/users", strings.NewReader("{}"))
	rec := doRequest(router, req, "ghost")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
