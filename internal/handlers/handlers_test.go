package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"

	"dating-backend/internal/middleware"
	"dating-backend/internal/models"
	"dating-backend/internal/repository"

	"github.com/go-chi/chi/v5"
)

// Shared in-memory fixtures for handler tests. The services under the
// handlers are real; only the repositories and the blob store are fakes.

type fakeUserRepo struct {
	byName map[string]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	byName := make(map[string]*models.User, len(users))
	for _, u := range users {
		byName[u.Username] = u
	}
	return &fakeUserRepo{byName: byName}
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	for _, u := range f.byName {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if u, ok := f.byName[username]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) List(ctx context.Context) ([]*models.UserWithPhoto, error) {
	var out []*models.UserWithPhoto
	for _, u := range f.byName {
		out = append(out, &models.UserWithPhoto{User: *u})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, userID int64, p *models.ProfileUpdate) error {
	for _, u := range f.byName {
		if u.ID == userID {
			u.Introduction = p.Introduction
			u.LookingFor = p.LookingFor
			u.Interests = p.Interests
			u.City = p.City
			u.Country = p.Country
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeLikeRepo struct {
	users *fakeUserRepo
	edges map[[2]int64]bool
}

func newFakeLikeRepo(users *fakeUserRepo) *fakeLikeRepo {
	return &fakeLikeRepo{users: users, edges: make(map[[2]int64]bool)}
}

func (f *fakeLikeRepo) Create(ctx context.Context, sourceUserID, likedUserID int64) error {
	key := [2]int64{sourceUserID, likedUserID}
	if f.edges[key] {
		return repository.ErrDuplicate
	}
	f.edges[key] = true
	return nil
}

func (f *fakeLikeRepo) ListLiked(ctx context.Context, sourceUserID int64) ([]*models.UserWithPhoto, error) {
	var out []*models.UserWithPhoto
	for edge := range f.edges {
		if edge[0] != sourceUserID {
			continue
		}
		u, err := f.users.GetByID(ctx, edge[1])
		if err != nil {
			return nil, err
		}
		out = append(out, &models.UserWithPhoto{User: *u})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeMessageRepo struct {
	nextID   int64
	messages map[int64]*models.Message
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{nextID: 1, messages: make(map[int64]*models.Message)}
}

func (f *fakeMessageRepo) Create(ctx context.Context, msg *models.Message) error {
	msg.ID = f.nextID
	f.nextID++
	stored := *msg
	f.messages[msg.ID] = &stored
	return nil
}

func (f *fakeMessageRepo) ListForUser(ctx context.Context, userID int64) ([]*models.Message, error) {
	var out []*models.Message
	for _, m := range f.messages {
		if (m.RecipientID == userID && !m.RecipientDeleted) ||
			(m.SenderID == userID && !m.SenderDeleted) {
			c := *m
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SentAt.After(out[j].SentAt) })
	return out, nil
}

func (f *fakeMessageRepo) Thread(ctx context.Context, userID, otherID int64) ([]*models.Message, error) {
	var out []*models.Message
	for _, m := range f.messages {
		between := (m.SenderID == userID && m.RecipientID == otherID) ||
			(m.SenderID == otherID && m.RecipientID == userID)
		if between && m.VisibleTo(userID) {
			c := *m
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SentAt.Before(out[j].SentAt) })
	return out, nil
}

func (f *fakeMessageRepo) MarkDeleted(ctx context.Context, messageID, userID int64) (models.MessageState, error) {
	m, ok := f.messages[messageID]
	if !ok || (m.SenderID != userID && m.RecipientID != userID) {
		return models.MessageActive, repository.ErrNotFound
	}
	state, err := m.DeleteFor(userID)
	if err != nil {
		return state, repository.ErrNotFound
	}
	if state == models.MessagePurged {
		delete(f.messages, messageID)
	}
	return state, nil
}

type fakePhotoRepo struct {
	nextID int64
	photos map[int64]*models.Photo
}

func newFakePhotoRepo() *fakePhotoRepo {
	return &fakePhotoRepo{nextID: 1, photos: make(map[int64]*models.Photo)}
}

func (f *fakePhotoRepo) Create(ctx context.Context, photo *models.Photo) error {
	photo.IsMain = true
	for _, p := range f.photos {
		if p.OwnerID == photo.OwnerID {
			photo.IsMain = false
			break
		}
	}
	photo.ID = f.nextID
	f.nextID++
	stored := *photo
	f.photos[photo.ID] = &stored
	return nil
}

func (f *fakePhotoRepo) GetByIDForOwner(ctx context.Context, photoID, ownerID int64) (*models.Photo, error) {
	p, ok := f.photos[photoID]
	if !ok || p.OwnerID != ownerID {
		return nil, repository.ErrNotFound
	}
	c := *p
	return &c, nil
}

func (f *fakePhotoRepo) ListByOwner(ctx context.Context, ownerID int64) ([]*models.Photo, error) {
	var out []*models.Photo
	for _, p := range f.photos {
		if p.OwnerID == ownerID {
			c := *p
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakePhotoRepo) SetMain(ctx context.Context, photoID, ownerID int64) error {
	target, ok := f.photos[photoID]
	if !ok || target.OwnerID != ownerID {
		return repository.ErrNotFound
	}
	for _, p := range f.photos {
		if p.OwnerID == ownerID {
			p.IsMain = false
		}
	}
	target.IsMain = true
	return nil
}

func (f *fakePhotoRepo) Delete(ctx context.Context, photoID, ownerID int64) error {
	p, ok := f.photos[photoID]
	if !ok || p.OwnerID != ownerID {
		return repository.ErrNotFound
	}
	delete(f.photos, photoID)
	return nil
}

type fakeBlobStore struct {
	blobs map[string][]byte
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{blobs: make(map[string][]byte)}
}

func (f *fakeBlobStore) Put(ctx context.Context, key, contentType string, body io.Reader) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.blobs[key] = data
	return nil
}

func (f *fakeBlobStore) Delete(ctx context.Context, key string) error {
	delete(f.blobs, key)
	return nil
}

func (f *fakeBlobStore) URL(key string) string {
	return "https://photos.test/" + key
}

// doRequest runs the request through the router as the given user.
func doRequest(router chi.Router, req *http.Request, username string) *httptest.ResponseRecorder {
	req = req.WithContext(middleware.WithUsername(req.Context(), username))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}
