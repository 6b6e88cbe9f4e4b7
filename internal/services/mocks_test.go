package services

import (
	"context"
	"io"
	"sort"
	"time"

	"dating-backend/internal/models"
	"dating-backend/internal/repository"
)

// mockUserRepo is a func-field mock; unset fields return ErrNotFound.
type mockUserRepo struct {
	getByIDFn       func(ctx context.Context, id int64) (*models.User, error)
	getByUsernameFn func(ctx context.Context, username string) (*models.User, error)
	listFn          func(ctx context.Context) ([]*models.UserWithPhoto, error)
	updateProfileFn func(ctx context.Context, userID int64, p *models.ProfileUpdate) error
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.getByUsernameFn != nil {
		return m.getByUsernameFn(ctx, username)
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepo) List(ctx context.Context) ([]*models.UserWithPhoto, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockUserRepo) UpdateProfile(ctx context.Context, userID int64, p *models.ProfileUpdate) error {
	if m.updateProfileFn != nil {
		return m.updateProfileFn(ctx, userID, p)
	}
	return nil
}

// usersByName builds a mock user repo resolving the given users by username.
func usersByName(users ...*models.User) *mockUserRepo {
	byName := make(map[string]*models.User, len(users))
	for _, u := range users {
		byName[u.Username] = u
	}
	return &mockUserRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*models.User, error) {
			if u, ok := byName[username]; ok {
				return u, nil
			}
			return nil, repository.ErrNotFound
		},
	}
}

// fakeMessageRepo is an in-memory MessageRepo with the same visibility,
// ordering and purge behavior as the SQL implementation.
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
			copy := *m
			out = append(out, &copy)
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
			copy := *m
			out = append(out, &copy)
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

// fakePhotoRepo is an in-memory PhotoRepo preserving the first-photo-is-main
// rule and the at-most-one-main invariant.
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
	copy := *p
	return &copy, nil
}

func (f *fakePhotoRepo) ListByOwner(ctx context.Context, ownerID int64) ([]*models.Photo, error) {
	var out []*models.Photo
	for _, p := range f.photos {
		if p.OwnerID == ownerID {
			copy := *p
			out = append(out, &copy)
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

func (f *fakePhotoRepo) mainCount(ownerID int64) int {
	n := 0
	for _, p := range f.photos {
		if p.OwnerID == ownerID && p.IsMain {
			n++
		}
	}
	return n
}

// fakeBlobStore records puts and deletes in memory.
type fakeBlobStore struct {
	blobs   map[string][]byte
	putErr  error
	deleted []string
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{blobs: make(map[string][]byte)}
}

func (f *fakeBlobStore) Put(ctx context.Context, key, contentType string, body io.Reader) error {
	if f.putErr != nil {
		return f.putErr
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.blobs[key] = data
	return nil
}

func (f *fakeBlobStore) Delete(ctx context.Context, key string) error {
	delete(f.blobs, key)
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeBlobStore) URL(key string) string {
	return "https://photos.test/" + key
}

func fixedNow() time.Time {
	return time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)
}
