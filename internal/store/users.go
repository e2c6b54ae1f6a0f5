package store

import (
	"context"
	"errors"
	"fmt"

	"studyhelp.app/backend/internal/docstore"
)

const usersCollection = "users"

// ErrNotFound is returned by updates and deletes of documents that do not exist.
var ErrNotFound = errors.New("not found")

type UserStore struct {
	db docstore.Store
}

func NewUserStore(db docstore.Store) *UserStore {
	return &UserStore{db: db}
}

// Get returns the profile stored under uid, or nil when there is none.
func (s *UserStore) Get(ctx context.Context, uid string) (*User, error) {
	doc, err := s.db.Get(ctx, usersCollection, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", uid, err)
	}
	if doc == nil {
		return nil, nil
	}
	u := decodeUser(*doc)
	u.UID = uid
	return &u, nil
}

// Create writes a new profile; created_at is assigned by the store.
func (s *UserStore) Create(ctx context.Context, u User) error {
	subjects := u.HelpingSubjects
	if subjects == nil {
		subjects = []string{}
	}
	payload := map[string]any{
		"uid":              u.UID,
		"email":            u.Email,
		"name":             u.Name,
		"helping_subjects": subjects,
		"avatar":           u.Avatar,
		"created_at":       docstore.ServerTimestamp,
	}
	if err := s.db.Set(ctx, usersCollection, u.UID, payload, false); err != nil {
		return fmt.Errorf("failed to create user %s: %w", u.UID, err)
	}
	return nil
}

func (s *UserStore) Update(ctx context.Context, uid string, changes ProfileChanges) error {
	payload := map[string]any{}
	if changes.Name != nil {
		payload["name"] = *changes.Name
	}
	if changes.HelpingSubjects != nil {
		payload["helping_subjects"] = changes.HelpingSubjects
	}
	if changes.AvatarURL != nil {
		payload["avatarUrl"] = *changes.AvatarURL
	}

	err := s.db.Update(ctx, usersCollection, uid, payload)
	if errors.Is(err, docstore.ErrNotFound) {
		return fmt.Errorf("user %s: %w", uid, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to update user %s: %w", uid, err)
	}
	return nil
}

// ListBySubject returns the users who offer help in subject.
func (s *UserStore) ListBySubject(ctx context.Context, subject string) ([]Helper, error) {
	docs, err := s.db.Query(ctx, usersCollection, docstore.Query{}.Where("helping_subjects", docstore.OpArrayContains, subject))
	if err != nil {
		return nil, fmt.Errorf("failed to query helpers for %q: %w", subject, err)
	}

	helpers := make([]Helper, 0, len(docs))
	for _, d := range docs {
		u := decodeUser(d)
		helpers = append(helpers, Helper{
			UID:             u.UID,
			Name:            u.Name,
			Email:           u.Email,
			AvatarURL:       u.AvatarURL,
			HelpingSubjects: u.HelpingSubjects,
		})
	}
	return helpers, nil
}

func decodeUser(d docstore.Document) User {
	uid := stringField(d.Data, "uid")
	if uid == "" {
		uid = d.ID
	}
	return User{
		UID:             uid,
		Email:           stringField(d.Data, "email"),
		Name:            stringField(d.Data, "name"),
		HelpingSubjects: stringSlice(d.Data, "helping_subjects"),
		Avatar:          stringField(d.Data, "avatar"),
		AvatarURL:       stringField(d.Data, "avatarUrl"),
		CreatedAt:       millisField(d.Data, "created_at"),
	}
}
