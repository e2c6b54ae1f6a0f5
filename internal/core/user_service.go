package core

import (
	"context"
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"studyhelp.app/backend/internal/blob"
	"studyhelp.app/backend/internal/store"
)

const minNameLength = 3

var institutionalEmail = regexp.MustCompile(`.+@.+\.edu\.br$`)

type UserService struct {
	users    *store.UserStore
	uploader blob.Uploader
	log      *zap.Logger
}

func NewUserService(users *store.UserStore, uploader blob.Uploader, log *zap.Logger) *UserService {
	return &UserService{users: users, uploader: uploader, log: log}
}

// CreateProfile registers the profile of an authenticated user. Only
// institutional (.edu.br) addresses may sign up.
func (s *UserService) CreateProfile(ctx context.Context, uid, email, name string) error {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return err
	}
	if !institutionalEmail.MatchString(email) {
		return fmt.Errorf("%w: sign up is restricted to institutional e-mail addresses (.edu.br)", ErrForbidden)
	}

	existing, err := s.users.Get(ctx, uid)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("%w: profile for %s", ErrConflict, uid)
	}

	return s.users.Create(ctx, store.User{
		UID:             uid,
		Email:           email,
		Name:            name,
		HelpingSubjects: []string{},
		Avatar:          avatarInitial(name),
	})
}

func (s *UserService) GetMe(ctx context.Context, uid string) (*store.User, error) {
	u, err := s.users.Get(ctx, uid)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("%w: profile for %s", ErrNotFound, uid)
	}
	return u, nil
}

// ProfileUpdate carries the editable profile fields; nil leaves a field as is.
type ProfileUpdate struct {
	Name              *string  `json:"name"`
	HelpingSubjects   []string `json:"helping_subjects"`
	AvatarImageBase64 *string  `json:"avatarImageBase64"`
}

// UpdateMe applies the update and returns the refreshed profile. An avatar
// given as a data URL is uploaded and stored as avatarUrl.
func (s *UserService) UpdateMe(ctx context.Context, uid string, upd ProfileUpdate) (*store.User, error) {
	changes := store.ProfileChanges{HelpingSubjects: upd.HelpingSubjects}
	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if err := validateName(name); err != nil {
			return nil, err
		}
		changes.Name = &name
	}

	if upd.AvatarImageBase64 != nil && *upd.AvatarImageBase64 != "" {
		url, err := s.uploadAvatar(ctx, uid, *upd.AvatarImageBase64)
		if err != nil {
			return nil, err
		}
		changes.AvatarURL = &url
	}

	if changes.Empty() {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidArgument)
	}

	if err := s.users.Update(ctx, uid, changes); err != nil {
		return nil, mapNotFound(err)
	}
	return s.GetMe(ctx, uid)
}

// uploadAvatar decodes a data URL (data:image/png;base64,...) and stores the
// image under the user's profile_pictures folder.
func (s *UserService) uploadAvatar(ctx context.Context, uid, dataURL string) (string, error) {
	contentType, data, err := decodeDataURL(dataURL)
	if err != nil {
		return "", err
	}

	objectPath := fmt.Sprintf("profile_pictures/%s/%s.jpg", uid, uuid.NewString())
	url, err := s.uploader.Put(ctx, objectPath, data, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}
	s.log.Info("avatar uploaded", zap.String("uid", uid), zap.Int("bytes", len(data)))
	return url, nil
}

// Helpers lists the users offering help in subject, without the requester.
func (s *UserService) Helpers(ctx context.Context, subject, requester string) ([]store.Helper, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return nil, fmt.Errorf("%w: subject is required", ErrInvalidArgument)
	}

	all, err := s.users.ListBySubject(ctx, subject)
	if err != nil {
		return nil, err
	}
	helpers := make([]store.Helper, 0, len(all))
	for _, h := range all {
		if h.UID != requester {
			helpers = append(helpers, h)
		}
	}
	return helpers, nil
}

// PublicProfiles returns name and avatar of each existing uid, in the order
// asked. Unknown and blank uids are skipped.
func (s *UserService) PublicProfiles(ctx context.Context, uids []string) ([]store.PublicProfile, error) {
	profiles := make([]store.PublicProfile, 0, len(uids))
	for _, uid := range uids {
		uid = strings.TrimSpace(uid)
		if uid == "" {
			continue
		}
		u, err := s.users.Get(ctx, uid)
		if err != nil {
			return nil, err
		}
		if u == nil {
			continue
		}
		profiles = append(profiles, store.PublicProfile{UID: uid, Name: u.Name, AvatarURL: u.AvatarURL})
	}
	return profiles, nil
}

func validateName(name string) error {
	if utf8.RuneCountInString(name) < minNameLength {
		return fmt.Errorf("%w: name must have at least %d characters", ErrInvalidArgument, minNameLength)
	}
	return nil
}

func avatarInitial(name string) string {
	r, _ := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return "?"
	}
	return string(unicode.ToUpper(r))
}

func decodeDataURL(dataURL string) (string, []byte, error) {
	header, payload, ok := strings.Cut(dataURL, ",")
	if !ok || !strings.HasPrefix(header, "data:") || !strings.HasSuffix(header, ";base64") {
		return "", nil, fmt.Errorf("%w: avatar must be a base64 data URL", ErrInvalidArgument)
	}
	contentType := strings.TrimSuffix(strings.TrimPrefix(header, "data:"), ";base64")
	if contentType == "" {
		contentType = blob.DefaultContentType
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: avatar is not valid base64: %v", ErrInvalidArgument, err)
	}
	return contentType, data, nil
}
