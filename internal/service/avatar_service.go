package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strconv"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"gymboost-server/internal/repository"
	"gymboost-server/internal/storage"
)

// MaxAvatarBytes caps accepted avatar uploads.
const MaxAvatarBytes = 5 << 20

var avatarExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
}

// AvatarService stores profile pictures and records their public URL.
type AvatarService interface {
	Upload(ctx context.Context, userID int64, body io.Reader, size int64) (string, error)
}

type avatarService struct {
	users     repository.UserRepository
	store     storage.Service
	keyPrefix string
	log       logrus.FieldLogger
}

// NewAvatarService accepts a nil store; uploads then fail with
// ErrStorageUnavailable.
func NewAvatarService(users repository.UserRepository, store storage.Service, keyPrefix string, log logrus.FieldLogger) AvatarService {
	if keyPrefix == "" {
		keyPrefix = "avatars"
	}
	return &avatarService{
		users:     users,
		store:     store,
		keyPrefix: keyPrefix,
		log:       log,
	}
}

func (s *avatarService) Upload(ctx context.Context, userID int64, body io.Reader, size int64) (string, error) {
	if s.store == nil {
		return "", ErrStorageUnavailable
	}
	if size > MaxAvatarBytes {
		return "", invalid("Avatar must be at most %d MB.", MaxAvatarBytes>>20)
	}

	// content type comes from the bytes, not the client's header
	head := make([]byte, 512)
	n, err := io.ReadFull(body, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read avatar: %w", err)
	}
	if n == 0 {
		return "", invalid("Avatar file is empty.")
	}
	head = head[:n]

	contentType := http.DetectContentType(head)
	ext, ok := avatarExtensions[contentType]
	if !ok {
		return "", invalid("Avatar must be a JPEG or PNG image.")
	}

	userPrefix := path.Join(s.keyPrefix, strconv.FormatInt(userID, 10)) + "/"
	key := userPrefix + uuid.NewString() + ext

	url, err := s.store.PutObject(ctx, io.MultiReader(bytes.NewReader(head), body), storage.PutOptions{
		Key:         key,
		ContentType: contentType,
		Size:        size,
	})
	if err != nil {
		return "", err
	}

	if err := s.users.SetAvatarURL(ctx, userID, url); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	s.pruneOld(ctx, userPrefix, key)
	return url, nil
}

// pruneOld drops earlier avatars of the same user. Failures only leak
// storage, so they are logged and swallowed.
func (s *avatarService) pruneOld(ctx context.Context, prefix, keep string) {
	objects, err := s.store.ListObjects(ctx, prefix)
	if err != nil {
		s.log.WithError(err).WithField("prefix", prefix).Warn("list previous avatars")
		return
	}

	var stale []string
	for _, obj := range objects {
		if obj.Key != keep {
			stale = append(stale, obj.Key)
		}
	}
	if len(stale) == 0 {
		return
	}
	if err := s.store.DeleteObjects(ctx, stale...); err != nil {
		s.log.WithError(err).WithField("prefix", prefix).Warn("delete previous avatars")
	}
}
