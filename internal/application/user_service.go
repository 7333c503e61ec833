package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/recipe-app-api/internal/domain/entity"
	repo "github.com/oksasatya/recipe-app-api/internal/domain/repository"
	"github.com/oksasatya/recipe-app-api/pkg/helpers"
	"github.com/oksasatya/recipe-app-api/pkg/mailer"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailRequired      = errors.New("email is required")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidToken       = errors.New("invalid token")
)

// UserService owns account lifecycle and the opaque bearer-token contract.
type UserService struct {
	Repo         repo.UserRepository
	Tokens       repo.TokenRepository
	Reset        *helpers.ResetTokenManager
	GCS          *storage.Client
	GCSBucket    string
	Redis        *redis.Client
	Logger       *logrus.Logger
	ES           *elasticsearch.Client
	ESUsersIndex string
	Pub          *helpers.RabbitPublisher

	TokenCacheTTL    time.Duration
	ResetPasswordURL string
	MailSendEnabled  bool
}

func tokenCacheKey(key string) string {
	return "auth:token:" + key
}

func NewUserService(userRepo repo.UserRepository, tokenRepo repo.TokenRepository, reset *helpers.ResetTokenManager, gcs *storage.Client, gcsBucket string, rdb *redis.Client, logger *logrus.Logger, es *elasticsearch.Client, esUsersIndex string, pub *helpers.RabbitPublisher) *UserService {
	return &UserService{
		Repo:          userRepo,
		Tokens:        tokenRepo,
		Reset:         reset,
		GCS:           gcs,
		GCSBucket:     gcsBucket,
		Redis:         rdb,
		Logger:        logger,
		ES:            es,
		ESUsersIndex:  esUsersIndex,
		Pub:           pub,
		TokenCacheTTL: 24 * time.Hour,
	}
}

// NormalizeEmail lower-cases the whole address so lookups are
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user with a hashed password. The plaintext never
// reaches the repository.
func (s *UserService) Register(ctx context.Context, email, password, name string) (*entity.User, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Email:    email,
		Password: hash,
		Name:     name,
		IsActive: true,
	}
	if err := s.Repo.Create(u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.enqueueEmail(ctx, u.Email, mailer.TemplateWelcome, map[string]any{
		"Name":  u.Name,
		"Email": u.Email,
	})
	_ = s.indexUser(ctx, u)
	return u, nil
}

// CreateSuperuser registers a user with staff and superuser flags set.
// Used by admin provisioning, not exposed over HTTP.
func (s *UserService) CreateSuperuser(ctx context.Context, email, password string) (*entity.User, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Email:       email,
		Password:    hash,
		IsStaff:     true,
		IsSuperuser: true,
		IsActive:    true,
	}
	if err := s.Repo.Create(u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	_ = s.indexUser(ctx, u)
	return u, nil
}

// Authenticate validates email/password. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Repo.GetByEmail(NormalizeEmail(email))
	if err != nil || u == nil {
		return nil, ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// IssueToken returns the user's opaque token, creating it on first
// call. Re-authenticating yields the same key.
func (s *UserService) IssueToken(ctx context.Context, u *entity.User) (*entity.AuthToken, error) {
	key, err := helpers.GenerateTokenKey()
	if err != nil {
		return nil, err
	}
	t, err := s.Tokens.GetOrCreate(u.ID, key)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("issue token failed")
		}
		return nil, err
	}
	s.cacheToken(ctx, t)
	return t, nil
}

// GetUserByTokenKey resolves a bearer token key to its user. The redis
// cache is consulted first; a miss falls through to the database, never
// to a denial.
func (s *UserService) GetUserByTokenKey(ctx context.Context, key string) (*entity.User, error) {
	if key == "" {
		return nil, ErrInvalidToken
	}
	if s.Redis != nil {
		if uid, err := s.Redis.Get(ctx, tokenCacheKey(key)).Result(); err == nil && uid != "" {
			if u, err := s.Repo.GetByID(uid); err == nil && u != nil && u.IsActive {
				return u, nil
			}
		}
	}
	t, err := s.Tokens.GetByKey(key)
	if err != nil || t == nil {
		return nil, ErrInvalidToken
	}
	u, err := s.Repo.GetByID(t.UserID)
	if err != nil || u == nil || !u.IsActive {
		return nil, ErrInvalidToken
	}
	s.cacheToken(ctx, t)
	return u, nil
}

func (s *UserService) cacheToken(ctx context.Context, t *entity.AuthToken) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Set(ctx, tokenCacheKey(t.Key), t.UserID, s.TokenCacheTTL).Err(); err != nil && s.Logger != nil {
		s.Logger.WithError(err).Warn("token cache set failed")
	}
}

func (s *UserService) GetProfile(userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(userID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

type UpdateProfileInput struct {
	Name     string
	Password string
}

// UpdateProfile overwrites the provided fields. A password, when
// present, is re-hashed before it is stored.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*entity.User, error) {
	u, err := s.Repo.GetByID(userID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	if in.Name != "" {
		u.Name = in.Name
	}
	if in.Password != "" {
		hash, err := helpers.HashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		u.Password = hash
	}
	if err := s.Repo.Update(u); err != nil {
		return nil, err
	}
	_ = s.indexUser(ctx, u)
	return u, nil
}

// UploadAvatar stores the image in GCS and records its public URL.
func (s *UserService) UploadAvatar(ctx context.Context, userID string, r io.Reader, filename, contentType string) (string, error) {
	u, err := s.Repo.GetByID(userID)
	if err != nil || u == nil {
		return "", ErrUserNotFound
	}
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("gcs not configured")
	}
	id := uuid.NewString()
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("avatars", userID, id+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", err
	}
	u.AvatarURL = url
	if err := s.Repo.Update(u); err != nil {
		return "", err
	}
	_ = s.indexUser(ctx, u)
	return url, nil
}

// InitPasswordReset enqueues a reset email when the address is known.
// It reports success either way to prevent account enumeration.
func (s *UserService) InitPasswordReset(ctx context.Context, email string) error {
	u, err := s.Repo.GetByEmail(NormalizeEmail(email))
	if err != nil || u == nil {
		return nil
	}
	token, exp, err := s.Reset.Generate(u.ID)
	if err != nil {
		return err
	}
	link := s.ResetPasswordURL + "?token=" + token
	s.enqueueEmail(ctx, u.Email, mailer.TemplatePasswordReset, map[string]any{
		"Name":      u.Name,
		"Email":     u.Email,
		"ResetURL":  link,
		"ExpiresAt": exp.UTC().Format(time.RFC1123),
	})
	return nil
}

// ConfirmPasswordReset validates the signed token and stores the new
// password hash.
func (s *UserService) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	claims, err := s.Reset.Parse(token)
	if err != nil {
		return ErrInvalidToken
	}
	u, err := s.Repo.GetByID(claims.UserID)
	if err != nil || u == nil {
		return ErrInvalidToken
	}
	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return err
	}
	u.Password = hash
	return s.Repo.Update(u)
}

func (s *UserService) enqueueEmail(ctx context.Context, to, template string, data map[string]any) {
	if s.Pub == nil || !s.MailSendEnabled {
		return
	}
	job := mailer.EmailJob{To: to, Template: template, Data: data}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("template", template).Warn("email enqueue failed")
	}
}

func (s *UserService) indexUser(ctx context.Context, u *entity.User) error {
	if s.ES == nil || s.ESUsersIndex == "" {
		return nil
	}
	doc := map[string]any{
		"id":         u.ID,
		"email":      u.Email,
		"name":       u.Name,
		"avatar_url": u.AvatarURL,
		"is_staff":   u.IsStaff,
		"created_at": u.CreatedAt.Format(time.RFC3339Nano),
		"updated_at": u.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESUsersIndex, DocumentID: u.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("user_id", u.ID).Warn("es index response error")
	}
	return nil
}

// SearchUsers performs a simple multi_match search on email and name.
func (s *UserService) SearchUsers(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESUsersIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"email^2", "name"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESUsersIndex), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
