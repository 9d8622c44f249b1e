package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"hotel-booking/apperrors"
	"hotel-booking/models"

	"github.com/golang-jwt/jwt/v4"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Identity is what a verified token says about the caller.
type Identity struct {
	UserID uint
	Role   string
}

func (i Identity) IsAdmin() bool {
	return i.Role == models.RoleAdmin
}

type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService registers users, checks credentials and issues/verifies
// HS256 tokens. Verification is stateless; there is no revocation list.
type AuthService struct {
	DB     *gorm.DB
	Log    zerolog.Logger
	secret []byte
	ttl    time.Duration
	now    func() time.Time

	compareHash func(hash, password []byte) error
}

func NewAuthService(db *gorm.DB, secret string, ttl time.Duration, log zerolog.Logger) *AuthService {
	return &AuthService{
		DB:     db,
		Log:    log.With().Str("component", "auth").Logger(),
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,

		compareHash: bcrypt.CompareHashAndPassword,
	}
}

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

// dummyPasswordHash is compared against when the email is unknown, so both
// login failures cost one bcrypt round.
func dummyPasswordHash() []byte {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)
	})
	return dummyHash
}

// bcrypt only looks at the first 72 bytes.
const maxPasswordBytes = 72

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Register(ctx context.Context, email, password string) (*models.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, apperrors.Validation("email and password are required")
	}

	if len(password) > maxPasswordBytes {
		return nil, apperrors.Validation("password must be at most 72 bytes")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, apperrors.Validation("password must be at most 72 bytes")
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleGuest,
	}
	if err := s.DB.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.Log.Info().Uint("user_id", user.ID).Msg("user registered")
	return user, nil
}

// Login fails the same way for an unknown email and a wrong password.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	var user models.User
	err := s.DB.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = s.compareHash(dummyPasswordHash(), []byte(password))
			return "", nil, apperrors.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("find user: %w", err)
	}

	if s.compareHash([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

func (s *AuthService) IssueToken(user models.User) (string, error) {
	issued := s.now()
	claims := tokenClaims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (s *AuthService) Verify(token string) (Identity, error) {
	var claims tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return Identity{}, apperrors.ErrInvalidToken.Wrap(err)
	}
	if claims.ExpiresAt == nil {
		return Identity{}, apperrors.ErrInvalidToken
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return Identity{}, apperrors.ErrInvalidToken
	}
	switch claims.Role {
	case models.RoleGuest, models.RoleAdmin:
	default:
		return Identity{}, apperrors.ErrInvalidToken
	}

	return Identity{UserID: uint(id), Role: claims.Role}, nil
}
