package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/aidar/hackathon-teams/internal/domain"
	"github.com/aidar/hackathon-teams/internal/repository"
)

// Token uses carried in the token_use claim.
const (
	TokenUseSession = "session"
	TokenUseID      = "id"
)

// idTokenReuseMargin is how long a cached ID token must still be valid to be reused.
const idTokenReuseMargin = 30 * time.Second

// Claims represents JWT claims
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	TokenUse string `json:"token_use"`
	jwt.RegisteredClaims
}

type cachedToken struct {
	token     string
	expiresAt time.Time
}

// AuthService is the identity provider: it issues session tokens on sign-in
// and short-lived ID tokens that the team API accepts as bearer credentials.
type AuthService struct {
	userRepo      repository.UserRepository
	jwtSecret     string
	sessionExpiry time.Duration
	idTokenExpiry time.Duration
	now           func() time.Time

	mu       sync.Mutex
	idTokens map[string]cachedToken
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, jwtSecret string, sessionExpiry, idTokenExpiry time.Duration) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		jwtSecret:     jwtSecret,
		sessionExpiry: sessionExpiry,
		idTokenExpiry: idTokenExpiry,
		now:           time.Now,
		idTokens:      make(map[string]cachedToken),
	}
}

// Login issues an ID token for an existing user
func (s *AuthService) Login(ctx context.Context, userID string) (string, error) {
	return s.IDToken(ctx, userID, false)
}

// IssueSession creates a session token for a signed-in user
func (s *AuthService) IssueSession(ctx context.Context, userID string) (string, time.Time, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", time.Time{}, err
	}

	expiresAt := s.now().Add(s.sessionExpiry)
	token, err := s.sign(user, TokenUseSession, expiresAt)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// ResolveSession validates a session token and loads its user.
// The user lookup honours ctx, so callers can bound how long resolution takes.
func (s *AuthService) ResolveSession(ctx context.Context, sessionToken string) (*domain.User, error) {
	claims, err := s.ValidateToken(sessionToken, TokenUseSession)
	if err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, claims.UserID)
}

// IDToken returns an ID token for the user. With forceRefresh a new token is
// always minted; otherwise a cached token is reused while it stays valid.
func (s *AuthService) IDToken(ctx context.Context, userID string, forceRefresh bool) (string, error) {
	if !forceRefresh {
		s.mu.Lock()
		cached, ok := s.idTokens[userID]
		s.mu.Unlock()
		if ok && s.now().Add(idTokenReuseMargin).Before(cached.expiresAt) {
			return cached.token, nil
		}
	}

	// Get user to verify existence and pick up the current username
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}

	expiresAt := s.now().Add(s.idTokenExpiry)
	token, err := s.sign(user, TokenUseID, expiresAt)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.idTokens[userID] = cachedToken{token: token, expiresAt: expiresAt}
	s.mu.Unlock()

	return token, nil
}

func (s *AuthService) sign(user *domain.User, use string, expiresAt time.Time) (string, error) {
	claims := &Claims{
		UserID:   user.UserID,
		Username: user.Username,
		TokenUse: use,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.UserID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(s.now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken validates a JWT token of the given use and returns claims
func (s *AuthService) ValidateToken(tokenString, use string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	}, jwt.WithTimeFunc(s.now))

	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.TokenUse != use {
		return nil, domain.ErrInvalidToken
	}

	return claims, nil
}
