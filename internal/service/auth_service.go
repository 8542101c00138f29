package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"fitplan/training-planner/internal/domain"
	"fitplan/training-planner/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// --- Error Definitions ---
var (
	ErrAuthenticationFailed = errors.New("authentication failed: invalid email or password")
	ErrUnauthenticated      = errors.New("unauthenticated")
	// ErrSessionExpired signals that the presented token is stale or
	// corrupted and the client should clear its persisted auth state and
	// prompt for a fresh sign-in.
	ErrSessionExpired  = errors.New("session expired")
	ErrTokenGeneration = errors.New("failed to generate authentication token")
)

// AuthService resolves sessions: sign-in, token verification and profile
// resolution. Anything that prevents resolving an active profile maps to
// "unauthenticated" instead of surfacing as an internal failure; only
// explicit sign-in attempts report why they failed.
type AuthService interface {
	Login(ctx context.Context, email, password string) (token string, user *domain.User, err error)
	// VerifyToken parses and validates a bearer token, returning the
	// subject user id. Expired or garbled tokens yield ErrSessionExpired.
	VerifyToken(tokenString string) (uuid.UUID, error)
	// ResolveUser loads the profile row for a verified identity. Missing
	// or inactive profiles yield ErrUnauthenticated.
	ResolveUser(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// authService implements the AuthService interface.
type authService struct {
	accountRepo   repository.AccountRepository
	userRepo      repository.UserRepository
	jwtSecret     string
	jwtExpiration time.Duration
}

// NewAuthService creates a new instance of authService.
func NewAuthService(accountRepo repository.AccountRepository, userRepo repository.UserRepository, jwtSecret string, jwtExpiration time.Duration) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	if jwtExpiration <= 0 {
		jwtExpiration = time.Hour
	}
	return &authService{
		accountRepo:   accountRepo,
		userRepo:      userRepo,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// Login authenticates the credentials and returns a signed token plus the
// resolved profile.
func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, ErrAuthenticationFailed
	}

	account, err := s.accountRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrAuthenticationFailed
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrAuthenticationFailed
	}

	// credentials are fine; an absent or deactivated profile still means
	// the sign-in is refused
	user, err := s.ResolveUser(ctx, account.ID)
	if err != nil {
		if errors.Is(err, ErrUnauthenticated) {
			return "", nil, ErrAuthenticationFailed
		}
		return "", nil, err
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}
	return token, user, nil
}

// ResolveUser fetches the profile row and applies the active check.
func (s *authService) ResolveUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	if !user.Active {
		return nil, ErrUnauthenticated
	}
	return user, nil
}

// --- JWT Helpers ---

// jwtClaims defines the structure of the JWT payload.
type jwtClaims struct {
	UserID string      `json:"uid"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

func (s *authService) generateJWT(user *domain.User) (string, error) {
	now := time.Now()
	claims := &jwtClaims{
		UserID: user.ID.String(),
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "training-planner",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// VerifyToken validates the token signature and claims. Every parse-level
// failure is folded into ErrSessionExpired so the API layer can answer
// with a single "clear your session and sign in again" code; the original
// message is kept for logs via error wrapping.
func (s *authService) VerifyToken(tokenString string) (uuid.UUID, error) {
	claims := &jwtClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		// expired, malformed and badly signed tokens all get the same
		// answer; logging keeps the distinction for diagnosis
		if !errors.Is(err, jwt.ErrTokenExpired) && !isStaleTokenError(err) {
			log.WithError(err).Debug("token rejected for a non-expiry reason")
		}
		return uuid.Nil, ErrSessionExpired
	}
	if !token.Valid || claims.UserID == "" {
		return uuid.Nil, ErrSessionExpired
	}

	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, ErrSessionExpired
	}
	return id, nil
}

// isStaleTokenError detects the provider's stale-token messages by
// substring, mirroring how the refresh-token failure is recognized.
func isStaleTokenError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "invalid refresh token") ||
		strings.Contains(msg, "token is expired") ||
		strings.Contains(msg, "malformed")
}
