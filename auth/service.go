package auth

import (
	"strings"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/skillsenselab/aurascribe/errors"
	"github.com/skillsenselab/aurascribe/logger"
)

// Method identifies how a principal authenticated.
type Method string

const (
	MethodAnonymous Method = "anonymous"
	MethodAPIKey    Method = "api_key"
	MethodJWT       Method = "jwt"
)

// Principal is an authenticated caller.
type Principal struct {
	UserID string `json:"user_id"`
	Role   string `json:"role,omitempty"`
	Method Method `json:"method"`
}

// Claims is the JWT claims set issued and verified by the service.
type Claims struct {
	gojwt.RegisteredClaims
	UserID string `json:"user_id"`
	Role   string `json:"role,omitempty"`
}

// Service verifies API keys and issues and verifies bearer tokens.
type Service struct {
	cfg Config
	log *logger.Logger
}

// NewService creates an authentication service.
func NewService(cfg Config, log *logger.Logger) (*Service, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Service{cfg: cfg, log: log.WithComponent("auth")}, nil
}

// Enabled reports whether authentication is enforced.
func (s *Service) Enabled() bool { return s.cfg.Enabled }

// GenerateToken issues a signed bearer token for the given user.
func (s *Service) GenerateToken(userID, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    s.cfg.Issuer,
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(now.Add(s.cfg.tokenTTL())),
		},
		UserID: userID,
		Role:   role,
	}
	token := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", errors.Internal(err)
	}
	return signed, nil
}

// VerifyToken validates a bearer token and returns its claims.
func (s *Service) VerifyToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := gojwt.ParseWithClaims(tokenString, claims, func(t *gojwt.Token) (interface{}, error) {
		if t.Method.Alg() != gojwt.SigningMethodHS256.Alg() {
			return nil, errors.InvalidToken()
		}
		return []byte(s.cfg.JWTSecret), nil
	}, gojwt.WithIssuer(s.cfg.Issuer))
	if err != nil || !token.Valid {
		return nil, errors.InvalidToken()
	}
	return claims, nil
}

// VerifyAPIKey checks a raw API key against the configured hashes.
func (s *Service) VerifyAPIKey(key string) bool {
	for _, hash := range s.cfg.APIKeyHashes {
		if bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)) == nil {
			return true
		}
	}
	return false
}

// HashAPIKey produces a bcrypt hash suitable for APIKeyHashes.
func HashAPIKey(key string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Authenticate resolves a credential to a principal. The credential is
// either "Bearer <jwt>" or a raw API key. An empty credential is only
// admitted when authentication is disabled.
func (s *Service) Authenticate(credential string) (*Principal, error) {
	if !s.cfg.Enabled {
		return &Principal{UserID: "anonymous", Method: MethodAnonymous}, nil
	}
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return nil, errors.Unauthorized("")
	}

	if token, ok := strings.CutPrefix(credential, "Bearer "); ok {
		claims, err := s.VerifyToken(strings.TrimSpace(token))
		if err != nil {
			return nil, err
		}
		return &Principal{UserID: claims.UserID, Role: claims.Role, Method: MethodJWT}, nil
	}

	if s.VerifyAPIKey(credential) {
		return &Principal{UserID: "api-key-client", Method: MethodAPIKey}, nil
	}
	s.log.Warn("authentication rejected", logger.Fields("credential_form", credentialForm(credential)))
	return nil, errors.Unauthorized("Invalid credentials.")
}

func credentialForm(credential string) string {
	if strings.HasPrefix(credential, "Bearer ") {
		return "bearer"
	}
	return "api_key"
}
