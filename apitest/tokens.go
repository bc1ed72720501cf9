package apitest

import (
	"errors"
	"fmt"
	"sync"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"

	refreshTTL = 24 * time.Hour
)

var (
	errWrongTokenType = errors.New("wrong token type")
	errTokenRevoked   = errors.New("token revoked")
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

type tokenClaims struct {
	UserID     int
	TokenType  string
	JTI        string
	Generation int
}

// issuer mints and checks HS256 tokens shaped like SimpleJWT's.
type issuer struct {
	secret    []byte
	accessTTL time.Duration

	mu          sync.Mutex
	generation  int
	blacklisted map[string]struct{}
}

func newIssuer(secret []byte, accessTTL time.Duration) *issuer {
	return &issuer{
		secret:      secret,
		accessTTL:   accessTTL,
		blacklisted: make(map[string]struct{}),
	}
}

func (i *issuer) issuePair(userID int) (access, refresh string, err error) {
	if access, err = i.issue(userID, tokenTypeAccess, i.accessTTL); err != nil {
		return "", "", err
	}
	if refresh, err = i.issue(userID, tokenTypeRefresh, refreshTTL); err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (i *issuer) issue(userID int, tokenType string, ttl time.Duration) (string, error) {
	i.mu.Lock()
	generation := i.generation
	i.mu.Unlock()

	now := NowTimeFunc()
	claims := jwtlib.MapClaims{
		"token_type": tokenType,
		"user_id":    userID,
		"iat":        now.Unix(),
		"exp":        now.Add(ttl).Unix(),
		"jti":        uuid.NewString(),
		"gen":        generation,
	}

	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", tokenType, err)
	}
	return signed, nil
}

func (i *issuer) verify(raw, wantType string) (*tokenClaims, error) {
	parsed, err := jwtlib.Parse(raw, func(t *jwtlib.Token) (any, error) {
		return i.secret, nil
	},
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithExpirationRequired(),
		jwtlib.WithTimeFunc(NowTimeFunc),
	)
	if err != nil {
		return nil, err
	}

	mc, ok := parsed.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil, fmt.Errorf("unexpected claims type %T", parsed.Claims)
	}

	claims := &tokenClaims{}
	claims.TokenType, _ = mc["token_type"].(string)
	claims.JTI, _ = mc["jti"].(string)
	if v, ok := mc["user_id"].(float64); ok {
		claims.UserID = int(v)
	}
	if v, ok := mc["gen"].(float64); ok {
		claims.Generation = int(v)
	}

	if claims.TokenType != wantType {
		return nil, errWrongTokenType
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	if _, revoked := i.blacklisted[claims.JTI]; revoked {
		return nil, errTokenRevoked
	}
	if wantType == tokenTypeAccess && claims.Generation < i.generation {
		return nil, jwtlib.ErrTokenExpired
	}
	return claims, nil
}

func (i *issuer) blacklist(jti string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.blacklisted[jti] = struct{}{}
}

func (i *issuer) expireAccess() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.generation++
}
