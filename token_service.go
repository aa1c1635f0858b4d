package fittrack

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// TokenServiceImpl implements the TokenService interface
type TokenServiceImpl struct {
	signingKey        []byte
	tokenExpiration   int
	refreshExpiration int
	issuer            string
	logger            Logger
}

// NewTokenService creates a new TokenService instance. Expirations are
// given in minutes; the access window defaults to 20 when unset.
func NewTokenService(cfg Config, logger Logger) TokenService {
	if logger == nil {
		logger = defLogger{}
	}

	tokenExpiration := cfg.GetTokenExpiration()
	if tokenExpiration <= 0 {
		tokenExpiration = 20
	}

	refreshExpiration := cfg.GetRefreshExpiration()
	if refreshExpiration <= 0 {
		refreshExpiration = tokenExpiration
	}

	return &TokenServiceImpl{
		signingKey:        []byte(cfg.GetSigningKey()),
		tokenExpiration:   tokenExpiration,
		refreshExpiration: refreshExpiration,
		issuer:            cfg.GetIssuer(),
		logger:            logger,
	}
}

// Generate creates a short lived access token for the admin
func (ts *TokenServiceImpl) Generate(admin *Admin) (string, error) {
	return ts.sign(admin, TokenUseAccess, time.Duration(ts.tokenExpiration)*time.Minute)
}

// GenerateRefresh creates the longer lived refresh token
func (ts *TokenServiceImpl) GenerateRefresh(admin *Admin) (string, error) {
	return ts.sign(admin, TokenUseRefresh, time.Duration(ts.refreshExpiration)*time.Minute)
}

func (ts *TokenServiceImpl) sign(admin *Admin, use string, ttl time.Duration) (string, error) {
	if admin == nil {
		return "", errors.New("admin must not be nil", errors.CategoryInternal)
	}

	now := time.Now()
	claims := &AdminClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ts.issuer,
			Subject:   strconv.FormatInt(admin.ID, 10),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		AdminID: admin.ID,
		Email:   admin.Email,
		Use:     use,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedString, err := token.SignedString(ts.signingKey)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to sign JWT")
	}

	return signedString, nil
}

// Validate parses and validates a token string, returning structured claims
func (ts *TokenServiceImpl) Validate(tokenString string) (*AdminClaims, error) {
	parserOptions := make([]jwt.ParserOption, 0, 1)
	if ts.issuer != "" {
		parserOptions = append(parserOptions, jwt.WithIssuer(ts.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &AdminClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			ts.logger.Error("TokenService validate encountered unexpected signing method", "alg", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.signingKey, nil
	}, parserOptions...)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, errors.Wrap(err, ErrTokenMalformed.Category, ErrTokenMalformed.Message).WithTextCode(ErrTokenMalformed.TextCode)
	}

	if claims, ok := token.Claims.(*AdminClaims); ok && token.Valid {
		return claims, nil
	}

	ts.logger.Error("TokenService validate could not decode or validate claims")
	return nil, ErrTokenMalformed
}
