package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/moveon-app/moveon-server/internal/model"
)

const (
	appSessionTTL      = 5 * time.Minute
	appSessionAudience = "moveon_app"
)

// appSessionClaims carry no user identity, only the audience marker that
// tags the token as an app-session credential.
type appSessionClaims struct {
	jwt.RegisteredClaims
}

// accessClaims carry the authenticated username as subject.
type accessClaims struct {
	jwt.RegisteredClaims
}

// JWT implements model.TokenManager backed by symmetric HMAC. App-session
// and access tokens are signed with distinct secrets, so neither Verify
// method ever accepts the other token class.
type JWT struct {
	appSessionSecret string
	accessSecret     string
	accessTTL        time.Duration
	now              func() time.Time
}

// NewJWT creates a token manager. accessMinutes is the access-token
// lifetime; the app-session lifetime is fixed at five minutes.
func NewJWT(appSessionSecret, accessSecret string, accessMinutes int) *JWT {
	return &JWT{
		appSessionSecret: appSessionSecret,
		accessSecret:     accessSecret,
		accessTTL:        time.Duration(accessMinutes) * time.Minute,
		now:              time.Now,
	}
}

var _ model.TokenManager = (*JWT)(nil)

// IssueAppSessionToken creates a short-lived token identifying a verified
// app installation. No user data is embedded.
func (j *JWT) IssueAppSessionToken() (string, error) {
	now := j.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, appSessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Audience:  jwt.ClaimStrings{appSessionAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(appSessionTTL)),
		},
	})

	tokenString, err := token.SignedString([]byte(j.appSessionSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign app session token: %w", err)
	}

	return tokenString, nil
}

// IssueAccessToken creates an access token with the username as subject.
func (j *JWT) IssueAccessToken(username string) (string, error) {
	now := j.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.accessTTL)),
		},
	})

	tokenString, err := token.SignedString([]byte(j.accessSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return tokenString, nil
}

// VerifyAppSessionToken checks signature, expiry and audience. Every failure
// collapses to model.ErrInvalidAppSession so the caller cannot tell which
// check rejected the token.
func (j *JWT) VerifyAppSessionToken(tokenString string) error {
	claims := &appSessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.appSessionSecret), nil
	}, jwt.WithAudience(appSessionAudience), jwt.WithTimeFunc(j.timeFunc()))
	if err != nil || !token.Valid {
		return model.ErrInvalidAppSession
	}
	return nil
}

// VerifyAccessToken checks signature and expiry and extracts the subject.
// An absent or empty subject is rejected; app-session tokens fail here on
// the signature check because of the distinct secret.
func (j *JWT) VerifyAccessToken(tokenString string) (string, error) {
	claims := &accessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.accessSecret), nil
	}, jwt.WithTimeFunc(j.timeFunc()))
	if err != nil || !token.Valid {
		return "", model.ErrInvalidAccessToken
	}
	if claims.Subject == "" {
		return "", model.ErrInvalidAccessToken
	}
	return claims.Subject, nil
}

func (j *JWT) timeFunc() func() time.Time {
	if j.now != nil {
		return j.now
	}
	return time.Now
}
