package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token audiences distinguish the two credential populations. An admin token
// never authenticates a client route and vice versa.
const (
	AudienceAdmin  = "admin"
	AudienceClient = "client"
)

// TokenManager issues and verifies the HS256 bearer tokens used by admin
// users and registered clients.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

func (tm *TokenManager) issue(subjectID uint, audience string) (string, time.Time, error) {
	expiresAt := time.Now().Add(tm.ttl)
	claims := &jwt.RegisteredClaims{
		Subject:   fmt.Sprint(subjectID),
		Audience:  jwt.ClaimStrings{audience},
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		Issuer:    "gallerybackend",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// IssueAdminToken creates a signed token for an admin user.
func (tm *TokenManager) IssueAdminToken(userID uint) (string, time.Time, error) {
	return tm.issue(userID, AudienceAdmin)
}

// IssueClientToken creates a signed token for a registered client.
func (tm *TokenManager) IssueClientToken(clientID uint) (string, time.Time, error) {
	return tm.issue(clientID, AudienceClient)
}

func (tm *TokenManager) verify(tokenString, audience string) (uint, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return tm.secret, nil
	}, jwt.WithAudience(audience))
	if err != nil {
		return 0, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return 0, fmt.Errorf("invalid token")
	}

	var subjectID uint
	if _, err := fmt.Sscan(claims.Subject, &subjectID); err != nil {
		return 0, fmt.Errorf("invalid subject in token: %w", err)
	}
	return subjectID, nil
}

// VerifyAdminToken validates an admin token and returns the user id.
func (tm *TokenManager) VerifyAdminToken(tokenString string) (uint, error) {
	return tm.verify(tokenString, AudienceAdmin)
}

// VerifyClientToken validates a client token and returns the client id.
// Callers treat an error as "no client", falling back to guest handling.
func (tm *TokenManager) VerifyClientToken(tokenString string) (uint, error) {
	return tm.verify(tokenString, AudienceClient)
}
