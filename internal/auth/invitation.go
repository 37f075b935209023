package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/yukikurage/acme-dashboard/internal/utils"
)

var (
	ErrInvalidInvitationToken = errors.New("invalid invitation token")
	ErrMissingSecret          = errors.New("invitation secret is not configured")
)

// InvitationClaims is the payload of an invitation token. The token ID
// (jti) keeps two invitations for the same address distinct.
type InvitationClaims struct {
	CompanyID string `json:"company_id"`
	Email     string `json:"email"`
	jwt.RegisteredClaims
}

// InvitationSigner mints and parses HS256 invitation tokens.
type InvitationSigner struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

func NewInvitationSigner(secret string, ttl time.Duration) *InvitationSigner {
	return &InvitationSigner{key: []byte(secret), ttl: ttl, now: time.Now}
}

// TTL is how long a freshly minted invitation stays valid.
func (s *InvitationSigner) TTL() time.Duration {
	return s.ttl
}

// Sign returns a token for companyID/email expiring at expiresAt.
func (s *InvitationSigner) Sign(companyID, email string, expiresAt time.Time) (string, error) {
	if len(s.key) == 0 {
		return "", ErrMissingSecret
	}
	jti, err := utils.GenerateTokenID()
	if err != nil {
		return "", err
	}
	claims := InvitationClaims{
		CompanyID: companyID,
		Email:     email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(s.now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
}

// Parse validates the signature and expiry of tokenStr.
func (s *InvitationSigner) Parse(tokenStr string) (InvitationClaims, error) {
	if len(s.key) == 0 {
		return InvitationClaims{}, ErrMissingSecret
	}
	var claims InvitationClaims
	tok, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.key, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithTimeFunc(s.now))
	if err != nil || !tok.Valid {
		return InvitationClaims{}, ErrInvalidInvitationToken
	}
	return claims, nil
}
