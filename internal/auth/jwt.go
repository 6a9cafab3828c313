package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// TokenPurpose scopes a token to one flow so a verification token cannot be
// replayed as an access or reset token.
type TokenPurpose string

const (
	PurposeAccess        TokenPurpose = "access"
	PurposeVerifyEmail   TokenPurpose = "verify_email"
	PurposePasswordReset TokenPurpose = "password_reset"
)

// Claims carried by every token issued here.
type Claims struct {
	UserID  string       `json:"user_id"`
	Email   string       `json:"email"`
	Admin   bool         `json:"admin,omitempty"`
	Purpose TokenPurpose `json:"purpose"`
	jwt.RegisteredClaims
}

// JWTService issues and validates HS256 tokens. It is the credential gateway:
// handlers resolve a bearer token to a user identity through it and nothing
// else inspects credentials.
type JWTService struct {
	secretKey []byte
	accessTTL time.Duration
	emailTTL  time.Duration
}

func NewJWTService(secretKey string, accessTTL, emailTTL time.Duration) *JWTService {
	return &JWTService{
		secretKey: []byte(secretKey),
		accessTTL: accessTTL,
		emailTTL:  emailTTL,
	}
}

// GenerateAccessToken creates a login token for the user.
func (s *JWTService) GenerateAccessToken(userID, email string, admin bool) (string, time.Time, error) {
	expiresAt := time.Now().Add(s.accessTTL)
	return s.sign(Claims{
		UserID:  userID,
		Email:   email,
		Admin:   admin,
		Purpose: PurposeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   userID,
		},
	}, expiresAt)
}

// GenerateEmailToken creates a short-lived token for a mailed link
// (email verification or password reset).
func (s *JWTService) GenerateEmailToken(userID, email string, purpose TokenPurpose) (string, error) {
	token, _, err := s.sign(Claims{
		UserID:  userID,
		Email:   email,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.emailTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   userID,
		},
	}, time.Time{})
	return token, err
}

// ValidateToken parses the token and checks it was issued for purpose.
func (s *JWTService) ValidateToken(tokenString string, purpose TokenPurpose) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Purpose != purpose {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *JWTService) sign(claims Claims, expiresAt time.Time) (string, time.Time, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}
