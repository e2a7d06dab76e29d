package jwt

import (
	"errors"
	"time"

	"amenity-booking/internal/domain/user"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// Claims are issued by the community identity provider; this service only validates them.
type Claims struct {
	UserID      uuid.UUID `json:"user_id"`
	Role        string    `json:"role"`
	Email       string    `json:"email"`
	CommunityID uuid.UUID `json:"community_id"`
	jwt.RegisteredClaims
}

// LinkClaims authorize a single confirmation link for a promotion offer.
type LinkClaims struct {
	BookingID uuid.UUID `json:"booking_id"`
	UserID    uuid.UUID `json:"user_id"`
	jwt.RegisteredClaims
}

type Service struct {
	secretKey     []byte
	linkKey       []byte
	tokenDuration time.Duration
}

func NewService(secretKey, linkKey string, tokenDuration time.Duration) *Service {
	return &Service{
		secretKey:     []byte(secretKey),
		linkKey:       []byte(linkKey),
		tokenDuration: tokenDuration,
	}
}

// GenerateToken mints an access token. Used by local tooling and tests.
func (s *Service) GenerateToken(actor user.Actor) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:      actor.UserID,
		Role:        actor.Role.String(),
		Email:       actor.Email,
		CommunityID: actor.CommunityID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenDuration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	if err := s.parse(tokenString, claims, s.secretKey); err != nil {
		return nil, err
	}
	return claims, nil
}

func (s *Service) GenerateLinkToken(bookingID, userID uuid.UUID, expiresAt time.Time) (string, error) {
	claims := LinkClaims{
		BookingID: bookingID,
		UserID:    userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   bookingID.String(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.linkKey)
}

// ValidateLinkToken ignores expiry so an elapsed offer still reaches the
// lifecycle and gets "offer expired" instead of a bare 401.
func (s *Service) ValidateLinkToken(tokenString string) (*LinkClaims, error) {
	claims := &LinkClaims{}
	if err := s.parse(tokenString, claims, s.linkKey, jwt.WithoutClaimsValidation()); err != nil {
		return nil, err
	}
	return claims, nil
}

func (s *Service) parse(tokenString string, claims jwt.Claims, key []byte, opts ...jwt.ParserOption) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return key, nil
	}, opts...)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrExpiredToken
		}
		return ErrInvalidToken
	}

	if !token.Valid {
		return ErrInvalidToken
	}
	return nil
}
