// Package signature mints short-lived tickets proving a verification code
// was checked for a given (email, document) pair. The ticket is what the
// signing UI presents to unlock the signature action.
package signature

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	dErrors "propale/pkg/domain-errors"
)

// TicketTTL bounds how long a successful verification stays usable.
const TicketTTL = 15 * time.Minute

// TicketClaims binds a ticket to the verified email, the document it was
// verified for, and the holder's role on that document.
type TicketClaims struct {
	Email      string `json:"email"`
	DocumentID string `json:"document_id"`
	Role       string `json:"role"`
	jwt.RegisteredClaims
}

// TicketService signs and validates signature tickets.
type TicketService struct {
	signingKey []byte
	issuer     string
}

func NewTicketService(signingKey string) *TicketService {
	return &TicketService{
		signingKey: []byte(signingKey),
		issuer:     "propale",
	}
}

// Mint issues a ticket for the given identity, valid from now for TicketTTL.
func (s *TicketService) Mint(email, documentID, role string, now time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, TicketClaims{
		Email:      email,
		DocumentID: documentID,
		Role:       role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(TicketTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			ID:        uuid.NewString(),
		},
	})

	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "sign ticket")
	}
	return signed, nil
}

// Validate parses and checks a ticket, returning its claims.
func (s *TicketService) Validate(ticket string) (*TicketClaims, error) {
	parsed, err := jwt.ParseWithClaims(ticket, &TicketClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "ticket has expired")
		}
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid ticket")
	}

	claims, ok := parsed.Claims.(*TicketClaims)
	if !ok || !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid ticket")
	}
	return claims, nil
}
