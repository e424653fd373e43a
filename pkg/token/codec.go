package token

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/staffdesk/console/domain"
)

// Decode extracts the claims carried by a bearer credential without
// verifying its signature. The console never holds the signing key; the
// server remains the authority. Validity here means well-formed and
// carrying an expiry, nothing more.
func Decode(raw string) (domain.Claims, error) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return domain.Claims{}, domain.WrapError(domain.ErrCodeMalformedToken, "credential token cannot be decoded", err)
	}

	out := domain.Claims{Roles: domain.RoleSet{}}

	if sub, ok := claims["sub"].(string); ok {
		out.Subject = sub
	}
	if rolesClaim, ok := claims["roles"]; ok {
		out.Roles = rolesFromClaim(rolesClaim)
	}

	expiresAt, err := expiryFromClaim(claims["exp"])
	if err != nil {
		return domain.Claims{}, err
	}
	out.ExpiresAt = expiresAt

	return out, nil
}

// DecodeValid decodes the credential and additionally rejects one already
// past its expiry.
func DecodeValid(raw string) (domain.Claims, error) {
	claims, err := Decode(raw)
	if err != nil {
		return domain.Claims{}, err
	}
	if claims.Expired(time.Now()) {
		return domain.Claims{}, domain.ErrTokenExpired
	}
	return claims, nil
}

// rolesFromClaim tolerates both the usual string array and a single string.
// Unknown role names are preserved verbatim so the decoded set is exactly
// the claim.
func rolesFromClaim(claim interface{}) domain.RoleSet {
	switch v := claim.(type) {
	case []interface{}:
		names := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				names = append(names, s)
			}
		}
		return domain.RoleSetFromStrings(names)
	case []string:
		return domain.RoleSetFromStrings(v)
	case string:
		return domain.RoleSetFromStrings([]string{v})
	default:
		return domain.RoleSet{}
	}
}

// expiryFromClaim requires a numeric exp claim. A credential without expiry
// can never be validated, so its absence is treated as malformed.
func expiryFromClaim(claim interface{}) (time.Time, error) {
	switch v := claim.(type) {
	case float64:
		return time.Unix(int64(v), 0), nil
	case json.Number:
		if seconds, err := v.Int64(); err == nil {
			return time.Unix(seconds, 0), nil
		}
	case int64:
		return time.Unix(v, 0), nil
	}
	return time.Time{}, domain.WrapError(domain.ErrCodeMalformedToken,
		"credential token cannot be decoded", fmt.Errorf("missing or non-numeric exp claim"))
}
