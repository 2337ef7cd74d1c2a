// Package token extracts claims from bearer access tokens without verifying
// them. The tool routes and scope-gates on claims supplied by the caller; the
// issuing server is the one that authenticates the token, so no signature,
// expiry, or audience check happens here. Do not add one.
package token

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hardwaylabs/conacct/pkg/cli"
)

// Claims holds the payload fields the tool reads from an access token.
type Claims struct {
	// Issuer is the raw iss claim, used to derive the API host.
	Issuer string
	// Scope is the space-delimited scope claim, empty when absent.
	Scope string
}

// Extract decodes the payload segment of a compact three-part token and
// returns its iss and scope claims. Only the payload is looked at; the header
// and signature segments pass through untouched. Any segment-count anomaly,
// invalid base64url, or invalid JSON is reported uniformly as a malformed
// token.
func Extract(tokenString string) (*Claims, error) {
	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 {
		return nil, cli.Errorf(cli.KindMalformedToken,
			"malformed access token: expected 3 dot-separated segments, got %d", len(parts))
	}

	payload, err := jwt.NewParser().DecodeSegment(parts[1])
	if err != nil {
		return nil, cli.Errorf(cli.KindMalformedToken,
			"malformed access token: payload segment is not valid base64url: %w", err)
	}

	mapClaims := jwt.MapClaims{}
	if err := json.Unmarshal(payload, &mapClaims); err != nil {
		return nil, cli.Errorf(cli.KindMalformedToken,
			"malformed access token: payload segment is not valid JSON: %w", err)
	}

	claims := &Claims{}
	if iss, err := mapClaims.GetIssuer(); err == nil {
		claims.Issuer = iss
	}
	if scope, ok := mapClaims["scope"].(string); ok {
		claims.Scope = scope
	}
	return claims, nil
}

// HasScope reports whether required appears as a whole whitespace-delimited
// entry of the scope claim. Substrings of longer scope names do not match.
func (c *Claims) HasScope(required string) bool {
	return slices.Contains(strings.Fields(c.Scope), required)
}

// RequireScope returns an error naming both the required scope and the scopes
// the token actually carries when the required scope is absent.
func (c *Claims) RequireScope(required string) error {
	if c.HasScope(required) {
		return nil
	}
	return cli.Errorf(cli.KindInsufficientScope,
		"access token is missing required scope %q (token scopes: %q)", required, c.Scope)
}

// String renders the claims for diagnostic logging.
func (c *Claims) String() string {
	return fmt.Sprintf("iss=%q scope=%q", c.Issuer, c.Scope)
}
