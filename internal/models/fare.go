package models

import (
	"strings"
)

// Fare-token status suffixes.
const (
	StatusAvailable  = '+'
	StatusWaitlisted = '@'
)

// FareToken is a base fare code plus a one-character availability-status
// suffix: '+' means seats are available, '@' means waitlist only.
type FareToken struct {
	Code   string `json:"code"`
	Status byte   `json:"status"`
}

// ParseFareToken parses a token like "J+" or "PT1@". The base code is 1-3
// characters; the suffix must be '+' or '@'. Returns ok=false for anything
// else -- callers drop bad tokens rather than failing the row.
func ParseFareToken(s string) (FareToken, bool) {
	if len(s) < 2 || len(s) > 4 {
		return FareToken{}, false
	}
	status := s[len(s)-1]
	if status != StatusAvailable && status != StatusWaitlisted {
		return FareToken{}, false
	}
	code := s[:len(s)-1]
	for i := 0; i < len(code); i++ {
		c := code[i]
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return FareToken{}, false
		}
	}
	return FareToken{Code: code, Status: status}, true
}

// Waitlisted reports whether the token carries the waitlist suffix.
func (t FareToken) Waitlisted() bool {
	return t.Status == StatusWaitlisted
}

// String reassembles the wire form of the token.
func (t FareToken) String() string {
	return t.Code + string(t.Status)
}

// SplitFareList parses a space-separated fare-token list, silently dropping
// tokens that do not parse. The input order is preserved.
func SplitFareList(fares string) []FareToken {
	fields := strings.Fields(fares)
	tokens := make([]FareToken, 0, len(fields))
	for _, f := range fields {
		if tok, ok := ParseFareToken(f); ok {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// JoinFareList is the inverse of SplitFareList.
func JoinFareList(tokens []FareToken) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}

// HasFareToken reports whether the award's fare list contains the exact
// token (code and status both matching).
func (a *AwardResult) HasFareToken(want FareToken) bool {
	for _, tok := range SplitFareList(a.Fares) {
		if tok == want {
			return true
		}
	}
	return false
}
