package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// Claims are the access-token claims the console cares about: identity
// for display and roles for command gating. Tokens are parsed without
// signature verification; the platform verified them when it issued
// them, and the console holds no keys. Authorization is enforced
// server-side regardless.
type Claims struct {
	Subject   string
	Email     string
	UserName  string
	AccountID string
	Roles     []string
	ExpiresAt time.Time
}

// ParseClaims extracts console-relevant claims from a raw JWT.
func ParseClaims(rawToken string) (*Claims, error) {
	token, _, err := jwt.NewParser().ParseUnverified(rawToken, jwt.MapClaims{})
	if err != nil {
		return nil, errors.Wrap(err, "[ParseClaims] parse token")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("[ParseClaims] error extracting claims")
	}

	sub, _ := mapClaims["sub"].(string)
	email, _ := mapClaims["email"].(string)
	userName, _ := mapClaims["preferred_username"].(string)
	accountID, _ := mapClaims["accountId"].(string)
	exp, _ := mapClaims["exp"].(float64)

	var roles []string
	if claimRoles, ok := mapClaims["roles"].([]interface{}); ok {
		roles = interfaceArrayToString(claimRoles)
	}

	return &Claims{
		Subject:   sub,
		Email:     email,
		UserName:  userName,
		AccountID: accountID,
		Roles:     roles,
		ExpiresAt: time.Unix(int64(exp), 0),
	}, nil
}

func interfaceArrayToString(iArray []interface{}) []string {
	stringSlice := make([]string, 0)
	for _, v := range iArray {
		if s, ok := v.(string); ok {
			stringSlice = append(stringSlice, s)
		}
	}
	return stringSlice
}
