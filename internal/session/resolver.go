// Package session derives a presentation identity from a caller-supplied
// bearer token. The token is parsed, never verified: there is no signing
// authority to check against, so nothing here is a security control. Any
// privileged decision must treat the result as a claim, not proof.
package session

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"coursepass/internal/core/model"
)

type tokenClaims struct {
	Email        string `json:"email"`
	UserMetadata struct {
		Nickname  string `json:"nickname"`
		FullName  string `json:"full_name"`
		Name      string `json:"name"`
		AvatarURL string `json:"avatar_url"`
	} `json:"user_metadata"`
	jwt.RegisteredClaims
}

type Resolver struct {
	parser *jwt.Parser
	log    *zap.Logger
}

func NewResolver(log *zap.Logger) *Resolver {
	return &Resolver{parser: jwt.NewParser(), log: log}
}

// Resolve decodes the token's claim segment into a UserSummary. Absent or
// malformed tokens, and payloads without a subject and an email, yield nil;
// the condition is logged and never propagates as an error.
func (r *Resolver) Resolve(token string) *model.UserSummary {
	if token == "" {
		return nil
	}

	var claims tokenClaims
	if _, _, err := r.parser.ParseUnverified(token, &claims); err != nil {
		r.log.Debug("bearer token not decodable", zap.Error(err))
		return nil
	}
	if claims.Subject == "" || claims.Email == "" {
		r.log.Debug("bearer token missing subject or email")
		return nil
	}

	nickname := firstNonBlank(
		claims.UserMetadata.Nickname,
		claims.UserMetadata.FullName,
		claims.UserMetadata.Name,
		localPart(claims.Email),
	)

	user := &model.UserSummary{
		ID:       claims.Subject,
		Email:    claims.Email,
		Nickname: &nickname,
	}
	if claims.UserMetadata.AvatarURL != "" {
		avatar := claims.UserMetadata.AvatarURL
		user.AvatarURL = &avatar
	}
	return user
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func localPart(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
