package app

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// UserEntity 访问令牌中携带的用户信息
type UserEntity struct {
	UID      int64  `json:"uid"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
	jwt.RegisteredClaims
}

// ParseSessionToken 解析后端签发的访问令牌并返回其中的用户信息
// 客户端不持有签名密钥，签名校验由后端负责，这里只解析声明并检查有效期
func ParseSessionToken(token string) (*UserEntity, error) {
	claims := &UserEntity{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, errors.Wrap(err, "parse session token")
	}
	if claims.UID <= 0 {
		return nil, errors.New("session token has no uid claim")
	}
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return nil, errors.New("session token expired")
	}
	return claims, nil
}
