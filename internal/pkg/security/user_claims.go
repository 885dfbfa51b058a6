package security

import (
	"github.com/golang-jwt/jwt/v5"
)

// UserClaims 用户服务签发的 Token 载荷，sub 即用户名
type UserClaims struct {
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
	jwt.RegisteredClaims
}
