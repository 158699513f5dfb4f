// Package auth 提供密码凭据的哈希与校验，以及文章写操作的授权判定。
package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmptyPassword   = errors.New("password is required")
	ErrPasswordTooLong = bcrypt.ErrPasswordTooLong
)

// Hasher 使用 bcrypt 生成与校验密码凭据。每次哈希都会使用新的随机盐。
type Hasher struct {
	cost int
}

// NewHasher 创建指定工作因子的 Hasher，超出 bcrypt 范围时回退到默认值。
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash 返回密码的 bcrypt 凭据。
func (h *Hasher) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify 校验明文密码是否与存储的凭据匹配。
func (h *Hasher) Verify(password, credential string) bool {
	if password == "" || credential == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(credential), []byte(password)) == nil
}
