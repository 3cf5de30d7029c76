package utils

import (
	"sync/atomic"

	"golang.org/x/crypto/bcrypt"
)

var cost atomic.Int64

func init() { SetPasswordCost(0) }

// SetPasswordCost 测试里调低 cost 以加速；<=0 恢复默认
func SetPasswordCost(c int) {
	if c <= 0 {
		c = bcrypt.DefaultCost
	}
	cost.Store(int64(c))
}

func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), int(cost.Load()))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func CheckPassword(pw, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(pw)) == nil
}
