package domain

import (
	"context"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID              uint      `json:"id"`
	Email           string    `json:"email"`
	PasswordHash    string    `json:"-"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	Role            string    `json:"role"`
	ProfileComplete bool      `json:"profile_complete_status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// DisplayName is "First Last", falling back to a name guessed from the email.
func (u User) DisplayName() string {
	return DisplayName(u.FirstName, u.LastName, u.Email)
}

func DisplayName(first, last, email string) string {
	parts := make([]string, 0, 2)
	for _, s := range []string{first, last} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, " ")
	}
	f, l := NamesFromEmail(email)
	return strings.TrimSpace(f + " " + l)
}

// NamesFromEmail splits "ivan.petrov@host" into ("Ivan", "Petrov").
func NamesFromEmail(email string) (first, last string) {
	local := email
	if at := strings.IndexByte(email, '@'); at >= 0 {
		local = email[:at]
	}
	parts := strings.Split(local, ".")
	first = capitalize(parts[0])
	if len(parts) > 1 {
		last = capitalize(parts[1])
	}
	return first, last
}

func capitalize(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, q string, offset, limit int) ([]User, int64, error)
	UpdateNames(ctx context.Context, id uint, first, last *string) error
	RecomputeProfileStatus(ctx context.Context) (int64, error)
}
