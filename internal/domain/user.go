package domain

import "time"

// Role - роль администратора панели
type Role string

const (
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleEditor     Role = "EDITOR"
)

// Capability - действие, разрешение на которое проверяет middleware
type Capability int

const (
	CapabilityEditObjects Capability = iota + 1
	CapabilityManageDictionaries
)

var roleCapabilities = map[Role][]Capability{
	RoleSuperAdmin: {CapabilityEditObjects, CapabilityManageDictionaries},
	RoleEditor:     {CapabilityEditObjects, CapabilityManageDictionaries},
}

func (r Role) IsValid() bool {
	_, ok := roleCapabilities[r]
	return ok
}

// Can проверяет, есть ли у роли указанная возможность. Неизвестная роль не может ничего.
func (r Role) Can(c Capability) bool {
	for _, rc := range roleCapabilities[r] {
		if rc == c {
			return true
		}
	}
	return false
}

// User - пользователь админ-панели
type User struct {
	ID           int64      `json:"id" db:"id"`
	Email        string     `json:"email" db:"email"`
	PasswordHash *string    `json:"-" db:"password"`
	Name         string     `json:"name" db:"name"`
	Role         Role       `json:"role" db:"role"`
	IsActive     bool       `json:"isActive" db:"is_active"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time  `json:"updatedAt" db:"updated_at"`
}

// HasPassword - задан ли у пользователя пароль
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

// Session - сохранённый refresh token
type Session struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	Token     string    `db:"token"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
}

func (s *Session) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// TokenClaims - данные, зашитые в access token
type TokenClaims struct {
	UserID int64
	Email  string
	Role   Role
}
