package user

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Role separates the two actors of the system.
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// User is a self-registered student account. The placement officer account is
// provisioned by seeding, not self-registration.
type User struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	Username       string    `json:"username" gorm:"unique;not null"`
	Email          string    `json:"email" gorm:"not null"`
	RegisterNumber string    `json:"register_number" gorm:"unique;not null"`
	PasswordDigest string    `json:"-" gorm:"not null"`
	Role           Role      `json:"role" gorm:"type:text;not null;default:student"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// AuthData is what a successful login hands back to the caller. It mirrors
// the session record the UI keeps; nothing is persisted server-side.
type AuthData struct {
	IsAuthenticated bool      `json:"is_authenticated"`
	Role            Role      `json:"role"`
	Username        string    `json:"username"`
	UserID          uuid.UUID `json:"user_id"`
	LoginTime       time.Time `json:"login_time"`
}

// RegisterRequest is the self-registration payload.
type RegisterRequest struct {
	Username       string `json:"username" validate:"required,min=3,max=50"`
	Email          string `json:"email" validate:"required,email"`
	RegisterNumber string `json:"register_number" validate:"required,register_number"`
	Password       string `json:"password" validate:"required,min=6"`
}

// LoginRequest is the credential payload for either role.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     Role   `json:"role" validate:"required,oneof=student admin"`
}

// HashPassword produces the stored form of a password.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// NewUser creates a student account with a generated ID.
func NewUser(username, email, registerNumber, password string) (*User, error) {
	digest, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return &User{
		ID:             uuid.New(),
		Username:       username,
		Email:          email,
		RegisterNumber: registerNumber,
		PasswordDigest: digest,
		Role:           RoleStudent,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// CheckPassword reports whether the given password matches the stored digest.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordDigest), []byte(password)) == nil
}
