package models

import "golang.org/x/crypto/bcrypt"

type Usuario struct {
	Username     string `gorm:"column:username;primaryKey;size:50" json:"username"`
	Email        string `gorm:"column:email;size:60;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"column:password_hash;size:128" json:"-"`
}

func (Usuario) TableName() string {
	return "usuarios"
}

// SetPassword stores a salted bcrypt digest; the plaintext is never persisted.
func (u *Usuario) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

func (u *Usuario) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// PublicUsuario is the wire shape for user responses. The password hash
// stays out of every response body.
type PublicUsuario struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (u *Usuario) Public() PublicUsuario {
	return PublicUsuario{
		Username: u.Username,
		Email:    u.Email,
	}
}
