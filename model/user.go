// Package model defines database models
package model

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           string `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Role         string `gorm:"not null;default:user" json:"role"`
	// A ban is just a timestamp in the future. Once the clock moves past it
	// the account is active again, so there's no unban job to run
	BannedUntil *time.Time `json:"banned_until,omitempty"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`

	Files []File `gorm:"foreignKey:UserID" json:"-"`
}

func (u *User) BannedAt(now time.Time) bool {
	return u.BannedUntil != nil && now.Before(*u.BannedUntil)
}
