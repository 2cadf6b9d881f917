package models

import "time"

type User struct {
	ID             uint64     `gorm:"primarykey" json:"id"`
	Name           string     `gorm:"type:varchar(50);not null" json:"name"`
	Email          string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash   string     `gorm:"type:varchar(255);not null" json:"-"`
	ProfilePicture string     `gorm:"type:varchar(512)" json:"profile_picture"`
	IsActive       bool       `gorm:"not null;default:true" json:"is_active"`
	LastLogin      *time.Time `json:"last_login"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	// Relations
	Tasks []Task `gorm:"foreignKey:UserID" json:"-"`
}
