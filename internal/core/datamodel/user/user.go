package user

import "time"

type User struct {
	ID                int64     `gorm:"primaryKey"`
	Email             string    `gorm:"column:email;uniqueIndex;not null"`
	Name              string    `gorm:"column:name;not null"`
	PasswordHash      string    `gorm:"column:password_hash;not null"`
	IsAdmin           bool      `gorm:"column:is_admin;not null"`
	IsTechnicalDeputy bool      `gorm:"column:is_technical_deputy;not null"`
	IsActive          bool      `gorm:"column:is_active;not null"`
	ProfileImage      *string   `gorm:"column:profile_image"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
