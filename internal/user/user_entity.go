package user

import (
	"time"

	"go-procurement/internal/domain"
)

type User struct {
	ID        int64       `gorm:"column:id;primaryKey;autoIncrement"`
	Username  string      `gorm:"column:username;type:varchar(50);not null;uniqueIndex:uq_users_username"`
	Email     string      `gorm:"column:email;type:varchar(255);not null;uniqueIndex:uq_users_email"`
	FullName  string      `gorm:"column:full_name;type:varchar(100);not null"`
	Role      domain.Role `gorm:"column:role;type:varchar(20);not null"`
	IsActive  bool        `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time   `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time   `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
