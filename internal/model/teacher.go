// internal/model/teacher.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Teacher はダッシュボードにログインできる教師アカウントです
type Teacher struct {
	TeacherID    uuid.UUID      `gorm:"type:uuid;primaryKey" json:"teacher_id"`
	Name         string         `gorm:"not null" json:"name"`
	Email        string         `gorm:"not null;uniqueIndex" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"` // 論理削除用
}

func (Teacher) TableName() string {
	return "teachers"
}
