//go:generate mockery --name TeacherRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"go_5_teach_board/internal/middleware"
	"go_5_teach_board/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TeacherRepository は教師アカウントの永続化層です
type TeacherRepository interface {
	Create(ctx context.Context, tx *gorm.DB, teacher *model.Teacher) error
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*model.Teacher, error)
	FindByID(ctx context.Context, db *gorm.DB, teacherID uuid.UUID) (*model.Teacher, error)
}

type gormTeacherRepository struct{}

func NewGormTeacherRepository() TeacherRepository {
	return &gormTeacherRepository{}
}

func (r *gormTeacherRepository) Create(ctx context.Context, tx *gorm.DB, teacher *model.Teacher) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(teacher)
	if result.Error != nil {
		logger.Error("Error creating teacher in DB",
			"error", result.Error,
			"email", teacher.Email,
		)
		return fmt.Errorf("gormTeacherRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormTeacherRepository) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*model.Teacher, error) {
	logger := middleware.GetLogger(ctx)
	var teacher model.Teacher
	result := db.WithContext(ctx).Where("email = ?", email).First(&teacher)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding teacher by email in DB",
			"error", result.Error,
			"email", email,
		)
		return nil, fmt.Errorf("gormTeacherRepository.FindByEmail: %w", result.Error)
	}
	return &teacher, nil
}

func (r *gormTeacherRepository) FindByID(ctx context.Context, db *gorm.DB, teacherID uuid.UUID) (*model.Teacher, error) {
	logger := middleware.GetLogger(ctx)
	var teacher model.Teacher
	result := db.WithContext(ctx).Where("teacher_id = ?", teacherID).First(&teacher)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding teacher by ID in DB",
			"error", result.Error,
			"teacher_id", teacherID.String(),
		)
		return nil, fmt.Errorf("gormTeacherRepository.FindByID: %w", result.Error)
	}
	return &teacher, nil
}
