// cmd/seed/main.go
// 教師アカウントを登録するための運用コマンドです。
// ダッシュボードにはサインアップ画面がないため、アカウントはこの
// コマンドで払い出します。
package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"

	"go_5_teach_board/internal/config"
	"go_5_teach_board/internal/model"
	"go_5_teach_board/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	var (
		email    = flag.String("email", "", "教師アカウントのメールアドレス")
		password = flag.String("password", "", "初期パスワード")
		name     = flag.String("name", "", "表示名")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if *email == "" || *password == "" || *name == "" {
		logger.Error("email, password and name are all required")
		flag.Usage()
		os.Exit(2)
	}

	if err := config.LoadConfig("configs"); err != nil {
		logger.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	db, err := repository.NewDB(config.Cfg.Database.URL, logger)
	if err != nil {
		logger.Error("Error initializing database", slog.Any("error", err))
		os.Exit(1)
	}
	if err := db.AutoMigrate(&model.Teacher{}); err != nil {
		logger.Error("Error migrating database schema", slog.Any("error", err))
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("Failed to hash password", slog.Any("error", err))
		os.Exit(1)
	}

	var existing model.Teacher
	result := db.Where("email = ?", *email).First(&existing)
	switch {
	case result.Error == nil:
		// 既存アカウントはパスワードと表示名を更新する
		existing.Name = *name
		existing.PasswordHash = string(hash)
		if err := db.Save(&existing).Error; err != nil {
			logger.Error("Failed to update teacher account", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Teacher account updated", slog.String("teacher_id", existing.TeacherID.String()), slog.String("email", *email))
	case errors.Is(result.Error, gorm.ErrRecordNotFound):
		teacher := &model.Teacher{
			TeacherID:    uuid.New(),
			Name:         *name,
			Email:        *email,
			PasswordHash: string(hash),
		}
		if err := db.Create(teacher).Error; err != nil {
			logger.Error("Failed to create teacher account", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Teacher account created", slog.String("teacher_id", teacher.TeacherID.String()), slog.String("email", *email))
	default:
		logger.Error("Failed to look up teacher account", slog.Any("error", result.Error))
		os.Exit(1)
	}
}
