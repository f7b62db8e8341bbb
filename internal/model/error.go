// internal/model/error.go
package model

import "errors"

// アプリケーション固有のエラー
var (
	ErrNotFound        = errors.New("resource not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrInternalServer  = errors.New("internal server error")
	ErrForbidden       = errors.New("forbidden")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrConflict        = errors.New("resource conflict") // 重複・多重送信エラー用
)

// ErrorDetail はAPIエラーレスポンスに含まれる詳細情報です
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// APIErrorResponse はAPIエラーレスポンスの構造体
type APIErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// AppError はエラーコード・ユーザー向けメッセージ・対象フィールドを
// 持つアプリケーションエラーです。内部エラーをラップします。
type AppError struct {
	Detail ErrorDetail
	err    error
}

func NewAppError(code, message, field string, wrapped error) *AppError {
	return &AppError{
		Detail: ErrorDetail{
			Code:    code,
			Message: message,
			Field:   field,
		},
		err: wrapped,
	}
}

func (e *AppError) Error() string {
	if e.err != nil {
		return e.Detail.Code + ": " + e.err.Error()
	}
	return e.Detail.Code
}

func (e *AppError) Unwrap() error {
	return e.err
}
