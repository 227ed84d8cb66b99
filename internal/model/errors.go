// Package model はドメインモデルを定義する。
package model

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: validation, not_found, storage, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// ErrInvalidArgument はジェネレーターの誤用（空の候補リスト、min > max、不変条件違反）を表す。
// 外部入力からは発生せず、設定ミスでのみ起こるため致命的エラーとして扱う。
var ErrInvalidArgument = errors.New("invalid argument")

// 定義済みエラーコード
const (
	ErrCodeInvalidSeed         = "INVALID_SEED"
	ErrCodeInvalidParameter    = "INVALID_PARAMETER"
	ErrCodeCompetitionNotFound = "COMPETITION_NOT_FOUND"
	ErrCodeTeamNotFound        = "TEAM_NOT_FOUND"
	ErrCodeMatchNotFound       = "MATCH_NOT_FOUND"
	ErrCodeUserNotFound        = "USER_NOT_FOUND"
	ErrCodeStorageFailed       = "STORAGE_FAILED"
	ErrCodeInternal            = "INTERNAL_ERROR"
)

// NewInvalidSeedError はシードが数値として解釈できない場合のエラーを生成する。
func NewInvalidSeedError(raw string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidSeed,
		Message:  fmt.Sprintf("seed must be an integer: %q", raw),
		Category: "validation",
		Action:   "Pass seed as a decimal integer, or omit it to use the default seed.",
	}
}

// NewInvalidParameterError はIDなどのパラメータが不正な場合のエラーを生成する。
func NewInvalidParameterError(name, raw string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidParameter,
		Message:  fmt.Sprintf("%s must be a positive integer: %q", name, raw),
		Category: "validation",
		Action:   fmt.Sprintf("Check the %s parameter.", name),
	}
}

// NewCompetitionNotFoundError は大会未検出エラーを生成する。
func NewCompetitionNotFoundError(id int64) *APIError {
	return newNotFoundError(ErrCodeCompetitionNotFound, "competition", id)
}

// NewTeamNotFoundError はチーム未検出エラーを生成する。
func NewTeamNotFoundError(id int64) *APIError {
	return newNotFoundError(ErrCodeTeamNotFound, "team", id)
}

// NewMatchNotFoundError は試合未検出エラーを生成する。
func NewMatchNotFoundError(id int64) *APIError {
	return newNotFoundError(ErrCodeMatchNotFound, "match", id)
}

// NewUserNotFoundError はユーザー未検出エラーを生成する。
func NewUserNotFoundError(id int64) *APIError {
	return newNotFoundError(ErrCodeUserNotFound, "user", id)
}

func newNotFoundError(code, entity string, id int64) *APIError {
	return &APIError{
		Code:     code,
		Message:  fmt.Sprintf("%s not found: %d", entity, id),
		Category: "not_found",
		Action:   fmt.Sprintf("Check the %s id.", entity),
	}
}

// StorageError は永続化層の失敗を表す。リトライ可能。
// Op には失敗した操作名を入れる。
type StorageError struct {
	Op  string
	Err error
}

// Error はerrorインターフェースを実装する。
func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err)
}

// Unwrap は元のエラーを返す。
func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageFailedError はStorageErrorをAPIErrorに変換する。
func NewStorageFailedError(op string) *APIError {
	return &APIError{
		Code:     ErrCodeStorageFailed,
		Message:  fmt.Sprintf("storage operation failed: %s", op),
		Category: "storage",
		Action:   "Retry after a short wait. The previously active dataset is still served.",
	}
}

// HTTPStatus はAPIErrorコードに対応するHTTPステータスコードを返す。
func (e *APIError) HTTPStatus() int {
	switch e.Code {
	case ErrCodeInvalidSeed, ErrCodeInvalidParameter:
		return http.StatusBadRequest
	case ErrCodeCompetitionNotFound, ErrCodeTeamNotFound, ErrCodeMatchNotFound, ErrCodeUserNotFound:
		return http.StatusNotFound
	case ErrCodeStorageFailed:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
