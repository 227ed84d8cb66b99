package model

import (
	"fmt"
	"time"
)

// User は合成ユーザーのプロフィールを表す。
// 大会・チーム・試合とは関連を持たない。
type User struct {
	ID          int64
	Username    string
	DisplayName string
	Country     string
	CreatedAt   time.Time
}

// NewUser は不変条件を検証したうえでUserを生成する。
func NewUser(u User) (*User, error) {
	if u.ID <= 0 {
		return nil, fmt.Errorf("%w: user id must be positive, got %d", ErrInvalidArgument, u.ID)
	}
	if u.Username == "" {
		return nil, fmt.Errorf("%w: user %d has empty username", ErrInvalidArgument, u.ID)
	}
	return &u, nil
}

// UserFilter はユーザー一覧の絞り込み条件。
type UserFilter struct {
	Country string
}

// Matches はユーザーがフィルタ条件を満たすかどうかを返す。
func (f UserFilter) Matches(u *User) bool {
	return f.Country == "" || u.Country == f.Country
}
