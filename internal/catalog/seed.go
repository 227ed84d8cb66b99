package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hitoshi/frozenbet/internal/model"
)

// UserSeedPolicy はユーザー生成に使うシードの決め方。
type UserSeedPolicy string

const (
	// UserSeedIndependent はデータセットのシードに関係なく固定のユーザーシードを使う。
	UserSeedIndependent UserSeedPolicy = "independent"
	// UserSeedShared はデータセットと同じシードでユーザーを生成する。
	UserSeedShared UserSeedPolicy = "shared"
)

// ParseUserSeedPolicy は文字列をUserSeedPolicyに変換する。空文字はindependent。
func ParseUserSeedPolicy(s string) (UserSeedPolicy, error) {
	switch UserSeedPolicy(s) {
	case "", UserSeedIndependent:
		return UserSeedIndependent, nil
	case UserSeedShared:
		return UserSeedShared, nil
	}
	return "", fmt.Errorf("%w: unknown user seed policy %q", model.ErrInvalidArgument, s)
}

// ParseSeed はリクエストなどから受け取ったシード文字列を解釈する。
// 空文字はdefを返す。整数以外はINVALID_SEEDのAPIErrorを返す。
// 範囲外や負の値は下位32ビットに丸める（-1 は 4294967295 になる）。
func ParseSeed(raw string, def uint32) (uint32, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, model.NewInvalidSeedError(raw)
	}

	return uint32(v), nil
}
