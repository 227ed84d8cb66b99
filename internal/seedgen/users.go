package seedgen

import (
	"fmt"
	"time"

	"github.com/hitoshi/frozenbet/internal/model"
)

// GenerateUsers は合成ユーザーを opts.Users 件生成する。
// データセットとは別の乱数源を使うので、ユーザー用シードは独立に選べる。
// ユーザー名・表示名は順番から導出し、国だけを抽選する。
func GenerateUsers(seed uint32, now time.Time, opts Options) ([]*model.User, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	src := NewSource(seed)
	out := make([]*model.User, 0, opts.Users)

	for i := 1; i <= opts.Users; i++ {
		country, err := PickOne(src, opts.UserCountries)
		if err != nil {
			return nil, fmt.Errorf("user %d country: %w", i, err)
		}

		u, err := model.NewUser(model.User{
			ID:          int64(i),
			Username:    fmt.Sprintf("user%d", i),
			DisplayName: fmt.Sprintf("User %d", i),
			Country:     country,
			CreatedAt:   now.Add(-time.Duration(i) * day),
		})
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}

	return out, nil
}
