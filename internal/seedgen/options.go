package seedgen

import (
	"errors"
	"fmt"
	"os"

	"github.com/hitoshi/frozenbet/internal/model"
	"gopkg.in/yaml.v3"
)

// LocationPolicy は試合会場の決め方を表す。
// 観測された2つの実装の挙動をどちらも選べるように設定値として持つ。
type LocationPolicy string

const (
	// LocationHomeTeam はホームチームの略称から "<略称> Arena" を導出する。抽選しない。
	LocationHomeTeam LocationPolicy = "home_team"
	// LocationFixedSet はLocationsから1つ抽選する。
	LocationFixedSet LocationPolicy = "fixed_set"
)

// ParseLocationPolicy は文字列をLocationPolicyに変換する。
func ParseLocationPolicy(s string) (LocationPolicy, error) {
	switch LocationPolicy(s) {
	case LocationHomeTeam, LocationFixedSet:
		return LocationPolicy(s), nil
	}
	return "", fmt.Errorf("unknown location policy %q (want %q or %q)", s, LocationHomeTeam, LocationFixedSet)
}

// Range は両端を含む整数範囲。
type Range struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// Options はジェネレーターの件数・候補集合・分布を保持する。
// 候補リストの順序も再現性の一部であり、並べ替えると生成結果が変わる。
type Options struct {
	Competitions          int `yaml:"competitions"`
	TeamsPerCompetition   int `yaml:"teams_per_competition"`
	MatchesPerCompetition int `yaml:"matches_per_competition"`
	Users                 int `yaml:"users"`

	Seasons       []string `yaml:"seasons"`
	TeamCountries []string `yaml:"team_countries"`
	UserCountries []string `yaml:"user_countries"`
	Locations     []string `yaml:"locations"`

	LocationPolicy LocationPolicy `yaml:"location_policy"`

	StartOffsetDays Range `yaml:"start_offset_days"` // 開始日を now から何日前にするか
	DurationDays    Range `yaml:"duration_days"`     // 大会期間（日）
	MatchDayWindow  Range `yaml:"match_day_window"`  // 試合日の now からのずれ（日、負は過去）
	MaxScore        int   `yaml:"max_score"`
}

// DefaultOptions はデフォルトのOptionsを返す。
// 大会5件 × チーム8件 × 試合16件、ユーザー10件。
func DefaultOptions() Options {
	return Options{
		Competitions:          5,
		TeamsPerCompetition:   8,
		MatchesPerCompetition: 16,
		Users:                 10,
		Seasons:               []string{"2023/24", "2024/25", "2025/26"},
		TeamCountries:         []string{"USA", "CAN", "SWE", "FIN", "CZE"},
		UserCountries:         []string{"FR", "ES", "DE", "IT", "PT"},
		Locations: []string{
			"Central Arena",
			"North Stadium",
			"Harbour Dome",
			"Lakeside Rink",
			"Summit Center",
		},
		LocationPolicy:  LocationHomeTeam,
		StartOffsetDays: Range{Min: 0, Max: 180},
		DurationDays:    Range{Min: 30, Max: 240},
		MatchDayWindow:  Range{Min: -30, Max: 30},
		MaxScore:        6,
	}
}

// Validate は設定ミスを検出する。
// ここで弾いておけば生成中にErrInvalidArgumentが起きることはない。
func (o Options) Validate() error {
	var errs []error

	if o.Competitions < 0 {
		errs = append(errs, fmt.Errorf("competitions must not be negative, got %d", o.Competitions))
	}
	// ホームとアウェイを別チームにするため2チーム以上必要
	if o.TeamsPerCompetition < 2 {
		errs = append(errs, fmt.Errorf("teams_per_competition must be at least 2, got %d", o.TeamsPerCompetition))
	}
	if o.MatchesPerCompetition < 0 {
		errs = append(errs, fmt.Errorf("matches_per_competition must not be negative, got %d", o.MatchesPerCompetition))
	}
	if o.Users < 0 {
		errs = append(errs, fmt.Errorf("users must not be negative, got %d", o.Users))
	}

	if len(o.Seasons) == 0 {
		errs = append(errs, errors.New("seasons must not be empty"))
	}
	if len(o.TeamCountries) == 0 {
		errs = append(errs, errors.New("team_countries must not be empty"))
	}
	if len(o.UserCountries) == 0 {
		errs = append(errs, errors.New("user_countries must not be empty"))
	}

	switch o.LocationPolicy {
	case LocationHomeTeam:
	case LocationFixedSet:
		if len(o.Locations) == 0 {
			errs = append(errs, errors.New("locations must not be empty with fixed_set location policy"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown location_policy %q", o.LocationPolicy))
	}

	if o.StartOffsetDays.Min < 0 || o.StartOffsetDays.Max < o.StartOffsetDays.Min {
		errs = append(errs, fmt.Errorf("invalid start_offset_days %+v", o.StartOffsetDays))
	}
	// 終了日 > 開始日 を保証するため期間は1日以上
	if o.DurationDays.Min < 1 || o.DurationDays.Max < o.DurationDays.Min {
		errs = append(errs, fmt.Errorf("invalid duration_days %+v", o.DurationDays))
	}
	if o.MatchDayWindow.Max < o.MatchDayWindow.Min {
		errs = append(errs, fmt.Errorf("invalid match_day_window %+v", o.MatchDayWindow))
	}
	if o.MaxScore < 0 {
		errs = append(errs, fmt.Errorf("max_score must not be negative, got %d", o.MaxScore))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", model.ErrInvalidArgument, errors.Join(errs...))
	}
	return nil
}

// LoadProfile はYAMLプロファイルを読み込み、DefaultOptionsに上書きしたOptionsを返す。
// プロファイルに書かれていない項目はデフォルト値のまま残る。
func LoadProfile(path string) (Options, error) {
	opts := DefaultOptions()

	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("failed to read generator profile: %w", err)
	}

	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("failed to parse generator profile: %w", err)
	}

	if err := opts.Validate(); err != nil {
		return opts, fmt.Errorf("invalid generator profile %s: %w", path, err)
	}

	return opts, nil
}
