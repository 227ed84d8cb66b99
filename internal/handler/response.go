package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/hitoshi/frozenbet/internal/model"
)

// competitionResponse は大会のAPIレスポンス。
type competitionResponse struct {
	ID          int64     `json:"id"`
	ThemeID     int64     `json:"themeId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Season      string    `json:"season"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// teamResponse はチームのAPIレスポンス。
type teamResponse struct {
	ID            int64     `json:"id"`
	CompetitionID int64     `json:"competitionId"`
	Name          string    `json:"name"`
	ShortName     string    `json:"shortName"`
	LogoURL       string    `json:"logoUrl"`
	Country       string    `json:"country"`
	ExternalAPIID string    `json:"externalApiId"`
	CreatedAt     time.Time `json:"createdAt"`
}

// matchResponse は試合のAPIレスポンス。スコアがない場合はnullを出力する。
type matchResponse struct {
	ID            int64     `json:"id"`
	CompetitionID int64     `json:"competitionId"`
	HomeTeamID    int64     `json:"homeTeamId"`
	AwayTeamID    int64     `json:"awayTeamId"`
	ScheduledDate time.Time `json:"scheduledDate"`
	Status        string    `json:"status"`
	HomeScore     *int      `json:"homeScore"`
	AwayScore     *int      `json:"awayScore"`
	Location      string    `json:"location"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// userResponse は合成ユーザーのAPIレスポンス。
type userResponse struct {
	ID          int64     `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	Country     string    `json:"country"`
	CreatedAt   time.Time `json:"created_at"`
}

func toCompetitionResponse(c *model.Competition) competitionResponse {
	return competitionResponse{
		ID:          c.ID,
		ThemeID:     c.ThemeID,
		Name:        c.Name,
		Description: c.Description,
		StartDate:   c.StartDate,
		EndDate:     c.EndDate,
		Season:      c.Season,
		Status:      string(c.Status),
		CreatedAt:   c.CreatedAt,
	}
}

func toTeamResponse(t *model.Team) teamResponse {
	return teamResponse{
		ID:            t.ID,
		CompetitionID: t.CompetitionID,
		Name:          t.Name,
		ShortName:     t.ShortName,
		LogoURL:       t.LogoURL,
		Country:       t.Country,
		ExternalAPIID: t.ExternalAPIID,
		CreatedAt:     t.CreatedAt,
	}
}

func toMatchResponse(m *model.Match) matchResponse {
	return matchResponse{
		ID:            m.ID,
		CompetitionID: m.CompetitionID,
		HomeTeamID:    m.HomeTeamID,
		AwayTeamID:    m.AwayTeamID,
		ScheduledDate: m.ScheduledDate,
		Status:        string(m.Status),
		HomeScore:     m.HomeScore,
		AwayScore:     m.AwayScore,
		Location:      m.Location,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toUserResponse(u *model.User) userResponse {
	return userResponse{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Country:     u.Country,
		CreatedAt:   u.CreatedAt,
	}
}

// mapSlice はモデルのスライスをレスポンスのスライスに変換する。
// 空の場合もnullではなく[]を返す。
func mapSlice[T any, R any](in []T, fn func(T) R) []R {
	out := make([]R, 0, len(in))
	for _, v := range in {
		out = append(out, fn(v))
	}
	return out
}

// writeJSON はステータスコードとJSONボディを書き込む。
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
