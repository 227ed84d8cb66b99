package handler

import (
	"context"
	"net/http"

	"github.com/hitoshi/frozenbet/internal/middleware"
	"github.com/hitoshi/frozenbet/internal/model"
)

// CatalogServiceInterface はカタログ参照ハンドラーが必要とするサービスインターフェース。
type CatalogServiceInterface interface {
	ListCompetitions(ctx context.Context, filter model.CompetitionFilter) ([]*model.Competition, error)
	GetCompetition(ctx context.Context, id int64) (*model.Competition, error)
	ListTeams(ctx context.Context, filter model.TeamFilter) ([]*model.Team, error)
	GetTeam(ctx context.Context, id int64) (*model.Team, error)
	ListMatches(ctx context.Context, filter model.MatchFilter) ([]*model.Match, error)
	GetMatch(ctx context.Context, id int64) (*model.Match, error)
	ListUsers(ctx context.Context, filter model.UserFilter) ([]*model.User, error)
	GetUser(ctx context.Context, id int64) (*model.User, error)
}

// CatalogHandler は大会・チーム・試合・ユーザー参照のHTTPハンドラー。
type CatalogHandler struct {
	service CatalogServiceInterface
}

// NewCatalogHandler はCatalogHandlerを生成する。
func NewCatalogHandler(service CatalogServiceInterface) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// ListCompetitions は大会一覧を返す。
// GET /competitions?status=&season=
func (h *CatalogHandler) ListCompetitions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := model.CompetitionFilter{
		Status: q.Get("status"),
		Season: q.Get("season"),
	}

	cs, err := h.service.ListCompetitions(r.Context(), filter)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, mapSlice(cs, toCompetitionResponse))
}

// GetCompetition は大会詳細を返す。
// GET /competitions/{id}
func (h *CatalogHandler) GetCompetition(w http.ResponseWriter, r *http.Request) {
	id, apiErr := parseIDParam(r)
	if apiErr != nil {
		middleware.WriteAPIError(w, apiErr)
		return
	}

	c, err := h.service.GetCompetition(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toCompetitionResponse(c))
}

// ListTeams はチーム一覧を返す。
// GET /teams?competition_id=
func (h *CatalogHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	competitionID, apiErr := parseOptionalIDQuery(r, "competition_id")
	if apiErr != nil {
		middleware.WriteAPIError(w, apiErr)
		return
	}

	ts, err := h.service.ListTeams(r.Context(), model.TeamFilter{CompetitionID: competitionID})
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, mapSlice(ts, toTeamResponse))
}

// GetTeam はチーム詳細を返す。
// GET /teams/{id}
func (h *CatalogHandler) GetTeam(w http.ResponseWriter, r *http.Request) {
	id, apiErr := parseIDParam(r)
	if apiErr != nil {
		middleware.WriteAPIError(w, apiErr)
		return
	}

	t, err := h.service.GetTeam(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toTeamResponse(t))
}

// ListMatches は試合一覧を返す。team_idはホーム・アウェイのどちらかに一致すればよい。
// GET /matches?competition_id=&status=&team_id=
func (h *CatalogHandler) ListMatches(w http.ResponseWriter, r *http.Request) {
	competitionID, apiErr := parseOptionalIDQuery(r, "competition_id")
	if apiErr != nil {
		middleware.WriteAPIError(w, apiErr)
		return
	}
	teamID, apiErr := parseOptionalIDQuery(r, "team_id")
	if apiErr != nil {
		middleware.WriteAPIError(w, apiErr)
		return
	}

	filter := model.MatchFilter{
		CompetitionID: competitionID,
		Status:        r.URL.Query().Get("status"),
		TeamID:        teamID,
	}

	ms, err := h.service.ListMatches(r.Context(), filter)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, mapSlice(ms, toMatchResponse))
}

// GetMatch は試合詳細を返す。
// GET /matches/{id}
func (h *CatalogHandler) GetMatch(w http.ResponseWriter, r *http.Request) {
	id, apiErr := parseIDParam(r)
	if apiErr != nil {
		middleware.WriteAPIError(w, apiErr)
		return
	}

	m, err := h.service.GetMatch(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toMatchResponse(m))
}

// ListUsers は合成ユーザー一覧を返す。
// GET /users?country=
func (h *CatalogHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	us, err := h.service.ListUsers(r.Context(), model.UserFilter{Country: r.URL.Query().Get("country")})
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, mapSlice(us, toUserResponse))
}

// GetUser は合成ユーザーの詳細を返す。
// GET /users/{id}
func (h *CatalogHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, apiErr := parseIDParam(r)
	if apiErr != nil {
		middleware.WriteAPIError(w, apiErr)
		return
	}

	u, err := h.service.GetUser(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(u))
}
