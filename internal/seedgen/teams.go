package seedgen

import (
	"fmt"

	"github.com/hitoshi/frozenbet/internal/model"
)

var teamCities = []string{
	"Anaheim", "Boston", "Calgary", "Dallas", "Edmonton", "Helsinki", "Montreal", "Nashville",
	"Ottawa", "Prague", "Quebec", "Stockholm", "Tampa", "Toronto", "Vancouver", "Winnipeg",
}

var teamMascots = []string{
	"Bears", "Comets", "Falcons", "Hawks", "Lynx", "Storm", "Wolves", "Kings",
}

// logoBaseURL はロゴ画像の配置先。
const logoBaseURL = "https://static.example.com/logos"

// teamName はチームIDから名前を導出する。都市を先に一巡させてからマスコットを進めるので、
// 都市×マスコットの組み合わせ数まではすべて異なる名前になる。それを超えると巡目の番号を付ける。
func teamName(id int64) string {
	i := id - 1
	cities, mascots := int64(len(teamCities)), int64(len(teamMascots))

	name := teamCities[i%cities] + " " + teamMascots[(i/cities)%mascots]
	if round := i / (cities * mascots); round > 0 {
		name = fmt.Sprintf("%s %d", name, round+1)
	}
	return name
}

// shortName はチームIDから略称を導出する。IDはラン内で一意なので略称も一意になる。
func shortName(id int64) string {
	return fmt.Sprintf("T%03d", id)
}

// generateTeams は大会ID順に、各大会 opts.TeamsPerCompetition 件のチームを生成する。
// IDは大会をまたいで1から連番で振る。
func generateTeams(src Source, competitions []*model.Competition, opts Options) ([]*model.Team, error) {
	out := make([]*model.Team, 0, len(competitions)*opts.TeamsPerCompetition)
	var nextID int64 = 1

	for _, c := range competitions {
		for k := 0; k < opts.TeamsPerCompetition; k++ {
			id := nextID
			nextID++

			country, err := PickOne(src, opts.TeamCountries)
			if err != nil {
				return nil, fmt.Errorf("team %d country: %w", id, err)
			}

			short := shortName(id)

			t, err := model.NewTeam(model.Team{
				ID:            id,
				CompetitionID: c.ID,
				Name:          teamName(id),
				ShortName:     short,
				LogoURL:       fmt.Sprintf("%s/%s.png", logoBaseURL, short),
				Country:       country,
				ExternalAPIID: "ext-" + short,
				CreatedAt:     c.CreatedAt,
			})
			if err != nil {
				return nil, err
			}
			out = append(out, t)
		}
	}

	return out, nil
}
