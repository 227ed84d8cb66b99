package model

import "sort"

// 一覧APIの並び順。メモリ上のスナップショットと各ストアで同じ順序を返すために共通化する。

// SortCompetitions は開始日の降順、同日はID昇順に並べる。
func SortCompetitions(cs []*Competition) {
	sort.SliceStable(cs, func(i, j int) bool {
		if !cs[i].StartDate.Equal(cs[j].StartDate) {
			return cs[i].StartDate.After(cs[j].StartDate)
		}
		return cs[i].ID < cs[j].ID
	})
}

// SortTeams は名前の昇順、同名はID昇順に並べる。
func SortTeams(ts []*Team) {
	sort.SliceStable(ts, func(i, j int) bool {
		if ts[i].Name != ts[j].Name {
			return ts[i].Name < ts[j].Name
		}
		return ts[i].ID < ts[j].ID
	})
}

// SortMatches は開催日時の降順、同時刻はID昇順に並べる。
func SortMatches(ms []*Match) {
	sort.SliceStable(ms, func(i, j int) bool {
		if !ms[i].ScheduledDate.Equal(ms[j].ScheduledDate) {
			return ms[i].ScheduledDate.After(ms[j].ScheduledDate)
		}
		return ms[i].ID < ms[j].ID
	})
}
