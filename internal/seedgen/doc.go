// Package seedgen は単一の整数シードから参照整合性のある合成データセットを生成する。
//
// 同じシード・同じ生成時刻・同じOptionsからは常に同一のデータセットが得られる。
// 再現性は乱数源からの抽選（draw）の順序に依存するため、抽選箇所の順序を以下に固定する。
// 各サンプラー呼び出しはちょうど1回Next()を消費する。
//
// 大会（id = 1..Competitions）:
//  1. IntInRange(StartOffsetDays)       開始日 = now - offset日
//  2. IntInRange(DurationDays)          終了日 = 開始日 + duration日
//  3. PickOne(Seasons)
//  4. PickOne(model.CompetitionStatuses)
//
// チーム（大会ID順、各大会 TeamsPerCompetition 件、IDは全体で連番）:
//  1. PickOne(TeamCountries)
//
// 試合（大会ID順、各大会 MatchesPerCompetition 件、IDは全体で連番）:
//  1. IntInRange(0, T-1)                ホームチームの添字
//  2. IntInRange(0, T-1)                アウェイチームの添字（ホームと同じなら (home+1) mod T）
//  3. IntInRange(MatchDayWindow)        開催日 = now + offset日
//  4. PickOne(model.MatchStatuses)
//  5. live/finished のみ: IntInRange(0, MaxScore) をホーム、アウェイの順に2回
//  6. LocationFixedSet のみ: PickOne(Locations)
//
// ユーザー（独立した乱数源、id = 1..Users）:
//  1. PickOne(UserCountries)
//
// 上記以外のフィールド（名前、略称、作成日時など）はIDや生成時刻から導出し、抽選しない。
package seedgen
