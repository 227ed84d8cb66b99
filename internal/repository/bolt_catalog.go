package repository

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/hitoshi/frozenbet/internal/model"
)

var (
	competitionsBucket = []byte("competitions")
	teamsBucket        = []byte("teams")
	matchesBucket      = []byte("matches")
	metaBucket         = []byte("meta")

	seedKey = []byte("seed")
)

// BoltCatalog はbboltファイルを使用した永続ストア。
// PostgreSQLを用意できない開発環境向けの代替で、同じ読み書きの契約を満たす。
// 各エンティティはIDのビッグエンディアン表現をキー、JSONを値として保存する。
type BoltCatalog struct {
	db *bolt.DB
}

// OpenBoltCatalog はpathのbboltファイルを開き、必要なバケットを作成する。
func OpenBoltCatalog(path string) (*BoltCatalog, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bbolt database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{competitionsBucket, teamsBucket, matchesBucket, metaBucket} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create buckets: %w", err)
	}

	return &BoltCatalog{db: db}, nil
}

// Close はデータベースファイルを閉じる。
func (b *BoltCatalog) Close() error {
	return b.db.Close()
}

// Ping はデータベースが開いているかを確認する。
func (b *BoltCatalog) Ping(_ context.Context) error {
	return b.db.View(func(*bolt.Tx) error { return nil })
}

func itob(id int64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(id))
	return key
}

func putJSON(bkt *bolt.Bucket, id int64, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return bkt.Put(itob(id), data)
}

// resetBucket はバケットを削除して作り直す。
func resetBucket(tx *bolt.Tx, name []byte) (*bolt.Bucket, error) {
	if err := tx.DeleteBucket(name); err != nil && err != bolt.ErrBucketNotFound {
		return nil, err
	}
	return tx.CreateBucket(name)
}

// ReplaceDataset は全バケットを空にしてからdsを書き込む。
// 1つのUpdateトランザクション内で行うため、失敗時は何も変更されない。
func (b *BoltCatalog) ReplaceDataset(_ context.Context, ds *model.Dataset) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		bkt, err := resetBucket(tx, competitionsBucket)
		if err != nil {
			return fmt.Errorf("failed to reset competitions: %w", err)
		}
		for _, c := range ds.Competitions {
			if err := putJSON(bkt, c.ID, c); err != nil {
				return fmt.Errorf("failed to put competition %d: %w", c.ID, err)
			}
		}

		bkt, err = resetBucket(tx, teamsBucket)
		if err != nil {
			return fmt.Errorf("failed to reset teams: %w", err)
		}
		for _, t := range ds.Teams {
			if err := putJSON(bkt, t.ID, t); err != nil {
				return fmt.Errorf("failed to put team %d: %w", t.ID, err)
			}
		}

		bkt, err = resetBucket(tx, matchesBucket)
		if err != nil {
			return fmt.Errorf("failed to reset matches: %w", err)
		}
		for _, m := range ds.Matches {
			if err := putJSON(bkt, m.ID, m); err != nil {
				return fmt.Errorf("failed to put match %d: %w", m.ID, err)
			}
		}

		seed := make([]byte, 4)
		binary.BigEndian.PutUint32(seed, ds.Seed)
		if err := tx.Bucket(metaBucket).Put(seedKey, seed); err != nil {
			return fmt.Errorf("failed to put dataset seed: %w", err)
		}
		return nil
	})
	if err != nil {
		return &model.StorageError{Op: "replace dataset", Err: err}
	}
	return nil
}

// getJSON はキーの値をvにデコードする。キーが存在しない場合はfalseを返す。
func (b *BoltCatalog) getJSON(bucket []byte, id int64, v any) (bool, error) {
	found := false
	err := b.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucket).Get(itob(id))
		if data == nil {
			return nil
		}
		found = true
		// Unmarshalは値をコピーするのでトランザクション外でも安全
		return json.Unmarshal(data, v)
	})
	return found, err
}

// forEachJSON はバケットの全値をTにデコードしてキー順にfnへ渡す。
func forEachJSON[T any](db *bolt.DB, bucket []byte, fn func(*T)) error {
	return db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).ForEach(func(_, data []byte) error {
			v := new(T)
			if err := json.Unmarshal(data, v); err != nil {
				return err
			}
			fn(v)
			return nil
		})
	})
}

// FindCompetitionByID は指定IDの大会を取得する。見つからない場合はnilを返す。
func (b *BoltCatalog) FindCompetitionByID(_ context.Context, id int64) (*model.Competition, error) {
	c := &model.Competition{}
	found, err := b.getJSON(competitionsBucket, id, c)
	if err != nil {
		return nil, fmt.Errorf("failed to find competition by ID: %w", err)
	}
	if !found {
		return nil, nil
	}
	return c, nil
}

// ListCompetitions は条件に合う大会を開始日の降順（同日はID昇順）で返す。
func (b *BoltCatalog) ListCompetitions(_ context.Context, filter model.CompetitionFilter) ([]*model.Competition, error) {
	out := []*model.Competition{}
	err := forEachJSON(b.db, competitionsBucket, func(c *model.Competition) {
		if filter.Matches(c) {
			out = append(out, c)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list competitions: %w", err)
	}
	model.SortCompetitions(out)
	return out, nil
}

// FindTeamByID は指定IDのチームを取得する。見つからない場合はnilを返す。
func (b *BoltCatalog) FindTeamByID(_ context.Context, id int64) (*model.Team, error) {
	t := &model.Team{}
	found, err := b.getJSON(teamsBucket, id, t)
	if err != nil {
		return nil, fmt.Errorf("failed to find team by ID: %w", err)
	}
	if !found {
		return nil, nil
	}
	return t, nil
}

// ListTeams は条件に合うチームを名前の昇順（同名はID昇順）で返す。
func (b *BoltCatalog) ListTeams(_ context.Context, filter model.TeamFilter) ([]*model.Team, error) {
	out := []*model.Team{}
	err := forEachJSON(b.db, teamsBucket, func(t *model.Team) {
		if filter.Matches(t) {
			out = append(out, t)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	model.SortTeams(out)
	return out, nil
}

// FindMatchByID は指定IDの試合を取得する。見つからない場合はnilを返す。
func (b *BoltCatalog) FindMatchByID(_ context.Context, id int64) (*model.Match, error) {
	m := &model.Match{}
	found, err := b.getJSON(matchesBucket, id, m)
	if err != nil {
		return nil, fmt.Errorf("failed to find match by ID: %w", err)
	}
	if !found {
		return nil, nil
	}
	return m, nil
}

// ListMatches は条件に合う試合を開催日の降順（同日時はID昇順）で返す。
func (b *BoltCatalog) ListMatches(_ context.Context, filter model.MatchFilter) ([]*model.Match, error) {
	out := []*model.Match{}
	err := forEachJSON(b.db, matchesBucket, func(m *model.Match) {
		if filter.Matches(m) {
			out = append(out, m)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	model.SortMatches(out)
	return out, nil
}

// StoredSeed は最後に書き込まれたデータセットのシードを返す。
func (b *BoltCatalog) StoredSeed(_ context.Context) (uint32, bool, error) {
	var (
		seed uint32
		ok   bool
	)
	err := b.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(metaBucket).Get(seedKey)
		if v == nil {
			return nil
		}
		if len(v) != 4 {
			return fmt.Errorf("corrupt dataset seed: %d bytes", len(v))
		}
		seed, ok = binary.BigEndian.Uint32(v), true
		return nil
	})
	if err != nil {
		return 0, false, fmt.Errorf("failed to read dataset seed: %w", err)
	}
	return seed, ok, nil
}
