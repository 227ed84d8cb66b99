// Package catalog は大会・チーム・試合・ユーザーの参照と、
// シード指定によるデータセットの再生成を提供するサービス層。
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/hitoshi/frozenbet/internal/dataset"
	"github.com/hitoshi/frozenbet/internal/metrics"
	"github.com/hitoshi/frozenbet/internal/model"
	"github.com/hitoshi/frozenbet/internal/repository"
	"github.com/hitoshi/frozenbet/internal/seedgen"
)

// 公開範囲。永続ストアがある場合はストアも置き換える。
const (
	ScopeDataset         = "dataset"
	ScopeDatasetAndStore = "dataset+store"
)

// Pinger はストアへの疎通確認を行うインターフェース。
type Pinger interface {
	Ping(ctx context.Context) error
}

// Config はサービスの生成設定。
type Config struct {
	DataSource     string
	DefaultSeed    uint32
	UserSeed       uint32
	UserSeedPolicy UserSeedPolicy
	Options        seedgen.Options
}

// Deps はサービスが利用する協調オブジェクト。
// Readerがnilの場合はStoreから読む。Writer・Pingerはnilでもよい。
type Deps struct {
	Store   *dataset.Store
	Reader  repository.CatalogReader
	Writer  repository.DatasetWriter
	Pinger  Pinger
	Clock   clockwork.Clock
	Metrics metrics.MetricsCollector
	Logger  *slog.Logger
}

// Service はカタログのサービス層。
type Service struct {
	cfg     Config
	store   *dataset.Store
	reader  repository.CatalogReader
	writer  repository.DatasetWriter
	pinger  Pinger
	clock   clockwork.Clock
	metrics metrics.MetricsCollector
	logger  *slog.Logger

	// 生成・永続化・公開を1組として直列化する
	reloadMu sync.Mutex
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(cfg Config, deps Deps) *Service {
	s := &Service{
		cfg:     cfg,
		store:   deps.Store,
		reader:  deps.Reader,
		writer:  deps.Writer,
		pinger:  deps.Pinger,
		clock:   deps.Clock,
		metrics: deps.Metrics,
		logger:  deps.Logger,
	}
	if s.store == nil {
		s.store = dataset.NewStore()
	}
	if s.reader == nil {
		s.reader = s.store
	}
	if s.clock == nil {
		s.clock = clockwork.NewRealClock()
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Scope はReloadが置き換える範囲を返す。
func (s *Service) Scope() string {
	if s.writer != nil {
		return ScopeDatasetAndStore
	}
	return ScopeDataset
}

// DefaultSeed はシード未指定時に使うシードを返す。
func (s *Service) DefaultSeed() uint32 {
	return s.cfg.DefaultSeed
}

func (s *Service) userSeedFor(seed uint32) uint32 {
	if s.cfg.UserSeedPolicy == UserSeedShared {
		return seed
	}
	return s.cfg.UserSeed
}

// Generate はseedからデータセットとユーザーを生成し、永続ストアがあれば書き込んでから公開する。
// 永続化に失敗した場合は*model.StorageErrorを返し、公開中のスナップショットは変更しない。
func (s *Service) Generate(ctx context.Context, seed uint32) (*dataset.Snapshot, error) {
	return s.generate(ctx, seed, s.writer != nil)
}

// Prime は永続ストアに書き込まずにスナップショットだけを公開する。
// ストアが既にseedサブコマンドで投入済みの状態でserveを起動する場合に使う。
func (s *Service) Prime(ctx context.Context, seed uint32) (*dataset.Snapshot, error) {
	return s.generate(ctx, seed, false)
}

func (s *Service) generate(ctx context.Context, seed uint32, persist bool) (*dataset.Snapshot, error) {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	start := s.clock.Now()
	now := start.UTC().Truncate(time.Second)
	userSeed := s.userSeedFor(seed)

	ds, err := seedgen.GenerateDataset(seed, now, s.cfg.Options)
	if err != nil {
		s.recordGeneration(metrics.ResultFailure, start)
		return nil, fmt.Errorf("データセットの生成に失敗しました: %w", err)
	}

	users, err := seedgen.GenerateUsers(userSeed, now, s.cfg.Options)
	if err != nil {
		s.recordGeneration(metrics.ResultFailure, start)
		return nil, fmt.Errorf("ユーザーの生成に失敗しました: %w", err)
	}

	if persist {
		if err := s.writer.ReplaceDataset(ctx, ds); err != nil {
			s.recordGeneration(metrics.ResultFailure, start)
			var storageErr *model.StorageError
			if !errors.As(err, &storageErr) {
				storageErr = &model.StorageError{Op: "replace dataset", Err: err}
			}
			s.logger.Error("dataset persistence failed",
				"seed", seed,
				"op", storageErr.Op,
				"error", storageErr.Err,
			)
			return nil, storageErr
		}
	}

	snap := s.store.Publish(dataset.NewSnapshot(seed, userSeed, now, ds, users))
	s.recordGeneration(metrics.ResultSuccess, start)
	if s.metrics != nil {
		s.metrics.RecordDataset(snap.Version, snap.Counts())
	}

	counts := snap.Counts()
	s.logger.Info("dataset published",
		"seed", seed,
		"user_seed", userSeed,
		"run_id", snap.RunID.String(),
		"version", snap.Version,
		"persisted", persist,
		"competitions", counts["competitions"],
		"teams", counts["teams"],
		"matches", counts["matches"],
		"users", counts["users"],
	)

	return snap, nil
}

// Reload はリクエストのシード文字列を検証してから再生成する。
// 検証エラーの場合は何も変更せずINVALID_SEEDを返す。
func (s *Service) Reload(ctx context.Context, rawSeed string) (*dataset.Snapshot, error) {
	seed, err := ParseSeed(rawSeed, s.cfg.DefaultSeed)
	if err != nil {
		s.recordReload(metrics.ResultInvalid)
		return nil, err
	}

	snap, err := s.Generate(ctx, seed)
	if err != nil {
		s.recordReload(metrics.ResultFailure)
		return nil, err
	}

	s.recordReload(metrics.ResultSuccess)
	return snap, nil
}

func (s *Service) recordGeneration(result string, start time.Time) {
	if s.metrics != nil {
		s.metrics.RecordGeneration(result, s.clock.Since(start))
	}
}

func (s *Service) recordReload(result string) {
	if s.metrics != nil {
		s.metrics.RecordReload(result)
	}
}

// Current は公開中のスナップショットを返す。未公開の場合はnil。
func (s *Service) Current() *dataset.Snapshot {
	return s.store.Current()
}

// Health はサービスの稼働状態。
type Health struct {
	DataSource string
	Version    uint64
	Seed       uint32
	Err        error
}

// Health はスナップショットの公開状況とストアへの疎通を確認する。
func (s *Service) Health(ctx context.Context) Health {
	h := Health{DataSource: s.cfg.DataSource}

	snap := s.store.Current()
	if snap == nil {
		h.Err = dataset.ErrNoSnapshot
		return h
	}
	h.Version = snap.Version
	h.Seed = snap.Seed

	if s.pinger != nil {
		if err := s.pinger.Ping(ctx); err != nil {
			h.Err = fmt.Errorf("ストアへの接続確認に失敗しました: %w", err)
		}
	}
	return h
}
