package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hitoshi/frozenbet/internal/catalog"
	"github.com/hitoshi/frozenbet/internal/config"
	"github.com/hitoshi/frozenbet/internal/database"
	"github.com/hitoshi/frozenbet/internal/dataset"
	"github.com/hitoshi/frozenbet/internal/metrics"
	"github.com/hitoshi/frozenbet/internal/model"
	"github.com/hitoshi/frozenbet/internal/repository"
	"github.com/hitoshi/frozenbet/internal/seedgen"
)

// storage はDATA_SOURCEに応じて選ばれた永続ストアの組。
// memoryの場合はreader・writer・seeds・pingerがすべてnil。
type storage struct {
	reader repository.CatalogReader
	writer repository.DatasetWriter
	seeds  repository.SeedReader
	pinger catalog.Pinger
	close  func() error
}

// openStorage はDATA_SOURCEに応じたストアを開く。
// postgresの場合は接続確認とマイグレーション適用まで行う。
func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	switch cfg.DataSource {
	case config.DataSourcePostgres:
		db, err := database.Connect(ctx, cfg.DatabaseURL, cfg.DBConnectTimeout)
		if err != nil {
			return nil, err
		}
		version, err := database.RunMigrations(cfg.DatabaseURL)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("migration failed: %w", err)
		}
		slog.Info("database connection established",
			slog.String("database_url", maskDatabaseURL(cfg.DatabaseURL)),
			slog.Uint64("schema_version", uint64(version)),
		)
		cat := repository.NewPostgresCatalog(db)
		return &storage{reader: cat, writer: cat, seeds: cat, pinger: cat, close: db.Close}, nil

	case config.DataSourceBolt:
		cat, err := repository.OpenBoltCatalog(cfg.BoltPath)
		if err != nil {
			return nil, err
		}
		slog.Info("bolt store opened", slog.String("path", cfg.BoltPath))
		return &storage{reader: cat, writer: cat, seeds: cat, pinger: cat, close: cat.Close}, nil

	default:
		return &storage{close: func() error { return nil }}, nil
	}
}

// generatorOptions はGENERATOR_PROFILEとLOCATION_POLICYから生成オプションを組み立てる。
// LOCATION_POLICYはプロファイルの指定より優先する。
func generatorOptions(cfg *config.Config) (seedgen.Options, error) {
	opts := seedgen.DefaultOptions()
	if cfg.GeneratorProfile != "" {
		var err error
		if opts, err = seedgen.LoadProfile(cfg.GeneratorProfile); err != nil {
			return opts, err
		}
	}

	if cfg.LocationPolicy != "" {
		policy, err := seedgen.ParseLocationPolicy(cfg.LocationPolicy)
		if err != nil {
			return opts, err
		}
		opts.LocationPolicy = policy
	}

	if err := opts.Validate(); err != nil {
		return opts, fmt.Errorf("invalid generator options: %w", err)
	}
	return opts, nil
}

// newCatalogService はストアと設定からカタログサービスを組み立てる。
func newCatalogService(cfg *config.Config, st *storage, collector metrics.MetricsCollector) (*catalog.Service, error) {
	opts, err := generatorOptions(cfg)
	if err != nil {
		return nil, err
	}

	policy, err := catalog.ParseUserSeedPolicy(cfg.UserSeedPolicy)
	if err != nil {
		return nil, err
	}

	deps := catalog.Deps{
		Reader: st.reader,
		Writer: st.writer,
		Pinger: st.pinger,
		Logger: slog.Default(),
	}
	if collector != nil {
		deps.Metrics = collector
	}

	return catalog.NewService(catalog.Config{
		DataSource:     cfg.DataSource,
		DefaultSeed:    cfg.DefaultSeed,
		UserSeed:       cfg.UserSeed,
		UserSeedPolicy: policy,
		Options:        opts,
	}, deps), nil
}

// bootstrap は起動時の初回スナップショットを公開する。
// 永続ストアがありSEED_ON_STARTが無効でも、ストアが空なら投入する。
// それ以外はストアの内容を保ったまま、保存済みのシードでスナップショットだけを作る。
func bootstrap(ctx context.Context, cfg *config.Config, svc *catalog.Service, st *storage) (*dataset.Snapshot, error) {
	if st.writer == nil || cfg.SeedOnStart {
		return svc.Generate(ctx, cfg.DefaultSeed)
	}

	cs, err := st.reader.ListCompetitions(ctx, model.CompetitionFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to inspect store: %w", err)
	}
	if len(cs) == 0 {
		slog.Info("store is empty, seeding", slog.Uint64("seed", uint64(cfg.DefaultSeed)))
		return svc.Generate(ctx, cfg.DefaultSeed)
	}

	seed := cfg.DefaultSeed
	if st.seeds != nil {
		stored, ok, err := st.seeds.StoredSeed(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to read stored seed: %w", err)
		}
		if ok {
			seed = stored
		} else {
			slog.Warn("stored dataset has no seed, assuming default",
				slog.Uint64("seed", uint64(seed)),
			)
		}
	}
	return svc.Prime(ctx, seed)
}

// maskDatabaseURL はデータベースURLの認証情報をマスクする。
func maskDatabaseURL(url string) string {
	if len(url) > 20 {
		return url[:12] + "***@..."
	}
	return "***"
}
