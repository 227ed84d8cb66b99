package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hitoshi/frozenbet/internal/catalog"
	"github.com/hitoshi/frozenbet/internal/config"
	"github.com/hitoshi/frozenbet/internal/model"
	"github.com/hitoshi/frozenbet/internal/seedgen"
)

func asAPIError(err error, target **model.APIError) bool {
	return errors.As(err, target)
}

func baseConfig() *config.Config {
	return &config.Config{
		DataSource:     config.DataSourceMemory,
		DefaultSeed:    42,
		UserSeed:       42,
		UserSeedPolicy: "independent",
	}
}

func TestGeneratorOptions(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		opts, err := generatorOptions(baseConfig())
		if err != nil {
			t.Fatalf("generatorOptions error: %v", err)
		}
		if opts.LocationPolicy != seedgen.LocationHomeTeam {
			t.Errorf("LocationPolicy = %q, want %q", opts.LocationPolicy, seedgen.LocationHomeTeam)
		}
	})

	t.Run("location policy overrides profile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "profile.yaml")
		profile := "competitions: 2\nlocation_policy: home_team\n"
		if err := os.WriteFile(path, []byte(profile), 0o600); err != nil {
			t.Fatalf("WriteFile error: %v", err)
		}

		cfg := baseConfig()
		cfg.GeneratorProfile = path
		cfg.LocationPolicy = "fixed_set"

		opts, err := generatorOptions(cfg)
		if err != nil {
			t.Fatalf("generatorOptions error: %v", err)
		}
		if opts.Competitions != 2 {
			t.Errorf("Competitions = %d, want 2", opts.Competitions)
		}
		if opts.LocationPolicy != seedgen.LocationFixedSet {
			t.Errorf("LocationPolicy = %q, want %q", opts.LocationPolicy, seedgen.LocationFixedSet)
		}
	})

	t.Run("unknown location policy", func(t *testing.T) {
		cfg := baseConfig()
		cfg.LocationPolicy = "stadium"
		if _, err := generatorOptions(cfg); err == nil {
			t.Fatal("expected error for unknown location policy")
		}
	})
}

func TestNewCatalogService_InvalidUserSeedPolicy(t *testing.T) {
	cfg := baseConfig()
	cfg.UserSeedPolicy = "random"

	st, err := openStorage(context.Background(), cfg)
	if err != nil {
		t.Fatalf("openStorage error: %v", err)
	}
	if _, err := newCatalogService(cfg, st, nil); !errors.Is(err, model.ErrInvalidArgument) {
		t.Errorf("error = %v, want ErrInvalidArgument", err)
	}
}

func TestOpenStorage_Memory(t *testing.T) {
	st, err := openStorage(context.Background(), baseConfig())
	if err != nil {
		t.Fatalf("openStorage error: %v", err)
	}
	if st.reader != nil || st.writer != nil || st.pinger != nil {
		t.Error("memory storage should not have a persistent store")
	}
	if err := st.close(); err != nil {
		t.Errorf("close error: %v", err)
	}
}

func openBoltStorage(t *testing.T, cfg *config.Config) *storage {
	t.Helper()
	cfg.DataSource = config.DataSourceBolt
	cfg.BoltPath = filepath.Join(t.TempDir(), "frozenbet.db")

	st, err := openStorage(context.Background(), cfg)
	if err != nil {
		t.Fatalf("openStorage error: %v", err)
	}
	t.Cleanup(func() { st.close() })
	return st
}

func countCompetitions(t *testing.T, st *storage) int {
	t.Helper()
	cs, err := st.reader.ListCompetitions(context.Background(), model.CompetitionFilter{})
	if err != nil {
		t.Fatalf("ListCompetitions error: %v", err)
	}
	return len(cs)
}

func TestBootstrap(t *testing.T) {
	ctx := context.Background()

	t.Run("memory generates the default seed", func(t *testing.T) {
		cfg := baseConfig()
		st, _ := openStorage(ctx, cfg)
		svc, err := newCatalogService(cfg, st, nil)
		if err != nil {
			t.Fatalf("newCatalogService error: %v", err)
		}

		snap, err := bootstrap(ctx, cfg, svc, st)
		if err != nil {
			t.Fatalf("bootstrap error: %v", err)
		}
		if snap.Seed != 42 || snap.Version != 1 {
			t.Errorf("snapshot seed=%d version=%d, want 42 and 1", snap.Seed, snap.Version)
		}
		if svc.Scope() != catalog.ScopeDataset {
			t.Errorf("Scope() = %q, want %q", svc.Scope(), catalog.ScopeDataset)
		}
	})

	t.Run("empty store is seeded", func(t *testing.T) {
		cfg := baseConfig()
		st := openBoltStorage(t, cfg)
		svc, err := newCatalogService(cfg, st, nil)
		if err != nil {
			t.Fatalf("newCatalogService error: %v", err)
		}

		if _, err := bootstrap(ctx, cfg, svc, st); err != nil {
			t.Fatalf("bootstrap error: %v", err)
		}
		if got := countCompetitions(t, st); got != 5 {
			t.Errorf("competitions in store = %d, want 5", got)
		}
	})

	t.Run("seeded store is kept unless SEED_ON_START", func(t *testing.T) {
		cfg := baseConfig()
		st := openBoltStorage(t, cfg)

		now := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
		existing, err := seedgen.GenerateDataset(7, now, seedgen.Options{
			Competitions:          1,
			TeamsPerCompetition:   2,
			MatchesPerCompetition: 1,
			Seasons:               []string{"2025/26"},
			TeamCountries:         []string{"SWE"},
			UserCountries:         []string{"FR"},
			LocationPolicy:        seedgen.LocationHomeTeam,
			StartOffsetDays:       seedgen.Range{Min: 1, Max: 1},
			DurationDays:          seedgen.Range{Min: 10, Max: 10},
			MatchDayWindow:        seedgen.Range{Min: 0, Max: 0},
			MaxScore:              3,
		})
		if err != nil {
			t.Fatalf("GenerateDataset error: %v", err)
		}
		if err := st.writer.ReplaceDataset(ctx, existing); err != nil {
			t.Fatalf("ReplaceDataset error: %v", err)
		}

		svc, err := newCatalogService(cfg, st, nil)
		if err != nil {
			t.Fatalf("newCatalogService error: %v", err)
		}
		snap, err := bootstrap(ctx, cfg, svc, st)
		if err != nil {
			t.Fatalf("bootstrap error: %v", err)
		}
		if got := countCompetitions(t, st); got != 1 {
			t.Errorf("competitions in store = %d, want the existing 1", got)
		}
		if svc.Current() == nil {
			t.Fatal("snapshot should still be published for users and health")
		}
		// /healthはストアに保存されたデータのシードを返す。
		if snap.Seed != 7 {
			t.Errorf("primed snapshot seed = %d, want the stored seed 7 (default is %d)", snap.Seed, cfg.DefaultSeed)
		}

		cfg.SeedOnStart = true
		if _, err := bootstrap(ctx, cfg, svc, st); err != nil {
			t.Fatalf("bootstrap with SEED_ON_START error: %v", err)
		}
		if got := countCompetitions(t, st); got != 5 {
			t.Errorf("competitions in store = %d, want 5 after SEED_ON_START", got)
		}
	})
}

func TestMaskDatabaseURL(t *testing.T) {
	masked := maskDatabaseURL("postgres://frozenbet:secret@db:5432/frozenbet")
	if strings.Contains(masked, "secret") {
		t.Errorf("masked URL leaks password: %q", masked)
	}
	if got := maskDatabaseURL("short"); got != "***" {
		t.Errorf("maskDatabaseURL(short) = %q, want %q", got, "***")
	}
}

func TestRunHealthcheck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	port := srv.URL[strings.LastIndex(srv.URL, ":")+1:]
	if err := runHealthcheck(port); err != nil {
		t.Errorf("runHealthcheck error: %v", err)
	}
}
