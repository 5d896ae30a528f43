// internal/syncer/syncer.go
package syncer

import (
	"context"
	"fmt"
	"slices"
	"time"

	conf "watchsync/internal/config"
	"watchsync/internal/db"
	"watchsync/internal/feed"
	"watchsync/internal/marketplace"
	_ "watchsync/internal/marketplace/ozon"   // registration
	_ "watchsync/internal/marketplace/yandex" // registration

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Marketplaces run in this fixed order; the APIs rate-limit per account, so
// one account's batches must not interleave with another's.
var order = []string{"ozon", "yandex"}

// wrapper for one built marketplace
type running struct {
	Name string
	Inst marketplace.Marketplace
}

// Syncer drives one full pass: feed download, then each configured
// marketplace sequentially. Every pass is journaled in sync_runs.
type Syncer struct {
	log  zerolog.Logger
	cfg  *conf.Config
	db   *gorm.DB
	feed *feed.Loader
}

func New(log zerolog.Logger, cfg *conf.Config, gdb *gorm.DB) *Syncer {
	return &Syncer{
		log:  log,
		cfg:  cfg,
		db:   gdb,
		feed: feed.NewLoader(log, cfg.Feed.URL, cfg.Feed.HeaderRow, cfg.Feed.CSVCharset),
	}
}

func (s *Syncer) build() []running {
	// a registered marketplace outside the run order would silently never
	// sync; surface it
	for name := range marketplace.All() {
		if !slices.Contains(order, name) {
			s.log.Warn().Str("marketplace", name).Msg("registered but not in run order, skipping")
		}
	}

	var out []running
	for _, name := range order {
		f, ok := marketplace.Get(name)
		if !ok {
			s.log.Warn().Str("marketplace", name).Msg("no factory registered, skipping")
			continue
		}
		inst, err := f(s.log.With().Str("marketplace", name).Logger(), s.cfg)
		if err != nil {
			if err == marketplace.ErrNotConfigured {
				s.log.Warn().Str("marketplace", name).Msg("not configured, skipping")
			} else {
				s.log.Error().Err(err).Str("marketplace", name).Msg("init failed")
			}
			continue
		}
		out = append(out, running{Name: name, Inst: inst})
	}
	s.log.Info().Int("count", len(out)).Msg("marketplaces built")
	return out
}

// RunOnce loads the feed and syncs every configured marketplace. The first
// failing step aborts the remaining orchestration; the journal row of the
// failing marketplace keeps the partial counts.
func (s *Syncer) RunOnce(ctx context.Context) error {
	markets := s.build()
	if len(markets) == 0 {
		s.log.Warn().Msg("nothing to sync (check credentials in the environment)")
		return nil
	}

	remnants, err := s.feed.Download(ctx)
	if err != nil {
		return err
	}

	for _, m := range markets {
		run := db.SyncRun{Marketplace: m.Name}
		s.journalStart(&run)

		rep, err := m.Inst.Sync(ctx, remnants)
		s.journalFinish(&run, rep, err)

		if err != nil {
			return fmt.Errorf("%s: %w", m.Name, err)
		}
		s.log.Info().
			Str("marketplace", m.Name).
			Int("offers", rep.Offers).
			Int("stocks", rep.StocksPushed).
			Int("prices", rep.PricesPushed).
			Msg("sync done")
	}
	return nil
}

// The journal is best effort: a broken sqlite file must not stop a sync,
// but it must be visible in the log.

func (s *Syncer) journalStart(run *db.SyncRun) {
	if s.db == nil {
		return
	}
	if err := s.db.Create(run).Error; err != nil {
		s.log.Warn().Err(err).Str("marketplace", run.Marketplace).Msg("journal write failed")
	}
}

func (s *Syncer) journalFinish(run *db.SyncRun, rep marketplace.Report, syncErr error) {
	if s.db == nil {
		return
	}
	now := time.Now()
	fields := map[string]any{
		"offers":        rep.Offers,
		"stocks_pushed": rep.StocksPushed,
		"prices_pushed": rep.PricesPushed,
		"finished_at":   now,
	}
	if syncErr != nil {
		fields["status"] = 2
		fields["last_error"] = syncErr.Error()
	} else {
		fields["status"] = 1
	}
	if err := s.db.Model(&db.SyncRun{}).Where("run_id = ?", run.RunID).Updates(fields).Error; err != nil {
		s.log.Warn().Err(err).Str("marketplace", run.Marketplace).Msg("journal write failed")
	}
}
