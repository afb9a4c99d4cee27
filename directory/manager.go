package directory

import (
	"context"
	"log/slog"

	"github.com/jcooky/go-din"
	"github.com/samber/lo"
	"gorm.io/gorm"

	"github.com/habiliai/signalrank/config"
	"github.com/habiliai/signalrank/entity"
	"github.com/habiliai/signalrank/errors"
	"github.com/habiliai/signalrank/internal/db"
	"github.com/habiliai/signalrank/internal/mylog"
	"github.com/habiliai/signalrank/signalrank"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100

	MinCompareAgents = 2
	MaxCompareAgents = 4
)

type (
	Manager interface {
		SubmitAgent(ctx context.Context, agent entity.Agent) (*entity.Agent, error)
		GetAgent(ctx context.Context, slug string) (*entity.Agent, error)
		ListAgents(ctx context.Context, opts ListOptions) ([]entity.Agent, error)
		CompareAgents(ctx context.Context, slugs []string) ([]entity.Agent, error)
		DeleteAgent(ctx context.Context, slug string) error
		RescoreAll(ctx context.Context) (int, error)
	}

	ListOptions struct {
		Tier    *entity.Tier
		Track   *entity.Track
		MCPOnly bool
		Offset  int
		Limit   int
	}

	manager struct {
		logger     *mylog.Logger
		db         *gorm.DB
		aggregator *signalrank.Aggregator
	}
)

func NewManager(logger *slog.Logger, db *gorm.DB, aggregator *signalrank.Aggregator) Manager {
	return &manager{
		logger:     logger,
		db:         db,
		aggregator: aggregator,
	}
}

// score keeps SRScore and SRTier consistent. Listings imported with a
// precomputed score and no breakdown keep that score.
func (m *manager) score(agent *entity.Agent) {
	if agent.ScoreBreakdown == (entity.ScoreBreakdown{}) && agent.SRScore > 0 {
		agent.SRScore = signalrank.RoundScore(signalrank.ClampScore(agent.SRScore))
		agent.SRTier = signalrank.TierFromScore(agent.SRScore)
		return
	}
	m.aggregator.Apply(agent)
}

func (m *manager) SubmitAgent(ctx context.Context, agent entity.Agent) (*entity.Agent, error) {
	normalizeAgent(&agent)
	if err := ValidateAgent(agent); err != nil {
		return nil, err
	}
	m.score(&agent)

	record := newAgentRecord(agent)
	if err := db.Transaction(ctx, m.db, func(ctx context.Context, tx *gorm.DB) error {
		var existing agentRecord
		err := tx.Where("slug = ?", agent.Slug).Take(&existing).Error
		switch {
		case err == nil:
			record.ID = existing.ID
			record.CreatedAt = existing.CreatedAt
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return errors.Wrapf(err, "failed to find agent %s", agent.Slug)
		}

		return errors.Wrapf(tx.Save(&record).Error, "failed to save agent %s", agent.Slug)
	}); err != nil {
		return nil, err
	}

	m.logger.Info("agent submitted", "slug", record.Slug, "score", record.SRScore, "tier", record.SRTier)

	saved := record.toEntity()
	return &saved, nil
}

func (m *manager) GetAgent(ctx context.Context, slug string) (*entity.Agent, error) {
	_, tx := db.OpenSession(ctx, m.db)

	var record agentRecord
	if err := tx.Where("slug = ?", slug).Take(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrapf(errors.ErrNotFound, "agent %s", slug)
		}
		return nil, errors.Wrapf(err, "failed to find agent %s", slug)
	}

	agent := record.toEntity()
	return &agent, nil
}

func (m *manager) ListAgents(ctx context.Context, opts ListOptions) ([]entity.Agent, error) {
	_, tx := db.OpenSession(ctx, m.db)

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	limit = min(limit, MaxListLimit)

	query := tx.Model(&agentRecord{})
	if opts.Tier != nil {
		query = query.Where("sr_tier = ?", *opts.Tier)
	}
	if opts.Track != nil {
		query = query.Where("sr_track = ?", *opts.Track)
	}
	if opts.MCPOnly {
		query = query.Where("is_mcp = ?", true)
	}

	var records []agentRecord
	if err := query.
		Order("sr_score DESC").
		Order("slug ASC").
		Offset(max(opts.Offset, 0)).
		Limit(limit).
		Find(&records).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list agents")
	}

	return lo.Map(records, func(r agentRecord, _ int) entity.Agent {
		return r.toEntity()
	}), nil
}

// CompareAgents returns the requested agents in request order.
func (m *manager) CompareAgents(ctx context.Context, slugs []string) ([]entity.Agent, error) {
	if len(slugs) < MinCompareAgents || len(slugs) > MaxCompareAgents {
		return nil, errors.Wrapf(errors.ErrInvalidParams, "compare takes %d to %d agents, got %d", MinCompareAgents, MaxCompareAgents, len(slugs))
	}
	if len(lo.Uniq(slugs)) != len(slugs) {
		return nil, errors.Wrapf(errors.ErrInvalidParams, "compare slugs must be distinct")
	}

	_, tx := db.OpenSession(ctx, m.db)

	var records []agentRecord
	if err := tx.Where("slug IN ?", slugs).Find(&records).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find agents")
	}

	bySlug := lo.KeyBy(records, func(r agentRecord) string {
		return r.Slug
	})

	agents := make([]entity.Agent, 0, len(slugs))
	for _, slug := range slugs {
		record, ok := bySlug[slug]
		if !ok {
			return nil, errors.Wrapf(errors.ErrNotFound, "agent %s", slug)
		}
		agents = append(agents, record.toEntity())
	}

	return agents, nil
}

func (m *manager) DeleteAgent(ctx context.Context, slug string) error {
	_, tx := db.OpenSession(ctx, m.db)

	res := tx.Where("slug = ?", slug).Delete(&agentRecord{})
	if res.Error != nil {
		return errors.Wrapf(res.Error, "failed to delete agent %s", slug)
	}
	if res.RowsAffected == 0 {
		return errors.Wrapf(errors.ErrNotFound, "agent %s", slug)
	}

	return nil
}

// RescoreAll reapplies the aggregator to every listing and returns how many
// changed.
func (m *manager) RescoreAll(ctx context.Context) (int, error) {
	changed := 0
	err := db.Transaction(ctx, m.db, func(ctx context.Context, tx *gorm.DB) error {
		var records []agentRecord
		if err := tx.Find(&records).Error; err != nil {
			return errors.Wrap(err, "failed to list agents")
		}

		for _, record := range records {
			agent := record.toEntity()
			m.score(&agent)
			if agent.SRScore == record.SRScore && agent.SRTier == record.SRTier {
				continue
			}

			if err := tx.Model(&agentRecord{}).Where("id = ?", record.ID).Updates(map[string]any{
				"sr_score": agent.SRScore,
				"sr_tier":  agent.SRTier,
			}).Error; err != nil {
				return errors.Wrapf(err, "failed to rescore agent %s", record.Slug)
			}
			changed++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	m.logger.Info("agents rescored", "changed", changed)
	return changed, nil
}

func init() {
	din.RegisterT(func(c *din.Container) (Manager, error) {
		logger, err := din.GetT[*mylog.Logger](c)
		if err != nil {
			return nil, err
		}
		cfg, err := din.GetT[*config.ServerConfig](c)
		if err != nil {
			return nil, err
		}
		scoring, err := din.GetT[*config.ScoringConfig](c)
		if err != nil {
			return nil, err
		}
		gormDB, err := din.GetT[*gorm.DB](c)
		if err != nil {
			return nil, err
		}

		if cfg.DatabaseAutoMigrate || c.Env == din.EnvTest {
			if err := db.AutoMigrate(c, gormDB, Models()...); err != nil {
				return nil, errors.Wrapf(err, "failed to migrate database")
			}
		}

		return NewManager(logger, gormDB, signalrank.NewAggregator(scoring.Weights)), nil
	})
}
