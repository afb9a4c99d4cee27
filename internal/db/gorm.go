package db

import (
	"context"
	"log/slog"
	"time"

	"github.com/jcooky/go-din"
	"github.com/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/habiliai/signalrank/config"
	"github.com/habiliai/signalrank/internal/mylog"
)

const MemoryDSN = ":memory:"

// OpenDB opens the sqlite database. Query warnings and errors go to logger;
// misses on single-record lookups are reported to callers, not logged.
func OpenDB(databaseUrl string, logger *mylog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(databaseUrl), &gorm.Config{
		Logger: gormlogger.New(slog.NewLogLogger(logger.Handler(), slog.LevelWarn), gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if databaseUrl == MemoryDSN {
		// every pooled connection would otherwise get its own empty database
		sqlDB, err := db.DB()
		if err != nil {
			return nil, errors.Wrapf(err, "failed to get db")
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

func CloseDB(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrapf(err, "failed to get db")
	}
	if err := sqlDB.Close(); err != nil {
		return errors.Wrapf(err, "failed to close db")
	}

	return nil
}

func AutoMigrate(ctx context.Context, db *gorm.DB, models ...any) error {
	_, tx := OpenSession(ctx, db)
	return errors.WithStack(tx.AutoMigrate(models...))
}

func init() {
	din.RegisterT(func(c *din.Container) (*gorm.DB, error) {
		logger, err := din.GetT[*mylog.Logger](c)
		if err != nil {
			return nil, err
		}

		cfg, err := din.GetT[*config.ServerConfig](c)
		if err != nil {
			return nil, err
		}

		databaseUrl := cfg.DatabaseUrl
		if c.Env == din.EnvTest {
			databaseUrl = MemoryDSN
		}

		logger.Info("initialize database", "url", databaseUrl)
		db, err := OpenDB(databaseUrl, logger)
		if err != nil {
			return nil, err
		}

		go func() {
			<-c.Done()
			if err := CloseDB(db); err != nil {
				logger.Warn("failed to close database", mylog.Err(err))
			}
			logger.Info("database closed")
		}()

		return db, nil
	})
}
