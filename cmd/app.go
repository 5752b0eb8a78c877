package cmd

import (
	"context"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/smartworld/smartdesk/db/migrations"
	"github.com/smartworld/smartdesk/internal"
	"github.com/smartworld/smartdesk/internal/alert"
	alertRepo "github.com/smartworld/smartdesk/internal/alert/postgres"
	"github.com/smartworld/smartdesk/internal/attendance"
	"github.com/smartworld/smartdesk/internal/core/events"
	"github.com/smartworld/smartdesk/internal/directory"
	directoryRepo "github.com/smartworld/smartdesk/internal/directory/postgres"
	"github.com/smartworld/smartdesk/internal/hierarchy"
	hierarchyRepo "github.com/smartworld/smartdesk/internal/hierarchy/postgres"
	"github.com/smartworld/smartdesk/internal/kvstore"
	"github.com/smartworld/smartdesk/internal/metrics"
	"github.com/smartworld/smartdesk/internal/policy"
	policyRepo "github.com/smartworld/smartdesk/internal/policy/postgres"
	"github.com/smartworld/smartdesk/internal/portal"
	"github.com/smartworld/smartdesk/internal/room"
	"github.com/smartworld/smartdesk/internal/spreadsheet"
)

// app is the wired object graph shared by the server and the seeder.
type app struct {
	DB     *sqlx.DB
	Gorm   *gorm.DB
	Bus    *events.EventBus
	Portal *portal.Portal
}

// sqlDriver maps the configured driver onto the database/sql driver name.
func sqlDriver(driver string) (string, error) {
	switch driver {
	case "postgres":
		return "pgx", nil
	case "sqlite":
		return "sqlite3", nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

// initDB opens the shared connection pool and verifies it.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	driver, err := sqlDriver(cfg.Driver)
	if err != nil {
		return nil, err
	}

	dbConn, err := sqlx.Open(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	if cfg.Driver == "sqlite" {
		// one writer; in-memory databases are per connection
		dbConn.SetMaxOpenConns(1)
	} else {
		dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
		dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
		dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
		dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return dbConn, nil
}

// openGorm wraps the existing pool so both access layers share connections.
func openGorm(db *sqlx.DB, driver string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.New(postgres.Config{Conn: db.DB})
	case "sqlite":
		dialector = sqlite.New(sqlite.Config{Conn: db.DB})
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	return gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
}

// runMigrations applies the embedded goose migrations.
func runMigrations(ctx context.Context, db *sqlx.DB, driver string, rollback bool) error {
	dialect := "postgres"
	if driver == "sqlite" {
		dialect = "sqlite3"
	}
	goose.SetBaseFS(migrations.FS)
	goose.SetTableName("schema_migrations")
	if err := goose.SetDialect(dialect); err != nil {
		return err
	}
	if rollback {
		return goose.DownContext(ctx, db.DB, ".")
	}
	return goose.UpContext(ctx, db.DB, ".")
}

func newSource(ctx context.Context, cfg internal.DataConfig) (spreadsheet.Source, error) {
	if cfg.Sheets.SpreadsheetID != "" {
		return spreadsheet.NewSheetsSource(ctx, cfg.Sheets.CredentialsFile, cfg.Sheets.SpreadsheetID,
			cfg.Sheets.RosterRange, cfg.Sheets.AttendanceRange)
	}
	return spreadsheet.NewFileSource(cfg.RosterPath, cfg.AttendancePath), nil
}

// buildApp opens storage and wires every store into a portal. Nothing is
// loaded yet; callers run Init and Load as they need.
func buildApp(ctx context.Context, cfg *internal.Config, logger *slog.Logger) (*app, error) {
	db, err := initDB(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if cfg.Database.AutoMigrate {
		if err := runMigrations(ctx, db, cfg.Database.Driver, false); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	gdb, err := openGorm(db, cfg.Database.Driver)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	state := kvstore.New(db)
	if err := state.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to prepare state store: %w", err)
	}

	source, err := newSource(ctx, cfg.Data)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize spreadsheet source: %w", err)
	}

	bus := events.NewEventBus(logger)
	metrics.Subscribe(bus)

	p := portal.New(portal.Portal{
		Directory:  directory.NewService(directoryRepo.NewImageRepository(gdb), cfg.Data.UploadsDir, logger),
		Hierarchy:  hierarchy.NewService(hierarchyRepo.NewEdgeRepository(gdb), logger),
		Rooms:      room.NewService(state, bus, logger),
		Alerts:     alert.NewService(alertRepo.NewAlertRepository(gdb), bus, logger),
		Attendance: attendance.NewService(logger),
		Policies:   policy.NewService(policyRepo.NewPolicyRepository(gdb), logger),
	}, source, bus, logger)

	return &app{DB: db, Gorm: gdb, Bus: bus, Portal: p}, nil
}

func (a *app) Close(ctx context.Context, logger *slog.Logger) {
	if err := a.Bus.Drain(ctx); err != nil {
		logger.Warn("event handlers still running at shutdown", "error", err)
	}
	if err := a.DB.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}
}
