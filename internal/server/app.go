// Package server initializes and runs the audit server. It opens the
// database, runs migrations, connects to NATS and the blob store, and wires
// the audit service to its transport.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/dmitrijs2005/hashaudit/internal/blobstore"
	"github.com/dmitrijs2005/hashaudit/internal/logging"
	"github.com/dmitrijs2005/hashaudit/internal/server/config"
	"github.com/dmitrijs2005/hashaudit/internal/server/natsrpc"
	"github.com/dmitrijs2005/hashaudit/internal/server/oracle"
	"github.com/dmitrijs2005/hashaudit/internal/server/records"
	"github.com/dmitrijs2005/hashaudit/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/hashaudit/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	audit  *services.AuditService
	nc     *nats.Conn
	blobs  blobstore.Store
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	nc, err := nats.Connect(c.NATSURL,
		nats.Name("hashaudit-server"),
		nats.ReconnectWait(time.Second),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			logger.Warn(ctx, "NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info(ctx, "NATS reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("NATS connect error: %w", err)
	}

	blobs, err := blobstore.NewS3Store(ctx, blobstore.S3Config{
		Region:       c.S3Region,
		BaseEndpoint: c.S3BaseEndpoint,
		Bucket:       c.S3Bucket,
		RootUser:     c.S3RootUser,
		RootPassword: c.S3RootPassword,
	})
	if err != nil {
		return nil, fmt.Errorf("blob store init error: %w", err)
	}

	store := records.NewStore(db, rm)
	ledger := rm.Requests(db)
	submitter := natsrpc.NewOracleSubmitter(nc, c.OracleTimeout)
	oracleClient := oracle.NewClient(submitter, ledger, []byte(c.ProofKey))
	events := natsrpc.NewEventSink(nc, logger)

	audit := services.NewAuditService(store, ledger, oracleClient, events, logger)

	return &App{
		config: c,
		logger: logger,
		db:     db,
		audit:  audit,
		nc:     nc,
		blobs:  blobs,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	srv := natsrpc.NewServer(app.nc, app.audit, app.blobs, app.logger, app.config.SecretKey)
	if err := srv.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
	app.nc.Close()
}
