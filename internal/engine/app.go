package engine

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/dmitrijs2005/hashaudit/internal/blobstore"
	"github.com/dmitrijs2005/hashaudit/internal/cryptox"
	ec "github.com/dmitrijs2005/hashaudit/internal/engine/config"
	"github.com/dmitrijs2005/hashaudit/internal/logging"
)

// App wires the engine daemon: blob store, key derivation, NATS connection.
type App struct {
	config *ec.Config
	logger logging.Logger
}

func NewApp(c *ec.Config) *App {
	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	return &App{config: c, logger: logging.NewSlogLogger(sl)}
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

func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)

	blobs, err := blobstore.NewS3Store(ctx, blobstore.S3Config{
		Region:       app.config.S3Region,
		BaseEndpoint: app.config.S3BaseEndpoint,
		Bucket:       app.config.S3Bucket,
		RootUser:     app.config.S3RootUser,
		RootPassword: app.config.S3RootPassword,
	})
	if err != nil {
		return fmt.Errorf("blob store init error: %w", err)
	}

	key := cryptox.DeriveKey([]byte(app.config.Passphrase), []byte(app.config.KeySalt))

	nc, err := nats.Connect(app.config.NATSURL,
		nats.Name("hashaudit-engine"),
		nats.ReconnectWait(time.Second),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			app.logger.Warn(ctx, "NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			app.logger.Info(ctx, "NATS reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return fmt.Errorf("NATS connect error: %w", err)
	}
	defer nc.Close()

	daemon := NewDaemon(nc, NewEngine(blobs, key, []byte(app.config.ProofKey)), app.logger, app.config.CallbackDelay)
	return daemon.Run(ctx)
}
