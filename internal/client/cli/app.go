package cli

import (
	"bufio"
	"context"
	"errors"
	"log"
	"os"

	"github.com/dmitrijs2005/hashaudit/internal/client/client"
	"github.com/dmitrijs2005/hashaudit/internal/client/config"
	"github.com/dmitrijs2005/hashaudit/internal/cryptox"
	"github.com/dmitrijs2005/hashaudit/internal/protocol"
	"github.com/dmitrijs2005/hashaudit/internal/server/auth"
)

// auditAPI is the slice of the API client the CLI needs. The real
// client.AuditClient satisfies it; tests provide stubs.
type auditAPI interface {
	SetToken(token string)
	Close()
	SubmitHash(ctx context.Context, ciphertext []byte) (int64, error)
	SubmitGuess(ctx context.Context, targetHashID int64, ciphertext []byte) (int64, error)
	RequestReveal(ctx context.Context, hashID int64) error
	RequestVerify(ctx context.Context, guessID int64) error
	GetHash(ctx context.Context, id int64) (*protocol.GetHashResponse, error)
	GetGuess(ctx context.Context, id int64) (*protocol.GetGuessResponse, error)
	ListGuesses(ctx context.Context, targetHashID int64) ([]protocol.GetGuessResponse, error)
}

type App struct {
	config   *config.Config
	api      auditAPI
	reader   *bufio.Reader
	key      []byte
	identity string
}

func NewApp(c *config.Config) (*App, error) {

	apiClient, err := client.NewAuditClient(c.NATSURL)
	if err != nil {
		return nil, err
	}

	return &App{config: c, api: apiClient, reader: bufio.NewReader(os.Stdin)}, nil
}

func (a *App) isLoggedIn() bool {
	return a.identity != ""
}

// Login asks for the submitter name, mints an access token for it and
// derives the sealing key. The dev setup signs tokens client-side with the
// shared secret; a deployment would obtain them from an identity provider.
func (a *App) Login(ctx context.Context) error {

	prompt := "Enter submitter name"
	if last := loadLastSubmitter(); last != "" {
		prompt = prompt + " [" + last + "]"
	}

	name, err := GetSimpleText(a.reader, prompt, os.Stdout)
	if err != nil {
		return err
	}
	if name == "" {
		name = loadLastSubmitter()
	}
	if name == "" {
		return errors.New("submitter name must not be empty")
	}

	token, err := auth.GenerateToken(name, []byte(a.config.SecretKey), a.config.TokenValidity)
	if err != nil {
		return err
	}

	a.api.SetToken(token)
	a.identity = name
	a.key = cryptox.DeriveKey([]byte(a.config.Passphrase), []byte(a.config.KeySalt))

	saveLastSubmitter(name)

	log.Printf("Logged in as %s\n", name)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.api.SetToken("")
	a.identity = ""
	a.key = nil
	return nil
}

func (a *App) Run(ctx context.Context) {
	defer a.api.Close()
	a.Root(ctx)
}

// callCtx returns a per-request context honoring the configured timeout.
func (a *App) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}
