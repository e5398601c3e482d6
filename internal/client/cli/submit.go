package cli

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/hashaudit/internal/common"
	"github.com/dmitrijs2005/hashaudit/internal/cryptox"
)

// sealPassword reads a password without echo, hashes it and seals the digest
// under the client key. Only the sealed blob ever leaves the process.
func (a *App) sealPassword() ([]byte, error) {
	pw, err := GetPassword(os.Stdout)
	if err != nil {
		return nil, err
	}
	digest := cryptox.HashPassword(pw)
	common.WipeByteArray(pw)

	return cryptox.Seal([]byte(digest), a.key)
}

func (a *App) SubmitHash(ctx context.Context) error {

	sealed, err := a.sealPassword()
	if err != nil {
		log.Println(err.Error())
		return err
	}

	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	id, err := a.api.SubmitHash(ctx, sealed)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	log.Printf("Submitted hash record %d\n", id)
	return nil
}

func (a *App) SubmitGuess(ctx context.Context) error {

	targetID, err := GetID(a.reader, "Target hash record id", os.Stdout)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	sealed, err := a.sealPassword()
	if err != nil {
		log.Println(err.Error())
		return err
	}

	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	id, err := a.api.SubmitGuess(ctx, targetID, sealed)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	log.Printf("Submitted guess record %d against hash %d\n", id, targetID)
	return nil
}
