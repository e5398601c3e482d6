package cli

import (
	"context"
	"log"
	"os"
)

func (a *App) Reveal(ctx context.Context) error {

	id, err := GetID(a.reader, "Hash record id to reveal", os.Stdout)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	if err := a.api.RequestReveal(ctx, id); err != nil {
		log.Println(err.Error())
		return err
	}

	log.Printf("Reveal requested for hash %d; check it again once the oracle calls back\n", id)
	return nil
}

func (a *App) Verify(ctx context.Context) error {

	id, err := GetID(a.reader, "Guess record id to verify", os.Stdout)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	if err := a.api.RequestVerify(ctx, id); err != nil {
		log.Println(err.Error())
		return err
	}

	log.Printf("Verification requested for guess %d\n", id)
	return nil
}
