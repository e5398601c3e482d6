package cli

import (
	"context"
	"fmt"
	"log"
	"os"
)

func (a *App) Show(ctx context.Context) error {

	id, err := GetID(a.reader, "Hash record id", os.Stdout)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	rec, err := a.api.GetHash(ctx, id)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	fmt.Printf("hash %d: state=%s submitted=%s\n", rec.ID, rec.State, rec.SubmittedAt.Format("2006-01-02 15:04:05"))
	if rec.Revealed {
		fmt.Printf("revealed hash: %s\n", rec.Hash)
	}
	return nil
}

func (a *App) ShowGuess(ctx context.Context) error {

	id, err := GetID(a.reader, "Guess record id", os.Stdout)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	rec, err := a.api.GetGuess(ctx, id)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	fmt.Printf("guess %d: target=%d state=%s submitted=%s\n",
		rec.ID, rec.TargetHashID, rec.State, rec.SubmittedAt.Format("2006-01-02 15:04:05"))
	return nil
}

func (a *App) List(ctx context.Context) error {

	targetID, err := GetID(a.reader, "Target hash record id", os.Stdout)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	guesses, err := a.api.ListGuesses(ctx, targetID)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	if len(guesses) == 0 {
		fmt.Println("no guesses yet")
		return nil
	}
	for _, g := range guesses {
		fmt.Printf("guess %d: state=%s submitted=%s\n", g.ID, g.State, g.SubmittedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}
