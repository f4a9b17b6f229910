package cli

import (
	"context"
	"fmt"

	"github.com/amterp/ra"
)

func registerReset(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("reset")
	cmd.SetDescription("Replace all stored boards with an empty collection")

	ctx.ResetForce, _ = ra.NewBool("force").
		SetShort("f").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Skip the confirmation prompt").
		Register(cmd)

	ctx.ResetUsed, _ = parent.RegisterCmd(cmd)
}

func runReset(opts appOptions, force bool) error {
	ctx := context.Background()
	app, err := newApp(ctx, opts)
	if err != nil {
		return err
	}
	defer app.Close()

	if !force {
		ok, err := app.Prompter.Confirm("Delete every board, list and card?", false)
		if err != nil {
			return fmt.Errorf("%w (use --force to reset without prompting)", err)
		}
		if !ok {
			PrintInfo("Reset cancelled")
			return nil
		}
	}

	if err := app.Document.Reset(ctx); err != nil {
		return err
	}
	PrintSuccess("Collection reset")
	return nil
}
