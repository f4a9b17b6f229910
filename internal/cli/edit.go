package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/amterp/ra"

	"github.com/amterp/boardkit/internal/codec"
	"github.com/amterp/boardkit/internal/editor"
	kanerr "github.com/amterp/boardkit/internal/errors"
)

func registerEdit(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("edit")
	cmd.SetDescription("Edit the whole collection as JSON in your editor")

	ctx.EditUsed, _ = parent.RegisterCmd(cmd)
}

func runEdit(opts appOptions) error {
	ctx := context.Background()
	app, err := newApp(ctx, opts)
	if err != nil {
		return err
	}
	defer app.Close()

	current, err := app.Document.Load(ctx)
	if err != nil {
		if kanerr.IsCorruptData(err) {
			return fmt.Errorf("%w (run 'boardkit reset' to start over)", err)
		}
		return err
	}

	raw, err := codec.Encode(current)
	if err != nil {
		return err
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err != nil {
		return err
	}
	pretty.WriteByte('\n')

	ed := editor.NewEditor(app.Config.Editor)
	edited, err := ed.Edit(pretty.Bytes())
	if err != nil {
		return fmt.Errorf("editor %q failed: %w", ed.Resolve(), err)
	}

	next, err := codec.Decode(edited)
	if err != nil {
		return fmt.Errorf("edited collection is invalid, nothing saved: %w", err)
	}

	changed, err := app.Document.Replace(ctx, next)
	if err != nil {
		return err
	}
	if !changed {
		PrintInfo("No changes made")
		return nil
	}
	PrintSuccess("Saved %d boards", len(next.Boards))
	return nil
}
