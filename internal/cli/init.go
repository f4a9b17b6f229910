package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/amterp/boardkit/internal/config"
	kanerr "github.com/amterp/boardkit/internal/errors"
	"github.com/amterp/boardkit/internal/store"
	"github.com/amterp/ra"
)

func registerInit(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("init")
	cmd.SetDescription("Write a config file and check the storage backend")

	ctx.InitBackend, _ = ra.NewString("backend").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Storage backend: file, sqlite, s3 or redis (default: file)").
		Register(cmd)

	ctx.InitDataDir, _ = ra.NewString("data-dir").
		SetShort("d").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Directory for the file and sqlite backends (default: ~/.boardkit)").
		Register(cmd)

	ctx.InitForce, _ = ra.NewBool("force").
		SetShort("f").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Overwrite an existing config file").
		Register(cmd)

	ctx.InitUsed, _ = parent.RegisterCmd(cmd)
}

func runInit(opts appOptions, backend, dataDir string, force bool) error {
	switch backend {
	case "", config.BackendFile, config.BackendSQLite, config.BackendS3, config.BackendRedis:
	default:
		return kanerr.InvalidField("backend", fmt.Sprintf("unknown backend %q", backend))
	}

	path := opts.resolvedConfigPath()

	if _, err := os.Stat(path); err == nil && !force {
		PrintWarning("Config already exists at %s (use --force to overwrite)", path)
	} else {
		cfg := config.Default()
		if backend != "" {
			cfg.Storage.Backend = backend
		}
		cfg.Storage.DataDir = dataDir
		if err := config.Save(path, cfg); err != nil {
			return err
		}
		PrintSuccess("Wrote config to %s", path)

		if err := cfg.Validate(); err != nil {
			PrintWarning("%v", err)
			PrintInfo("Edit %s to finish configuring the %s backend", path, cfg.Storage.Backend)
			return nil
		}
	}

	ctx := context.Background()
	app, err := newApp(ctx, opts)
	if err != nil {
		return err
	}
	defer app.Close()

	// A first load proves the backend is reachable and the stored data decodes.
	c, err := app.Document.Load(ctx)
	if err != nil {
		return err
	}
	PrintInfo("Using %s storage with %d board(s)", app.Config.Storage.Backend, len(c.Boards))
	if fs, ok := app.Store.(*store.FileStore); ok {
		PrintInfo("Data file: %s", RenderURL(fs.Path(store.CollectionKey)))
	}
	return nil
}
