package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"levain/internal/config"
	"levain/internal/db"
	"levain/internal/importer"
	applog "levain/internal/log"
	"levain/internal/store"
)

var (
	loadConfigFunc   = config.Load
	openNotebookFunc = openNotebook
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: import_recipe <recipe.txt|recipe.pdf>...")
		os.Exit(2)
	}

	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
		os.Exit(1)
	}
}

// run imports each file as its own recipe. The recipe name falls back to the file
// name when the document has no heading.
func run(ctx context.Context, paths []string, out io.Writer) error {
	if len(paths) == 0 {
		return fmt.Errorf("at least one recipe file is required")
	}

	cfg, err := loadConfigFunc()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	st, closeNotebook, err := openNotebookFunc(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open notebook: %w", err)
	}
	defer closeNotebook()

	imported := 0
	for _, path := range paths {
		result, err := importFile(ctx, st, path)
		if err != nil {
			return fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		imported++
		fmt.Fprintf(out, "Imported %q from %s (%d matched, %d new ingredients)\n",
			result.Recipe.Name, filepath.Base(path), result.MatchedIngredients, len(result.CreatedIngredients))
		for _, warning := range result.Warnings {
			applog.Warn(ctx, "recipe import warning", "file", filepath.Base(path), "warning", warning)
			fmt.Fprintf(out, "  warning: %s\n", warning)
		}
	}

	fmt.Fprintf(out, "Imported %d recipes\n", imported)
	return nil
}

func importFile(ctx context.Context, st *store.Store, path string) (importer.Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return importer.Result{}, fmt.Errorf("locate file: %w", err)
	}
	if info.Size() > importer.MaxUploadSize {
		return importer.Result{}, fmt.Errorf("file exceeds %d bytes", importer.MaxUploadSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return importer.Result{}, fmt.Errorf("read file: %w", err)
	}

	text, err := importer.ExtractText(data, importer.MimeTypeFromName(path))
	if err != nil {
		return importer.Result{}, err
	}
	draft, err := importer.Parse(text, "")
	if err != nil {
		return importer.Result{}, err
	}
	if strings.TrimSpace(draft.Name) == "" {
		draft.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return importer.Import(ctx, st, draft)
}

func openNotebook(ctx context.Context, cfg config.Config) (*store.Store, func(), error) {
	if cfg.Storage.Backend == config.StorageRedis {
		client, err := db.ConnectRedis(ctx, cfg.Storage.Redis)
		if err != nil {
			return nil, nil, err
		}
		kv, err := store.NewRedisStore(client, cfg.Storage.Redis.Prefix)
		if err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		st, err := store.New(kv)
		if err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		return st, func() { _ = client.Close() }, nil
	}

	database, err := db.Initialize(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.AutoMigrate(database); err != nil {
		return nil, nil, fmt.Errorf("auto migrate: %w", err)
	}
	kv, err := store.NewSQLStore(database)
	if err != nil {
		return nil, nil, err
	}
	st, err := store.New(kv)
	if err != nil {
		return nil, nil, err
	}
	return st, func() {
		if sqlDB, err := database.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}, nil
}
