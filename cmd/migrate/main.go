package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"amenity-booking/internal/handler/middleware"
	"amenity-booking/internal/pkg/config"

	"ariga.io/atlas-go-sdk/atlasexec"
)

// migrate applies migrations/ with the atlas CLI. The directory needs an
// atlas.sum; regenerate it with `make migrate-hash` after editing a file.
func main() {
	dir := flag.String("dir", "migrations", "migration directory")
	bin := flag.String("atlas", "atlas", "atlas binary")
	dryRun := flag.Bool("dry-run", false, "print pending migrations without applying them")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("設定の読み込みに失敗しました", "error", err)
		os.Exit(1)
	}
	logger := middleware.NewLogger(cfg.Log).GetSlogLogger()

	if err := run(logger, cfg.DB, *dir, *bin, *dryRun); err != nil {
		logger.Error("マイグレーションに失敗しました", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, db config.DBConfig, dir, bin string, dryRun bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	workdir, err := atlasexec.NewWorkingDir(atlasexec.WithMigrations(os.DirFS(dir)))
	if err != nil {
		return err
	}
	defer workdir.Close()

	client, err := atlasexec.NewClient(workdir.Path(), bin)
	if err != nil {
		return err
	}

	res, err := client.MigrateApply(ctx, &atlasexec.MigrateApplyParams{
		URL:    db.BuildDSN(),
		DryRun: dryRun,
	})
	if err != nil {
		return err
	}

	logger.Info("マイグレーション実行完了",
		"applied", len(res.Applied),
		"current", res.Current,
		"target", res.Target,
		"dry_run", dryRun)
	return nil
}
