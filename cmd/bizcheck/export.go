package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nexoventlabs/business-tracker/internal/business/repository"
	"github.com/nexoventlabs/business-tracker/internal/database"
	"github.com/nexoventlabs/business-tracker/internal/export"
	"github.com/nexoventlabs/business-tracker/internal/storage"
	"github.com/nexoventlabs/business-tracker/pkg/logger"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Snapshot the businesses collection as NDJSON into MinIO",
		RunE:  runExport,
	}
	cmd.Flags().String("prefix", "exports/", "Object key prefix inside the bucket")
	cmd.Flags().Duration("presign", 0, "Print a presigned download URL valid for this long (0 disables)")
	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	prefix, _ := cmd.Flags().GetString("prefix")
	presign, _ := cmd.Flags().GetDuration("presign")

	store, err := storage.NewMinIOStorage(ctx, cfg.MinIO)
	if err != nil {
		return err
	}

	mgr := database.NewManager(cfg.MongoDB.URL, cfg.MongoDB.Database, cfg.MongoDB.Collection, cfg.MongoDB.ConnectTimeout)
	defer func() { _ = mgr.Close(context.Background()) }()
	repo := repository.NewMongoRepo(mgr, 0)

	key := export.Key(prefix, time.Now())
	res, err := export.Snapshot(ctx, repo, store, key)
	if err != nil {
		return err
	}
	logger.Infof("exported %d businesses (%d bytes) to %s/%s", res.Records, res.Bytes, store.Bucket(), res.Key)
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d businesses to %s/%s\n", res.Records, store.Bucket(), res.Key)

	if presign > 0 {
		u, err := store.GetPresignedURL(ctx, res.Key, presign)
		if err != nil {
			return fmt.Errorf("presign: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Download URL (valid %s): %s\n", presign, u)
	}
	return nil
}
