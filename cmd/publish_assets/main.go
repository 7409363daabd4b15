package main

import (
	"fmt"
	"log/slog"
	"os"

	"content_admin/internal/lib/logger"
	"content_admin/internal/lib/logger/sl"
	services "content_admin/internal/services/assets_service"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var (
		uploads      string
		assets       string
		projectsJSON string
		env          string
	)

	cmd := &cobra.Command{
		Use:   "publish_assets",
		Short: "Mirror server uploads into the static site and rewrite upload paths",
		Long: `Copies every file under --uploads that is missing or newer at --assets-uploads,
then rewrites /uploads/... paths in --projects-json to assets/uploads/....
Running it twice in a row copies nothing and leaves the JSON untouched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.SetupWriter(env, cmd.ErrOrStderr())

			report, err := services.NewAssetSync(log, uploads, assets, projectsJSON).Run(cmd.Context())
			if err != nil {
				log.Error("publish assets failed", sl.Err(err))
				return err
			}

			log.Info("done",
				slog.Int("copied", report.Copied),
				slog.Bool("projects_json_rewritten", report.Rewritten),
			)
			fmt.Fprintln(cmd.OutOrStdout(), "Done. Copied uploads and updated projects.json image paths.")

			return nil
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&uploads, "uploads", "server/uploads", "upload root written by the admin services")
	cmd.Flags().StringVar(&assets, "assets-uploads", "assets/uploads", "upload mirror inside the static site")
	cmd.Flags().StringVar(&projectsJSON, "projects-json", "assets/projects.json", "public projects file to rewrite")
	cmd.Flags().StringVar(&env, "env", logger.EnvLocal, "logger flavour: local, dev or prod")

	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
