package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"gallerysync/internal/cloudinary"
	"gallerysync/internal/config"
	"gallerysync/internal/ingest"
)

func newIngestCommand(ctx *commandContext) *cobra.Command {
	var bodyFile string
	var replace bool

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Process one event submission and regenerate the site",
		Long: strings.TrimSpace(`
Parse a gallery submission (an issue-form body), enumerate the photos in its
Cloudinary folder, append the event to the mapping store, and regenerate the
static site artifacts.

The submission body is read from --file when given, otherwise from the
ISSUE_BODY environment variable. Cloudinary credentials come from the
CLOUDINARY_API_KEY and CLOUDINARY_API_SECRET environment variables; a .env
file in the working directory is loaded when present.
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Optional convenience for local runs; real deployments export
			// the variables directly.
			_ = godotenv.Load()

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			body, err := submissionBody(bodyFile)
			if err != nil {
				return err
			}

			creds, err := cloudinary.CredentialsFromEnv(config.EnvAPIKey, config.EnvAPISecret)
			if err != nil {
				return err
			}

			client := cloudinary.NewClient(cloudinary.Config{
				CloudName:      cfg.Cloudinary.CloudName,
				FolderPrefix:   cfg.Cloudinary.FolderPrefix,
				BaseURL:        cfg.Cloudinary.BaseURL,
				PageSize:       cfg.Cloudinary.PageSize,
				TimeoutSeconds: cfg.Cloudinary.RequestTimeout,
				RetryAttempts:  cfg.Cloudinary.RetryAttempts,
			}, creds, cloudinary.WithLogger(logger))

			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			renderer, err := ctx.newRenderer()
			if err != nil {
				return err
			}

			pipeline := ingest.New(cfg.Cloudinary.CloudName, store, client, renderer, logger)
			result, err := pipeline.Run(cmd.Context(), body, replace)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Ingested %q (%s): %d photos, %d video links\n",
				result.Event.Name, result.Event.Date, result.Event.PhotoCount, len(result.Event.VideoLinks))
			fmt.Fprintf(out, "Mapping now holds %d events; site regenerated in %s\n",
				result.TotalEvents, cfg.Paths.SiteDir)
			if result.Site.PatchTargetMiss {
				fmt.Fprintln(out, "Warning: gallery.js had no recognizable mapping constant and was left untouched")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&bodyFile, "file", "f", "", "Read the submission body from this file instead of ISSUE_BODY")
	cmd.Flags().BoolVar(&replace, "replace", false, "Replace an existing event that uses the same folder")
	return cmd
}

func submissionBody(bodyFile string) (string, error) {
	if path := strings.TrimSpace(bodyFile); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read submission file: %w", err)
		}
		return string(data), nil
	}
	if body := os.Getenv(config.EnvIssueBody); strings.TrimSpace(body) != "" {
		return body, nil
	}
	return "", fmt.Errorf("no submission body: pass --file or set %s", config.EnvIssueBody)
}
