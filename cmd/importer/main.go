package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/taskdock/importer/modules/tasks/domain/importentry"
	"github.com/taskdock/importer/modules/tasks/infrastructure/persistence"
	"github.com/taskdock/importer/modules/tasks/presentation/controllers"
	"github.com/taskdock/importer/modules/tasks/services"
	"github.com/taskdock/importer/pkg/configuration"
	"github.com/taskdock/importer/pkg/metrics"
	"github.com/taskdock/importer/pkg/middleware"
	"github.com/taskdock/importer/pkg/server"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			configuration.Use().Unload()
			log.Println(r)
			debug.PrintStack()
			os.Exit(1)
		}
	}()

	root := &cobra.Command{
		Use:           "importer",
		Short:         "Bulk task/routine spreadsheet import service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(serveCmd(), templateCmd(), importCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func connect(ctx context.Context) (*pgxpool.Pool, error) {
	conf := configuration.Use()
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return pgxpool.New(ctx, conf.Database.Opts)
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the import HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf := configuration.Use()
			logger := conf.Logger()

			pool, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()

			refs := persistence.NewReferenceRepository(pool)
			sink := persistence.NewPgRecordSink(pool)

			ctrls := []server.Controller{
				controllers.NewImportController(
					services.NewTemplateService(),
					services.NewImportService(refs, sink, logger),
					refs,
					logger,
					conf.MaxUploadSize,
				),
			}
			if conf.Prometheus.Enabled {
				ctrls = append(ctrls, metrics.NewPrometheusController(conf.Prometheus.Path))
			}

			srv := server.NewHTTPServer(ctrls, middleware.RequestLogger(logger))
			logger.Infof("listening on %s", conf.SocketAddress)
			return srv.Start(conf.SocketAddress)
		},
	}
}

func templateCmd() *cobra.Command {
	var (
		kindFlag string
		outFlag  string
	)
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Generate an import template workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := importentry.ParseKind(kindFlag)
			if err != nil {
				return err
			}

			pool, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()

			refs, err := persistence.NewReferenceRepository(pool).Snapshot(cmd.Context())
			if err != nil {
				return err
			}
			data, err := services.NewTemplateService().Generate(cmd.Context(), kind, refs)
			if err != nil {
				return err
			}
			if outFlag == "" {
				outFlag = fmt.Sprintf("%s_import_%s.xlsx", kind, time.Now().Format("2006-01-02"))
			}
			if err := os.WriteFile(outFlag, data, 0o644); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "template written to", outFlag)
			return nil
		},
	}
	cmd.Flags().StringVar(&kindFlag, "kind", "tasks", "record kind: tasks or routines")
	cmd.Flags().StringVar(&outFlag, "out", "", "output path (defaults to <kind>_import_<date>.xlsx)")
	return cmd
}

func importCmd() *cobra.Command {
	var (
		kindFlag string
		fileFlag string
	)
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Validate and import a filled-in workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := importentry.ParseKind(kindFlag)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(fileFlag)
			if err != nil {
				return err
			}

			conf := configuration.Use()
			pool, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()

			svc := services.NewImportService(
				persistence.NewReferenceRepository(pool),
				persistence.NewPgRecordSink(pool),
				conf.Logger(),
			)
			result, err := svc.Import(cmd.Context(), kind, data)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !result.Committed {
				for _, rowErr := range result.Errors {
					fmt.Fprintln(out, rowErr.Message)
				}
				return fmt.Errorf("import rejected: %d of %d rows invalid", len(result.Errors), result.TotalRows)
			}
			fmt.Fprintf(out, "imported %d records (%d failed)\n", result.Succeeded, result.Failed)
			return nil
		},
	}
	cmd.Flags().StringVar(&kindFlag, "kind", "tasks", "record kind: tasks or routines")
	cmd.Flags().StringVar(&fileFlag, "file", "", "workbook to import")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
