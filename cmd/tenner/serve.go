package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	httpadapter "svw.info/tenner/internal/adapters/http"
	"svw.info/tenner/internal/generator"
	"svw.info/tenner/internal/hint"
	"svw.info/tenner/internal/infrastructure/storage"
	"svw.info/tenner/internal/logger"
	"svw.info/tenner/internal/search"
	"svw.info/tenner/internal/tenner"
	"svw.info/tenner/internal/usecase"
	"svw.info/tenner/internal/validator"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		dataDir, _ := cmd.Flags().GetString("data")
		propName, _ := cmd.Flags().GetString("prop")
		modelName, _ := cmd.Flags().GetString("model")

		s, err := search.NewBoardSolver(tenner.ModelKind(modelName), propName)
		if err != nil {
			return err
		}

		// Wire providers -> use cases -> HTTP adapter
		g := generator.NewUniqueGenerator(s)
		v := validator.New()
		st := storage.NewFS(dataDir)
		hin := hint.NewForced()
		uc := usecase.NewService(s, g, v, hin, st)
		h := httpadapter.New(uc)

		srv := &http.Server{
			Addr:              addr,
			Handler:           h.Router(),
			ReadHeaderTimeout: 5 * time.Second,
		}
		log := logger.Logger()
		log.Info().
			Str("addr", addr).
			Str("data", dataDir).
			Str("propagator", propName).
			Str("model", modelName).
			Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "listen address")
	serveCmd.Flags().String("data", "./data", "save directory")
	serveCmd.Flags().String("prop", "gac", "propagator: bt|fc|gac")
	serveCmd.Flags().String("model", "binary", "model: binary|alldiff")
	rootCmd.AddCommand(serveCmd)
}
