package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/jcooky/go-din"
	"github.com/spf13/cobra"

	"github.com/habiliai/signalrank/internal/mylog"
	"github.com/habiliai/signalrank/server"
)

func newServeCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP and JSON-RPC API",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newContainer(cmd, flags)
			if err != nil {
				return err
			}
			defer c.Close()

			logger := din.MustGetT[*mylog.Logger](c)
			srv := server.New(c)

			go func() {
				<-cmd.Context().Done()
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := srv.Shutdown(ctx); err != nil {
					logger.Error("failed to shutdown server", mylog.Err(err))
				}
			}()

			logger.Info("starting server", "addr", srv.Addr, "version", version)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
}
