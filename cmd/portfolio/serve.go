package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aTrapDeer/portfolio-backend/internal/mail"
	"github.com/aTrapDeer/portfolio-backend/internal/portfolio"
	"github.com/aTrapDeer/portfolio-backend/internal/revalidate"
	"github.com/aTrapDeer/portfolio-backend/internal/rpc"
	"github.com/aTrapDeer/portfolio-backend/internal/server"
	"github.com/aTrapDeer/portfolio-backend/internal/store"
)

func serveCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Migrate the database and serve the API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, g)
		},
	}
}

func serve(ctx context.Context, g *globals) error {
	st, err := openStore(ctx, g)
	if err != nil {
		return err
	}
	defer st.Close()

	opts := []portfolio.Option{
		portfolio.WithLogger(g.logger),
		portfolio.WithCache(g.cfg.CacheTTL, g.cfg.CacheCleanup),
	}
	var pending []waiter
	if reval := revalidate.New(g.cfg.RevalidationURL, g.cfg.RevalidationSecret, g.logger); reval.Enabled() {
		opts = append(opts, portfolio.WithChangeNotifier(reval))
		pending = append(pending, reval)
	} else {
		g.logger.Info("NEXT_REVALIDATION_URL is not set, revalidation disabled")
	}
	if g.cfg.SMTP.Enabled() {
		mailer := mail.NewNotifier(g.cfg.SMTP, g.logger)
		opts = append(opts, portfolio.WithSubmissionNotifier(mailer))
		pending = append(pending, mailer)
	}
	svc := portfolio.New(st, opts...)

	handler := rpc.NewHandler(svc, rpc.WithLogger(g.logger), rpc.WithMetrics(rpc.NewMetrics()))
	err = server.New(g.cfg.Addr(), handler, g.cfg.FrontendURLs, g.logger).Run(ctx)
	drain(g, pending)
	return err
}

type waiter interface {
	Wait(ctx context.Context) error
}

// drain waits for webhooks and mails still in flight after the server stops.
func drain(g *globals, pending []waiter) {
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()
	for _, w := range pending {
		if err := w.Wait(ctx); err != nil {
			g.logger.Warn("background deliveries abandoned on shutdown", "error", err)
			return
		}
	}
}

const drainTimeout = 15 * time.Second

func openStore(ctx context.Context, g *globals) (*store.Store, error) {
	st, err := store.Open(g.cfg.Driver(), g.cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, err
	}
	g.logger.Debug("database ready", "driver", g.cfg.Driver())
	return st, nil
}
