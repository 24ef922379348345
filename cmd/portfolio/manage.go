package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aTrapDeer/portfolio-backend/internal/client"
	"github.com/aTrapDeer/portfolio-backend/internal/portfolio"
	"github.com/aTrapDeer/portfolio-backend/internal/seed"
)

func migrateCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(cmd.Context(), g)
			if err != nil {
				return err
			}
			defer st.Close()
			g.logger.Info("migration complete")
			return nil
		},
	}
}

func seedCmd(g *globals) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load portfolio content from a YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := seed.LoadFile(file)
			if err != nil {
				return err
			}
			st, err := openStore(cmd.Context(), g)
			if err != nil {
				return err
			}
			defer st.Close()

			res, err := seed.Apply(cmd.Context(), portfolio.New(st, portfolio.WithLogger(g.logger)), f)
			g.logger.Info("seed applied",
				"contact_info", res.ContactInfo,
				"skills", res.Skills,
				"experience", res.Experience,
				"projects", res.Projects,
				"education", res.Education)
			return err
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "portfolio.yaml", "Seed file path")
	return cmd
}

func snapshotCmd(g *globals) *cobra.Command {
	var (
		baseURL string
		format  string
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Fetch the public portfolio from a running server and print it",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			p, err := client.NewClient(baseURL).LoadPortfolio(ctx)
			if err != nil {
				return err
			}
			return writeSnapshot(cmd.OutOrStdout(), p, format)
		},
	}
	cmd.Flags().StringVar(&baseURL, "url", "http://localhost:2022", "Server base URL")
	cmd.Flags().StringVar(&format, "format", "json", "Output format (json, yaml)")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")
	return cmd
}

func writeSnapshot(w io.Writer, p *client.Portfolio, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	case "yaml":
		// Go through JSON so YAML keys match the API field names.
		raw, err := json.Marshal(p)
		if err != nil {
			return err
		}
		var doc any
		if err := json.Unmarshal(raw, &doc); err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown format %q", format)
}
