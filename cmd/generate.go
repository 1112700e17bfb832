package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okian/coachlens/internal/domain/model"
	"github.com/okian/coachlens/internal/sampledata"
)

func newGenerateCmd() *cobra.Command {
	def := sampledata.DefaultConfig()
	defKeys := make([]string, len(def.Keys))
	for i, k := range def.Keys {
		defKeys[i] = k.String()
	}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write synthetic analysis documents for demos and tests",
		Long: `generate writes one <dataset>__<view>.json per key into the data
directory. Documents mix both metric variants and every rate and potential
shape the loader understands, including missing ones.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			gen := sampledata.DefaultConfig()
			rawKeys, _ := cmd.Flags().GetStringSlice("keys")
			gen.Keys = nil
			for _, raw := range rawKeys {
				k, err := model.ParseKey(raw)
				if err != nil {
					return fmt.Errorf("key %q: %w", raw, err)
				}
				gen.Keys = append(gen.Keys, k)
			}
			gen.Features, _ = cmd.Flags().GetInt("features")
			gen.Consultants, _ = cmd.Flags().GetInt("consultants")
			gen.Seed, _ = cmd.Flags().GetInt64("seed")

			docs, err := sampledata.Generate(gen)
			if err != nil {
				return err
			}
			written, err := sampledata.Write(cmd.Context(), cfg.DataDir, docs)
			if err != nil {
				return err
			}
			for _, path := range written {
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			return nil
		},
	}
	cmd.Flags().StringSlice("keys", defKeys, "Documents to generate as dataset__view")
	cmd.Flags().Int("features", def.Features, "Behavioral features per document")
	cmd.Flags().Int("consultants", def.Consultants, "Consultants per document")
	cmd.Flags().Int64("seed", def.Seed, "Random seed")
	return cmd
}
