package internal

import (
	"encoding/json"
	"fmt"

	"github.com/MrSnakeDoc/mcversion/internal/config"
	"github.com/MrSnakeDoc/mcversion/internal/middleware"
	"github.com/MrSnakeDoc/mcversion/internal/models"
	"github.com/MrSnakeDoc/mcversion/internal/utils"

	"github.com/spf13/cobra"
)

func NewShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <version>",
		Short: "Resolve one version and print its record",
		Long: `Resolve a version locally, without a running server, and print the
same record GET /version/{versionId} returns.

Examples:
  mcversion show 1.21.4
  mcversion show 24w14a --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := middleware.Get[config.Config](cmd, middleware.CtxKeyConfig)
			if err != nil {
				return err
			}

			asJSON, err := cmd.Flags().GetBool("json")
			if err != nil {
				return err
			}

			record, err := newStack(cfg).resolver.Resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(record)
			}
			return utils.RenderTable(cmd.OutOrStdout(), []string{"Field", "Value"}, recordRows(record))
		},
	}

	cmd.Flags().Bool("json", false, "Print the record as JSON")
	cmd.Flags().Bool("table", false, "Print the record as a table (default)")
	return cmd
}

func recordRows(r models.ResolvedVersionRecord) [][]string {
	datapack := "null"
	if r.DatapackVersion != nil {
		datapack = fmt.Sprint(*r.DatapackVersion)
	}
	return [][]string{
		{"id", r.ID},
		{"type", r.Type},
		{"java_version", r.JavaVersion},
		{"datapack_version", datapack},
		{"resource_pack_version", r.ResourcePackVersion},
		{"update_title", r.UpdateTitle},
		{"release_time", r.ReleaseTime},
		{"release_time_formatted", r.ReleaseTimeFormatted},
		{"client_url", r.ClientURL},
		{"server_url", r.ServerURL},
		{"wikiurl", r.WikiURL},
	}
}
