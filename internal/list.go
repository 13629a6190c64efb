package internal

import (
	"encoding/json"

	"github.com/MrSnakeDoc/mcversion/internal/config"
	"github.com/MrSnakeDoc/mcversion/internal/middleware"
	"github.com/MrSnakeDoc/mcversion/internal/models"
	"github.com/MrSnakeDoc/mcversion/internal/utils"

	"github.com/spf13/cobra"
)

func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every version in the launcher manifest",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := middleware.Get[config.Config](cmd, middleware.CtxKeyConfig)
			if err != nil {
				return err
			}

			asJSON, err := cmd.Flags().GetBool("json")
			if err != nil {
				return err
			}
			versionType, err := cmd.Flags().GetString("type")
			if err != nil {
				return err
			}

			entries, err := newStack(cfg).manifest.Get(cmd.Context())
			if err != nil {
				return err
			}
			if versionType != "" {
				entries = utils.Filter(entries, func(e models.ManifestEntry) bool { return e.Type == versionType })
			}
			if group, _ := cmd.Flags().GetBool("group"); group {
				utils.SortByType(entries, func(e models.ManifestEntry) string { return e.Type })
			}

			if asJSON {
				ids := utils.Map(entries, func(e models.ManifestEntry) string { return e.ID })
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(ids)
			}

			rows := utils.Map(entries, func(e models.ManifestEntry) []string { return []string{e.ID, e.Type} })
			return utils.RenderTable(cmd.OutOrStdout(), []string{"Version", "Type"}, rows)
		},
	}

	cmd.Flags().Bool("json", false, "Print the ids as a JSON array")
	cmd.Flags().StringP("type", "t", "", "Only list one type (release, snapshot, old_beta, old_alpha)")
	cmd.Flags().BoolP("group", "g", false, "Group by type, releases first")
	return cmd
}
