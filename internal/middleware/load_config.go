package middleware

import (
	"context"

	"github.com/MrSnakeDoc/mcversion/internal/config"
	"github.com/MrSnakeDoc/mcversion/internal/errs"
	"github.com/MrSnakeDoc/mcversion/internal/globalconfig"
	"github.com/MrSnakeDoc/mcversion/internal/utils/pathutils"
	"github.com/spf13/cobra"
)

// LoadConfig resolves the effective configuration once and stores it in the
// command context under CtxKeyConfig. An explicit --config must exist; the
// default location is optional.
func LoadConfig(cmd *cobra.Command, args []string, next func(cmd *cobra.Command, args []string) error) error {
	path, _ := cmd.Flags().GetString("config")
	required := path != ""
	if required {
		p, err := pathutils.ExpandHome(path)
		if err != nil {
			return err
		}
		path = p
	} else {
		p, err := globalconfig.DefaultConfigPath()
		if err != nil {
			return err
		}
		path = p
	}

	cfg, err := config.Load(path, required)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, CtxKeyConfig, cfg))

	return next(cmd, args)
}

// ExclusiveFlags rejects commands where more than one of names is set.
func ExclusiveFlags(names ...string) MiddlewareFunc {
	return func(cmd *cobra.Command, args []string, next func(cmd *cobra.Command, args []string) error) error {
		var set []string
		for _, n := range names {
			if f := cmd.Flags().Lookup(n); f != nil && f.Changed {
				set = append(set, "--"+n)
			}
		}
		if len(set) > 1 {
			return FlagComboError(errs.FlagConflict, set[0], set[1])
		}
		return next(cmd, args)
	}
}
