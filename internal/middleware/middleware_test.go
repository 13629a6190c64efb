package middleware

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/MrSnakeDoc/mcversion/internal/config"
	"github.com/MrSnakeDoc/mcversion/internal/logger"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.UseTestMode()
	os.Exit(m.Run())
}

func newCmd(run func(cmd *cobra.Command) error) CommandFactory {
	return func() *cobra.Command {
		cmd := &cobra.Command{
			Use: "probe",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return run(cmd)
			},
		}
		cmd.Flags().String("config", "", "")
		cmd.Flags().Bool("json", false, "")
		cmd.Flags().Bool("table", false, "")
		return cmd
	}
}

func TestUseMiddlewareChain_Order(t *testing.T) {
	var trace []string
	mw := func(name string) MiddlewareFunc {
		return func(cmd *cobra.Command, args []string, next func(*cobra.Command, []string) error) error {
			trace = append(trace, name)
			return next(cmd, args)
		}
	}

	factory := UseMiddlewareChain(mw("a"), mw("b"))(newCmd(func(*cobra.Command) error {
		trace = append(trace, "run")
		return nil
	}))

	cmd := factory()
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, []string{"a", "b", "run"}, trace)
}

func TestLoadConfig_StoresConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("listen: \":9999\"\nrequest_timeout: 5s\n"), 0o644))

	var got config.Config
	factory := UseMiddlewareChain(LoadConfig)(newCmd(func(cmd *cobra.Command) error {
		var err error
		got, err = Get[config.Config](cmd, CtxKeyConfig)
		return err
	}))

	cmd := factory()
	cmd.SetArgs([]string{"--config", path})
	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.Equal(t, ":9999", got.Listen)
	assert.Equal(t, 5*time.Second, got.RequestTimeout)
}

func TestLoadConfig_ExplicitPathMustExist(t *testing.T) {
	t.Chdir(t.TempDir())

	factory := UseMiddlewareChain(LoadConfig)(newCmd(func(*cobra.Command) error {
		t.Error("command must not run")
		return nil
	}))
	cmd := factory()
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.yml")})
	assert.Error(t, cmd.Execute())
}

func TestLoadConfig_DefaultPathOptional(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	var got config.Config
	factory := UseMiddlewareChain(LoadConfig)(newCmd(func(cmd *cobra.Command) error {
		var err error
		got, err = Get[config.Config](cmd, CtxKeyConfig)
		return err
	}))
	cmd := factory()
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, config.Default().ManifestURL, got.ManifestURL)
}

func TestExclusiveFlags(t *testing.T) {
	factory := UseMiddlewareChain(ExclusiveFlags("json", "table"))(newCmd(func(*cobra.Command) error {
		return nil
	}))

	cmd := factory()
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.SetArgs([]string{"--json", "--table"})
	assert.ErrorIs(t, cmd.Execute(), ErrLogged)

	cmd = factory()
	cmd.SetArgs([]string{"--json"})
	assert.NoError(t, cmd.Execute())
}

func TestGet_Errors(t *testing.T) {
	cmd := &cobra.Command{}
	_, err := Get[config.Config](cmd, CtxKeyConfig)
	assert.Error(t, err)

	cmd.SetContext(context.WithValue(context.Background(), CtxKeyConfig, "not a config"))
	_, err = Get[config.Config](cmd, CtxKeyConfig)
	assert.ErrorContains(t, err, "wrong type")
}
