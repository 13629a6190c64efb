package internal

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MrSnakeDoc/mcversion/internal/config"
	"github.com/MrSnakeDoc/mcversion/internal/logger"
	"github.com/MrSnakeDoc/mcversion/internal/middleware"
	"github.com/MrSnakeDoc/mcversion/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.UseTestMode()
	os.Exit(m.Run())
}

func clientJar(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("pack.mcmeta")
	require.NoError(t, err)
	_, err = w.Write([]byte(`{"pack":{"pack_format":48}}`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// setupUpstream serves a manifest, one detail document, a jar and a wiki
// page over TLS, and points the command config at it.
func setupUpstream(t *testing.T) *httptest.Server {
	t.Helper()
	jar := clientJar(t)

	var srv *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/manifest.json", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `{"versions":[
			{"id":"1.21","type":"release","url":"%[1]s/v/1.21.json"},
			{"id":"24w14a","type":"snapshot","url":"%[1]s/v/24w14a.json"}
		]}`, srv.URL)
	})
	mux.HandleFunc("/v/1.21.json", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `{"javaVersion":{"majorVersion":21},
			"downloads":{"client":{"url":"%[1]s/client.jar"}},
			"releaseTime":"2024-06-13T08:00:00+00:00"}`, srv.URL)
	})
	mux.HandleFunc("/client.jar", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(jar)
	})
	mux.HandleFunc("/wiki/Java_Edition_1.21", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<table><tr><th>Official name</th><td>Tricky Trials</td></tr>
			<tr><th>Resource pack format</th><td><p>34</p></td></tr></table>`))
	})
	srv = httptest.NewTLSServer(mux)
	t.Cleanup(srv.Close)

	prev := newHTTPClient
	newHTTPClient = func(config.Config) service.HTTPClient { return srv.Client() }
	t.Cleanup(func() { newHTTPClient = prev })

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	t.Setenv("MCVERSION_MANIFEST_URL", srv.URL+"/manifest.json")
	t.Setenv("MCVERSION_WIKI_URL_TEMPLATE", srv.URL+"/wiki/Java_Edition_%s")
	t.Setenv("MCVERSION_TIME_LOCATION", "UTC")
	t.Chdir(t.TempDir())
	return srv
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"-s"}, args...))
	_, err := root.ExecuteC()
	return out.String(), err
}

func TestVersionCmd(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "mcversion - Minecraft version metadata service")
}

func TestListCmd_JSON(t *testing.T) {
	setupUpstream(t)

	out, err := run(t, "list", "--json")
	require.NoError(t, err)

	var ids []string
	require.NoError(t, json.Unmarshal([]byte(out), &ids))
	assert.Equal(t, []string{"1.21", "24w14a"}, ids)
}

func TestListCmd_TableFilteredByType(t *testing.T) {
	setupUpstream(t)

	out, err := run(t, "list", "--type", "snapshot")
	require.NoError(t, err)
	assert.Contains(t, out, "24w14a")
	assert.NotContains(t, out, "1.21 ")
}

func TestShowCmd_JSON(t *testing.T) {
	srv := setupUpstream(t)

	out, err := run(t, "show", "1.21", "--json")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "Tricky Trials", got["update_title"])
	assert.Equal(t, "34", got["resource_pack_version"])
	assert.EqualValues(t, 48, got["datapack_version"])
	assert.Equal(t, "6/13/2024, 8:00:00 AM", got["release_time_formatted"])
	assert.Equal(t, srv.URL+"/wiki/Java_Edition_1.21", got["wikiurl"])
}

func TestShowCmd_Table(t *testing.T) {
	setupUpstream(t)

	out, err := run(t, "show", "1.21")
	require.NoError(t, err)
	assert.Contains(t, out, "Tricky Trials")
	assert.Contains(t, out, "Server jar not available")
}

func TestShowCmd_UnknownVersion(t *testing.T) {
	setupUpstream(t)

	_, err := run(t, "show", "9.99")
	require.Error(t, err)
	assert.Equal(t, "Version not found", err.Error())
}

func TestCmd_FlagValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"show --json with --table", []string{"show", "1.21", "--json", "--table"}},
		{"--quiet with --verbose", []string{"version", "-q", "-V"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			require.Error(t, err)
			assert.ErrorIs(t, err, middleware.ErrLogged)
		})
	}
}

func TestWatchCmd_Once(t *testing.T) {
	setupUpstream(t)

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/versions":
			_, _ = w.Write([]byte(`["1.21","1.21.1"]`))
		case "/version/1.21.1":
			_, _ = w.Write([]byte(`{"id":"1.21.1","type":"release"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer api.Close()

	state := filepath.Join(t.TempDir(), "known.txt")
	require.NoError(t, os.WriteFile(state, []byte("1.21\n"), 0o644))
	t.Setenv("MCVERSION_WATCH_STATE_FILE", state)

	out, err := run(t, "watch", "--once", "--server", api.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "1.21.1")
	assert.Contains(t, out, "minecraft-java-edition-1-21-1")

	data, err := os.ReadFile(state)
	require.NoError(t, err)
	assert.Equal(t, []string{"1.21", "1.21.1"}, strings.Fields(string(data)))
}
