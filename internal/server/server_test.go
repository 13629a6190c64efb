package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/MrSnakeDoc/mcversion/internal/errs"
	"github.com/MrSnakeDoc/mcversion/internal/logger"
	"github.com/MrSnakeDoc/mcversion/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	logger.UseTestMode()
	os.Exit(m.Run())
}

type fakeService struct {
	ids     []string
	listErr error
	records map[string]models.ResolvedVersionRecord
	errors  map[string]error
	asked   []string
}

func (f *fakeService) Versions(context.Context) ([]string, error) {
	return f.ids, f.listErr
}

func (f *fakeService) Resolve(_ context.Context, id string) (models.ResolvedVersionRecord, error) {
	f.asked = append(f.asked, id)
	if err, ok := f.errors[id]; ok {
		return models.ResolvedVersionRecord{}, err
	}
	rec, ok := f.records[id]
	if !ok {
		return models.ResolvedVersionRecord{}, errs.New(errs.VersionNotFound)
	}
	return rec, nil
}

func do(t *testing.T, h http.Handler, path string) (int, []byte) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code, rec.Body.Bytes()
}

func TestVersions(t *testing.T) {
	svc := &fakeService{ids: []string{"1.21", "24w14a"}}
	code, body := do(t, New(svc).Handler(), "/versions")

	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `["1.21","24w14a"]`, string(body))
}

func TestVersions_Empty(t *testing.T) {
	code, body := do(t, New(&fakeService{ids: []string{}}).Handler(), "/versions")

	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `[]`, string(body))
}

func TestVersions_UpstreamFailure(t *testing.T) {
	svc := &fakeService{listErr: errs.Wrap(errs.UpstreamFetch, errors.New("connection refused"), "https://example.test/manifest.json")}
	code, body := do(t, New(svc).Handler(), "/versions")

	assert.Equal(t, http.StatusInternalServerError, code)
	assert.JSONEq(t, `{"error":"failed to fetch https://example.test/manifest.json: connection refused"}`, string(body))
}

func TestVersion_Record(t *testing.T) {
	format := 48
	svc := &fakeService{records: map[string]models.ResolvedVersionRecord{
		"1.21": {
			ID:                   "1.21",
			Type:                 "release",
			JavaVersion:          "21",
			DatapackVersion:      &format,
			ResourcePackVersion:  "34",
			UpdateTitle:          "Tricky Trials",
			ReleaseTime:          "2024-06-13T08:00:00+00:00",
			ReleaseTimeFormatted: "6/13/2024, 8:00:00 AM",
			ClientURL:            "https://example.test/client.jar",
			ServerURL:            "Server jar not available",
			WikiURL:              "https://minecraft.wiki/w/Java_Edition_1.21",
		},
	}}

	code, body := do(t, New(svc).Handler(), "/version/1.21")
	require.Equal(t, http.StatusOK, code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Len(t, got, 11)
	assert.Equal(t, "1.21", got["id"])
	assert.Equal(t, "21", got["java_version"])
	assert.EqualValues(t, 48, got["datapack_version"])
	assert.Equal(t, "34", got["resource_pack_version"])
	assert.Equal(t, "Tricky Trials", got["update_title"])
	assert.Equal(t, "Server jar not available", got["server_url"])
	assert.Equal(t, "https://minecraft.wiki/w/Java_Edition_1.21", got["wikiurl"])
	assert.Equal(t, []string{"1.21"}, svc.asked)
}

func TestVersion_NullDatapack(t *testing.T) {
	svc := &fakeService{records: map[string]models.ResolvedVersionRecord{
		"rd-132211": {ID: "rd-132211", Type: "old_alpha"},
	}}
	code, body := do(t, New(svc).Handler(), "/version/rd-132211")
	require.Equal(t, http.StatusOK, code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(body, &got))
	v, present := got["datapack_version"]
	assert.True(t, present)
	assert.Nil(t, v)
}

func TestVersion_NotFound(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"unknown id", errs.New(errs.VersionNotFound), "Version not found"},
		{"no client jar", errs.New(errs.ClientJarMissing), "Client JAR not available"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{errors: map[string]error{"x": tt.err}}
			code, body := do(t, New(svc).Handler(), "/version/x")

			assert.Equal(t, http.StatusNotFound, code)
			assert.JSONEq(t, fmt.Sprintf(`{"error":%q}`, tt.want), string(body))
		})
	}
}

func TestVersion_InternalError(t *testing.T) {
	svc := &fakeService{errors: map[string]error{
		"1.21": fmt.Errorf("client jar for 1.21: %w", errs.Wrap(errs.MalformedArchive, errors.New("zip: not a valid zip file"))),
	}}
	code, body := do(t, New(svc).Handler(), "/version/1.21")

	assert.Equal(t, http.StatusInternalServerError, code)
	assert.JSONEq(t, `{"error":"client jar for 1.21: invalid client archive: zip: not a valid zip file"}`, string(body))
}

func TestUnknownRoute(t *testing.T) {
	svc := &fakeService{}
	code, _ := do(t, New(svc).Handler(), "/version")
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = do(t, New(svc).Handler(), "/nope")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Empty(t, svc.asked)
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- New(&fakeService{ids: []string{"1.21"}}).Serve(ctx, ln)
	}()

	transport := &http.Transport{}
	client := &http.Client{Transport: transport, Timeout: 5 * time.Second}

	var resp *http.Response
	require.Eventually(t, func() bool {
		resp, err = client.Get("http://" + ln.Addr().String() + "/versions")
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.JSONEq(t, `["1.21"]`, string(body))
	transport.CloseIdleConnections()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("server did not shut down")
	}
}
