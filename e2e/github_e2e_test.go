package e2e

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MyCarrier-DevOps/go-flowconfig/pkg/sdk"
)

// ghMock is a mock GitHub contents API serving one repository. Files are
// registered per ref; the empty ref is the default branch.
type ghMock struct {
	mux      *http.ServeMux
	owner    string
	repo     string
	mu       sync.Mutex
	files    map[string]map[string]string // ref → path → content
	requests []string
}

func newGHMock(owner, repo string) *ghMock {
	m := &ghMock{
		mux:   http.NewServeMux(),
		owner: owner,
		repo:  repo,
		files: make(map[string]map[string]string),
	}
	m.register()
	return m
}

func (m *ghMock) addFile(ref, path, content string) {
	if m.files[ref] == nil {
		m.files[ref] = make(map[string]string)
	}
	m.files[ref][path] = content
}

func (m *ghMock) register() {
	prefix := "/api/v3/repos/" + m.owner + "/" + m.repo + "/contents/"

	// GET /api/v3/repos/{owner}/{repo}/contents/{path}?ref={ref}
	m.mux.HandleFunc(prefix, func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, prefix)
		ref := r.URL.Query().Get("ref")

		m.mu.Lock()
		m.requests = append(m.requests, ref+":"+path)
		m.mu.Unlock()

		if r.Header.Get("Authorization") != "Bearer ghp_e2e" {
			writeGHError(w, http.StatusUnauthorized, "Bad credentials")
			return
		}

		content, ok := m.files[ref][path]
		if !ok {
			writeGHError(w, http.StatusNotFound, "Not Found")
			return
		}
		writeGHJSON(w, map[string]any{
			"type":     "file",
			"name":     path[strings.LastIndex(path, "/")+1:],
			"path":     path,
			"encoding": "base64",
			"content":  base64.StdEncoding.EncodeToString([]byte(content)),
		})
	})
}

func writeGHJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeGHError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}

func newGitHubClient(t *testing.T, m *ghMock, opts sdk.Options) *sdk.Client {
	t.Helper()
	server := httptest.NewServer(m.mux)
	t.Cleanup(server.Close)

	opts.Owner = m.owner
	opts.Repo = m.repo
	opts.Token = "ghp_e2e"
	opts.BaseURL = server.URL + "/"
	client, err := sdk.New(context.Background(), opts)
	require.NoError(t, err)
	return client
}

func TestGitHub_BranchesMatchLocalDigest(t *testing.T) {
	m := newGHMock("acme", "platform")
	m.addFile("develop", ".flowconfig/config.yml", reformatted)
	m.addFile("release/2.1", ".flowconfig/config.yml", monorepoDoc)
	client := newGitHubClient(t, m, sdk.Options{})
	ctx := context.Background()

	want, err := sdk.LoadBytes([]byte(monorepoDoc))
	require.NoError(t, err)
	wantDigest, err := sdk.Hash(want, sdk.HashOptions{})
	require.NoError(t, err)

	for _, branch := range []string{"develop", "release/2.1"} {
		t.Run(branch, func(t *testing.T) {
			cfg, err := client.Load(ctx, "branch://"+branch)
			require.NoError(t, err)
			got, err := sdk.Hash(cfg, sdk.HashOptions{})
			require.NoError(t, err)
			require.Equal(t, wantDigest, got)
		})
	}
}

func TestGitHub_CustomFileAndDefaultBranch(t *testing.T) {
	m := newGHMock("acme", "platform")
	m.addFile("main", "deploy/flow.yml", "identifier: on-main\n")
	client := newGitHubClient(t, m, sdk.Options{File: "deploy/flow.yml"})
	ctx := context.Background()

	cfg, err := client.Load(ctx, "branch://main")
	require.NoError(t, err)
	require.Equal(t, "on-main", cfg.Identifier)

	_, err = client.Load(ctx, "branch://develop")
	require.ErrorIs(t, err, sdk.ErrNotFound)
}

func TestGitHub_CacheAvoidsRepeatRequests(t *testing.T) {
	m := newGHMock("acme", "platform")
	m.addFile("develop", ".flowconfig/config.yml", monorepoDoc)
	client := newGitHubClient(t, m, sdk.Options{CacheTTL: time.Minute})
	ctx := context.Background()

	for range 5 {
		_, err := client.Load(ctx, "branch://develop")
		require.NoError(t, err)
	}
	require.Equal(t, []string{"develop:.flowconfig/config.yml"}, m.requests)
}

func TestGitHub_InvalidDocument(t *testing.T) {
	m := newGHMock("acme", "platform")
	m.addFile("develop", ".flowconfig/config.yml", "identifier: broken\nsubmodules:\n  - name: api\n    config:\n      identifier: api\n")
	client := newGitHubClient(t, m, sdk.Options{})

	_, err := client.Load(context.Background(), "branch://develop")
	var verr *sdk.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "submodules[0].path", verr.Path)
}
