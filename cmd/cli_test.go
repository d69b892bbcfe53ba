package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testUsername = "tony@stark.com"
	testPassword = "jarvis"
)

type fakeBackends struct {
	identity *httptest.Server
	catalog  *httptest.Server

	mu      sync.Mutex
	queries []string
	roles   []string
	fail    bool
}

func newFakeBackends(t *testing.T, roles ...string) *fakeBackends {
	t.Helper()

	b := &fakeBackends{roles: roles}
	b.identity = httptest.NewServer(http.HandlerFunc(b.serveIdentity))
	b.catalog = httptest.NewServer(http.HandlerFunc(b.serveCatalog))
	t.Cleanup(b.identity.Close)
	t.Cleanup(b.catalog.Close)
	return b
}

func (b *fakeBackends) serveIdentity(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	switch r.URL.Path {
	case "/oauth/token":
		if err := r.ParseForm(); err != nil || r.PostForm.Get("password") != testPassword {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"Wrong email or password."}`))
			return
		}

		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub":   "auth0|42",
			"exp":   time.Now().Add(time.Hour).Unix(),
			"roles": b.roles,
		}).SignedString([]byte("identity-test-key"))
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"access_token": token, "token_type": "Bearer", "expires_in": 3600})
	case "/userinfo":
		if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"sub":"auth0|42","name":"Tony Stark","nickname":"ironman","email":"tony@stark.com","email_verified":true}`))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (b *fakeBackends) serveCatalog(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.queries = append(b.queries, r.URL.Path+"?"+r.URL.RawQuery)
	fail := b.fail
	b.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if fail {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"code":500,"status":"Internal Server Error"}`))
		return
	}

	switch r.URL.Path {
	case "/characters":
		_, _ = w.Write([]byte(`{"code":200,"status":"Ok","data":{"offset":0,"limit":20,"total":2,"count":2,"results":[
			{"id":1009610,"name":"Spider-Man","comics":{"available":4000}},
			{"id":1009609,"name":"Spider-Girl (May Parker)","comics":{"available":120}}
		]}}`))
	case "/series":
		_, _ = w.Write([]byte(`{"code":200,"status":"Ok","data":{"offset":0,"limit":20,"total":1,"count":1,"results":[
			{"id":354,"title":"Avengers (1963 - 1996)","startYear":1963,"endYear":1996}
		]}}`))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (b *fakeBackends) failRequests() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.fail = true
}

func (b *fakeBackends) catalogQueries() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.queries...)
}

func writeConfigFixture(t *testing.T, home string, b *fakeBackends) {
	t.Helper()

	configDir := filepath.Join(home, ".marvel-dashboard")
	require.NoError(t, os.MkdirAll(configDir, 0o700))

	cfg := fmt.Sprintf(`[auth]
domain = %q
client_id = "cli-test"
secret_key = "test-secret-key"

[catalog]
base_url = %q
public_key = "public"
private_key = "private"

[crypto]
memory = 8192
iterations = 1
parallelism = 1

[log]
level = "error"
`, b.identity.URL, b.catalog.URL)

	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(cfg), 0o600))
}

func setupCLI(t *testing.T, roles ...string) (string, *fakeBackends) {
	t.Helper()

	home := t.TempDir()
	backends := newFakeBackends(t, roles...)
	writeConfigFixture(t, home, backends)
	return home, backends
}

func login(t *testing.T, home string) {
	t.Helper()

	stdout, _, err := executeCLIWithInput(t, home, testPassword+"\n", "login", "--username", testUsername, "--password-stdin")
	require.NoError(t, err)
	require.Contains(t, stdout, "Logged in as "+testUsername)
}

func TestVersionCommandNeedsNoConfig(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", stdout)
}

func TestMissingAuthConfigIsReported(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "characters")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "auth.domain is required")
	assert.Contains(t, err.Error(), "auth.secret_key is required")
}

func TestProtectedCommandsRequireLogin(t *testing.T) {
	home, backends := setupCLI(t)

	for _, command := range []string{"characters", "series", "user", "logs", "admin", "dashboard"} {
		_, _, err := executeCLI(t, home, command)
		require.Error(t, err, command)
		assert.Contains(t, err.Error(), `not authenticated: run "marvel login" first`, command)
	}
	assert.Empty(t, backends.catalogQueries())
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	home, _ := setupCLI(t)

	_, _, err := executeCLIWithInput(t, home, "wrong\n", "login", "--username", testUsername, "--password-stdin")
	require.Error(t, err)
	assert.Equal(t, "login failed: Wrong email or password.", err.Error())

	_, _, err = executeCLI(t, home, "characters")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not authenticated")
}

func TestLoginStoresEncryptedToken(t *testing.T) {
	home, _ := setupCLI(t)
	login(t, home)

	raw, err := os.ReadFile(filepath.Join(home, ".marvel-dashboard", "storage.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "auth_token")
	assert.Contains(t, string(raw), "xc1.")
}

func TestLoginWhenAlreadyLoggedIn(t *testing.T) {
	home, _ := setupCLI(t)
	login(t, home)

	_, _, err := executeCLIWithInput(t, home, testPassword+"\n", "login", "--username", testUsername, "--password-stdin")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already logged in")
}

func TestLoginRequiresPassword(t *testing.T) {
	home, _ := setupCLI(t)

	_, _, err := executeCLIWithInput(t, home, "\n", "login", "--username", testUsername, "--password-stdin")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email and password are required")
}

func TestCharactersListing(t *testing.T) {
	home, backends := setupCLI(t)
	login(t, home)

	stdout, _, err := executeCLI(t, home, "characters", "--search", "Spider", "--page-size", "10", "--page", "2")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Spider-Man")
	assert.Contains(t, stdout, "search: Spider")

	queries := backends.catalogQueries()
	require.Len(t, queries, 1)
	assert.True(t, strings.HasPrefix(queries[0], "/characters?"))
	assert.Contains(t, queries[0], "nameStartsWith=Spider")
	assert.Contains(t, queries[0], "offset=10")
	assert.Contains(t, queries[0], "limit=10")
	assert.Contains(t, queries[0], "apikey=public")
}

func TestSeriesListingJSON(t *testing.T) {
	home, backends := setupCLI(t)
	login(t, home)

	stdout, _, err := executeCLI(t, home, "series", "--json")
	require.NoError(t, err)

	var out struct {
		Collection string `json:"collection"`
		Page       int    `json:"page"`
		Total      int    `json:"total"`
		Results    []struct {
			Title string `json:"title"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, "series", out.Collection)
	assert.Equal(t, 1, out.Page)
	assert.Equal(t, 1, out.Total)
	require.Len(t, out.Results, 1)
	assert.Equal(t, "Avengers (1963 - 1996)", out.Results[0].Title)

	queries := backends.catalogQueries()
	require.Len(t, queries, 1)
	assert.NotContains(t, queries[0], "titleStartsWith")
}

func TestListingRejectsInvalidPage(t *testing.T) {
	home, backends := setupCLI(t)
	login(t, home)

	_, _, err := executeCLI(t, home, "characters", "--page", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page must be at least 1")

	_, _, err = executeCLI(t, home, "series", "--page-size", "101")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page size must be between 1 and 100")

	_, _, err = executeCLI(t, home, "characters", "--page", "9223372036854775807")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page is out of range")
	assert.Empty(t, backends.catalogQueries())
}

func TestListingReportsFetchError(t *testing.T) {
	home, backends := setupCLI(t)
	login(t, home)
	backends.failRequests()

	_, _, err := executeCLI(t, home, "characters")
	require.Error(t, err)
	assert.Equal(t, "Error fetching characters", err.Error())
}

func TestAdminRequiresRole(t *testing.T) {
	home, _ := setupCLI(t, "viewer")
	login(t, home)

	_, _, err := executeCLI(t, home, "admin")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `missing required role "admin"`)
}

func TestAdminWithRole(t *testing.T) {
	home, _ := setupCLI(t, "admin")
	login(t, home)

	stdout, _, err := executeCLI(t, home, "admin")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Signed in with roles: admin")
}

func TestUserProfileJSON(t *testing.T) {
	home, _ := setupCLI(t, "admin")
	login(t, home)

	stdout, _, err := executeCLI(t, home, "user", "--json")
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, "Tony Stark", out["name"])
	assert.Equal(t, []any{"admin"}, out["roles"])
}

func TestLogsRecordSessionEvents(t *testing.T) {
	home, _ := setupCLI(t)
	login(t, home)

	stdout, _, err := executeCLI(t, home, "logs", "--json")
	require.NoError(t, err)
	assert.Contains(t, stdout, "User logged in")
	assert.Contains(t, stdout, testUsername)

	stdout, _, err = executeCLI(t, home, "logs", "--clear")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Cleared application logs")

	stdout, _, err = executeCLI(t, home, "logs")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No log entries.")
}

func TestLogoutRemovesSession(t *testing.T) {
	home, _ := setupCLI(t)
	login(t, home)

	stdout, _, err := executeCLI(t, home, "logout")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Logged out")

	_, _, err = executeCLI(t, home, "user")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not authenticated")

	raw, err := os.ReadFile(filepath.Join(home, ".marvel-dashboard", "storage.toml"))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "auth_token")
	assert.Contains(t, string(raw), "User logged out")
}

func TestDashboardRejectsUnknownTab(t *testing.T) {
	home, _ := setupCLI(t)
	login(t, home)

	_, _, err := executeCLI(t, home, "dashboard", "--tab", "comics")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported collection")
}

func TestUnknownCommand(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "status")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command \"status\"")
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	return executeCLIWithInput(t, home, "", args...)
}

func executeCLIWithInput(t *testing.T, home string, input string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetIn(strings.NewReader(input))
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}
