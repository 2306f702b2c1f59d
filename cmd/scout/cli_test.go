package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/startupscout/showcase/internal/core/domain"
	"github.com/startupscout/showcase/internal/infrastructure/credentials"
	"github.com/startupscout/showcase/internal/pkg/config"
	"github.com/startupscout/showcase/pkg/logger"
)

type cliEnv struct {
	credFile string
}

// setupCLI starts a reference backend and points the CLI at it.
func setupCLI(t *testing.T) *cliEnv {
	t.Helper()
	credFile := filepath.Join(t.TempDir(), "credentials.json")
	t.Setenv("SCOUT_ENV", "test")
	t.Setenv("SCOUT_LOG_LEVEL", "off")
	t.Setenv("SCOUT_CREDENTIAL_STORE", "file")
	t.Setenv("SCOUT_CREDENTIAL_FILE", credFile)
	t.Setenv("SCOUT_DEVSERVER_JWT_SECRET", "cli-secret")

	t.Cleanup(logger.Reset)

	var err error
	cfg, err = config.Load(context.Background())
	require.NoError(t, err)

	srv := httptest.NewServer(newDevserver())
	t.Cleanup(srv.Close)
	t.Setenv("SCOUT_API_BASE_URL", srv.URL)

	return &cliEnv{credFile: credFile}
}

// scout runs one command line and returns its stdout.
func scout(t *testing.T, args ...string) (string, error) {
	t.Helper()

	apiURL, logLevel, jsonOutput = "", "", false
	authEmail, authPassword, authUsername = "", "", ""
	newProject = domain.ProjectCreateRequest{}
	profileEdit = domain.ProfileUpdate{}
	avatarFromFile = ""

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func mustScout(t *testing.T, args ...string) string {
	t.Helper()
	out, err := scout(t, args...)
	require.NoError(t, err, "scout %s", strings.Join(args, " "))
	return out
}

func TestCLI_EndToEnd(t *testing.T) {
	setupCLI(t)

	out := mustScout(t, "register", "--email", "ana@example.com", "--username", "ana", "--password", "secret1")
	assert.Contains(t, out, "Welcome, ana")

	out = mustScout(t, "whoami")
	assert.Contains(t, out, "ana@example.com")
	assert.Contains(t, out, "session expires in")

	out = mustScout(t, "--json", "projects", "create",
		"--name", "Rocket", "--description", "short", "--full-description", "long", "--creator", "ana")
	var project domain.Project
	require.NoError(t, json.Unmarshal([]byte(out), &project), out)
	require.NotEmpty(t, project.ID)

	out = mustScout(t, "vote", project.ID)
	assert.Contains(t, out, project.ID+": liked (likes 1)")

	out = mustScout(t, "toggle", project.ID)
	assert.Contains(t, out, project.ID+": not liked (likes 0)")

	out, err := scout(t, "vote", project.ID, "missing")
	require.Error(t, err)
	assert.Contains(t, out, project.ID+": liked (likes 1)")
	assert.Contains(t, out, "missing: failed: project not found")

	out = mustScout(t, "comments", "add", project.ID, "hello", "world")
	assert.Contains(t, out, "posted")

	out = mustScout(t, "projects", "show", project.ID)
	assert.Contains(t, out, "Rocket")
	assert.Contains(t, out, "hello world")

	out = mustScout(t, "projects", "mine")
	assert.Contains(t, out, project.ID)

	out = mustScout(t, "--json", "stats")
	assert.JSONEq(t, `{"user_count":1,"project_count":1}`, out)

	out = mustScout(t, "profile", "update", "--first-name", "Ana", "--last-name", "Lopez")
	assert.Contains(t, out, "Ana Lopez")

	mustScout(t, "logout")
	out = mustScout(t, "whoami")
	assert.Contains(t, out, "Not logged in")

	_, err = scout(t, "vote", project.ID)
	assert.ErrorIs(t, err, domain.ErrAuth)
}

func TestCLI_LoginReadsPasswordFromStdin(t *testing.T) {
	setupCLI(t)
	mustScout(t, "register", "--email", "ana@example.com", "--username", "ana", "--password", "secret1")
	mustScout(t, "logout")

	apiURL, jsonOutput = "", false
	authEmail, authPassword = "", ""
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetIn(strings.NewReader("secret1\n"))
	rootCmd.SetArgs([]string{"login", "--email", "ana@example.com"})
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), "Logged in as ana")
}

func TestCLI_WrongPassword(t *testing.T) {
	setupCLI(t)
	mustScout(t, "register", "--email", "ana@example.com", "--username", "ana", "--password", "secret1")

	_, err := scout(t, "login", "--email", "ana@example.com", "--password", "wrong1")
	require.Error(t, err)
	assert.Equal(t, domain.KindAuth, domain.KindOf(err))
	assert.Contains(t, userMessage(err), "invalid credentials")
}

func TestCLI_StaleCredentialIsDropped(t *testing.T) {
	env := setupCLI(t)
	mustScout(t, "register", "--email", "ana@example.com", "--username", "ana", "--password", "secret1")

	store := credentials.NewFileStore(env.credFile)
	cred, err := store.Load(context.Background())
	require.NoError(t, err)
	cred.IssuedAt = time.Now().Add(-25 * time.Hour)
	require.NoError(t, store.Save(context.Background(), *cred))

	out := mustScout(t, "whoami")
	assert.Contains(t, out, "Not logged in")

	_, err = store.Load(context.Background())
	assert.Error(t, err, "stale credential should have been cleared")
}
