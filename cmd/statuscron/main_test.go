package main

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtlprog/statuscron/internal/task"
)

// unsetEnv removes key for the duration of the test.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	err := app.Run(append([]string{"statuscron", "--log-level", "error"}, args...))
	return out.String(), err
}

func TestRunTask_DefaultsFromUnsetEnv(t *testing.T) {
	unsetEnv(t, "APP_ENV")
	unsetEnv(t, "DATABASE_PASSWORD")
	logPath := filepath.Join(t.TempDir(), "cronjob.log")
	t.Setenv("TASK_LOG_FILE", logPath)

	out, err := runApp(t, "run-task")
	require.NoError(t, err)

	assert.Contains(t, out, "Running periodic task in development environment")
	assert.Contains(t, out, "Using database password: not***")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(data), "] Task ran in development environment\n"))
}

func TestRunTask_ReadsEnv(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "cronjob.log")
	t.Setenv("APP_ENV", "staging")
	t.Setenv("DATABASE_PASSWORD", "abcdef")
	t.Setenv("TASK_LOG_FILE", logPath)

	out, err := runApp(t, "run-task")
	require.NoError(t, err)
	_, err = runApp(t, "run-task")
	require.NoError(t, err)

	assert.Contains(t, out, "abc***")
	assert.NotContains(t, out, "abcdef")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.Contains(t, line, "Task ran in staging environment")
	}
}

func TestRunTask_UnwritableLogFails(t *testing.T) {
	t.Setenv("TASK_LOG_FILE", filepath.Join(t.TempDir(), "missing", "cronjob.log"))

	_, err := runApp(t, "run-task")

	require.Error(t, err)
	assert.ErrorIs(t, err, task.ErrIOFailure)
}

func TestManifests(t *testing.T) {
	unsetEnv(t, "APP_ENV")
	unsetEnv(t, "DATABASE_PASSWORD")

	out, err := runApp(t, "manifests", "--image", "statuscron:dev", "--namespace", "demo", "--schedule", "0 * * * *")
	require.NoError(t, err)

	assert.Equal(t, 4, strings.Count(out, "---\n"))
	assert.Contains(t, out, "kind: CronJob")
	assert.Contains(t, out, "0 * * * *")
	assert.Contains(t, out, "namespace: demo")
	assert.Contains(t, out, "APP_ENV: development")
}

func TestManifests_RequiresImage(t *testing.T) {
	_, err := runApp(t, "manifests")
	assert.ErrorContains(t, err, "image")
}

func TestManifests_PasswordNotReadFromEnv(t *testing.T) {
	t.Setenv("DATABASE_PASSWORD", "hunter2-from-shell")

	out, err := runApp(t, "manifests", "--image", "statuscron:dev")
	require.NoError(t, err)

	assert.NotContains(t, out, "hunter2-from-shell")
	assert.Contains(t, out, "DATABASE_PASSWORD: not-set")
}

func freePort(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	_, port, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)
	require.NoError(t, ln.Close())
	return port
}

func TestServe_HostAndPortFromEnv(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "bare command", args: nil},
		{name: "serve subcommand", args: []string{"serve"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			port := freePort(t)
			t.Setenv("HOST", "127.0.0.1")
			t.Setenv("PORT", port)

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			app := newApp()
			app.Writer = io.Discard
			done := make(chan error, 1)
			go func() {
				done <- app.RunContext(ctx, append([]string{"statuscron", "--log-level", "error"}, tt.args...))
			}()

			url := "http://127.0.0.1:" + port + "/ready"
			var body string
			require.Eventually(t, func() bool {
				resp, err := http.Get(url)
				if err != nil {
					return false
				}
				defer resp.Body.Close()
				data, err := io.ReadAll(resp.Body)
				if err != nil || resp.StatusCode != http.StatusOK {
					return false
				}
				body = string(data)
				return true
			}, 5*time.Second, 20*time.Millisecond)
			assert.Equal(t, `{"status":"ready"}`, body)

			cancel()
			select {
			case err := <-done:
				assert.NoError(t, err)
			case <-time.After(5 * time.Second):
				t.Fatal("server did not shut down")
			}
		})
	}
}
