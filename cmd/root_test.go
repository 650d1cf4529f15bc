package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/philipparndt/draglabel/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type hostCall struct {
	conf *config.Config
	opts RunOptions
}

func execute(t *testing.T, args ...string) (*hostCall, string, error) {
	t.Helper()
	var call *hostCall
	rootCmd := NewRootCommand("draglabel", func(conf *config.Config, opts RunOptions) error {
		call = &hostCall{conf: conf, opts: opts}
		return nil
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return call, out.String(), err
}

func TestRootRunsHostWithDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	call, _, err := execute(t, "--config", path)

	require.NoError(t, err)
	require.NotNil(t, call)
	assert.Equal(t, config.Default(), call.conf)
	assert.Equal(t, RunOptions{ConfigPath: path}, call.opts)
}

func TestRootOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`text = "From file"
text_color = "#112233"
`), 0644))

	call, _, err := execute(t, "--config", path, "--watch", "--background", "#445566", "--debug", "Hello")

	require.NoError(t, err)
	assert.Equal(t, "Hello", call.conf.Text)
	assert.Equal(t, "#112233", call.conf.TextColor)
	assert.Equal(t, "#445566", call.conf.BackgroundColor)
	assert.True(t, call.conf.Debug)
	assert.True(t, call.opts.Watch)
}

func TestRootRejectsInvalidColor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	call, _, err := execute(t, "--config", path, "--text-color", "red")

	assert.Error(t, err)
	assert.Nil(t, call)
}

func TestRootRejectsExtraArgs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	call, _, err := execute(t, "--config", path, "one", "two")

	assert.Error(t, err)
	assert.Nil(t, call)
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	_, out, err := execute(t, "config", "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)

	conf, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), conf)

	_, out, err = execute(t, "config", "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "already exists")
}

func TestConfigPath(t *testing.T) {
	_, out, err := execute(t, "config", "path", "--config", "/tmp/custom.toml")

	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.toml\n", out)
}

func TestVersion(t *testing.T) {
	call, out, err := execute(t, "version")

	require.NoError(t, err)
	assert.Nil(t, call)
	assert.Equal(t, "draglabel dev\n", out)
}
