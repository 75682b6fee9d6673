package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const listConfig = `
mqtt:
  url: tcp://localhost:1883
  topics:
    stream: strip
strip:
  pixels: 30
animations:
  glow:
    from: {opacity: 0.2}
    to: {opacity: 1}
elements:
  - name: a
    length: 5
    color: "#ffffff"
    playlist:
      - animation: glow
`

func executeListCommand(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"list"}, args...))
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestListCommandWithoutConfig(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "none.yaml")
	out := executeListCommand(t, "--config", missing)
	require.Contains(t, out, "Attention Seekers")
	require.Contains(t, out, "bounceIn")
	require.NotContains(t, out, "Custom")
}

func TestListCommandJSONIncludesCustomAnimations(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(listConfig), 0o600))

	out := executeListCommand(t, "--config", path, "--json")
	var groups []listGroup
	require.NoError(t, json.Unmarshal([]byte(out), &groups))
	require.Len(t, groups, 12)
	last := groups[len(groups)-1]
	require.Equal(t, "Custom", last.Title)
	require.Equal(t, []string{"glow"}, last.Names)
}

func TestListCommandRejectsInvalidConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("strip: {pixels: 0}\n"), 0o600))

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"list", "--config", path})
	require.Error(t, cmd.Execute())
}

func TestMqttOptions(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(listConfig), 0o600))
	rt, err := loadRuntime(&rootFlags{configPath: path, logLevel: "error"})
	require.NoError(t, err)

	opts := mqttOptions(rt.cfg, nil, nil)
	require.Len(t, opts.Servers, 1)
	require.Equal(t, "localhost:1883", opts.Servers[0].Host)
	require.Equal(t, "animatable", opts.ClientID)
	require.Equal(t, rt.cfg.Mqtt.KeepAlive.Seconds(), float64(opts.KeepAlive))
}
