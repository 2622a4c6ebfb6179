package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeJSONConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

// ── NetAddress ────────────────────────────────────────────────────────────────

func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    NetAddress
		wantErr bool
	}{
		{name: "localhost", input: "localhost:8080", want: NetAddress{Host: "localhost", Port: 8080}},
		{name: "ipv4", input: "127.0.0.1:9090", want: NetAddress{Host: "127.0.0.1", Port: 9090}},
		{name: "any interface", input: ":8080", want: NetAddress{Port: 8080}},
		{name: "missing colon", input: "localhost8080", wantErr: true},
		{name: "bad port", input: "localhost:http", wantErr: true},
		{name: "port out of range", input: "localhost:70000", wantErr: true},
		{name: "hostname", input: "example.com:80", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a NetAddress
			err := a.Set(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, a)
			assert.Equal(t, tt.input, a.String())
		})
	}

	assert.Equal(t, "", (&NetAddress{}).String())
}

// ── sources ───────────────────────────────────────────────────────────────────

func TestParseFlags(t *testing.T) {
	cfg, err := parseFlags([]string{
		"-a", "localhost:8080",
		"-grpc-address", "127.0.0.1:9090",
		"-d", "postgres://u:p@localhost/db",
		"-token", "tok",
		"-transport", "grpc",
		"-remember-key",
		"-token-duration", "2h",
	})
	require.NoError(t, err)

	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, "127.0.0.1:9090", cfg.Server.GRPCAddress)
	assert.Equal(t, "postgres://u:p@localhost/db", cfg.Storage.DB.DSN)
	assert.Equal(t, "tok", cfg.App.Token)
	assert.Equal(t, "grpc", cfg.Adapter.Transport)
	assert.True(t, cfg.App.RememberKey)
	assert.Equal(t, 2*time.Hour, cfg.App.TokenDuration)

	_, err = parseFlags([]string{"-a", "nope"})
	assert.Error(t, err)
}

func TestParseEnv(t *testing.T) {
	t.Setenv("APP_TOKEN", "env-token")
	t.Setenv("STORAGE_LOCAL_PATH", "/tmp/local.db")
	t.Setenv("SYNC_PUSH_DEBOUNCE", "1s")
	t.Setenv("SYNC_MAX_RETRIES", "5")
	t.Setenv("TABS_LEADER_TIMEOUT", "7s")
	t.Setenv("CONFIG", "/etc/omnifolio.json")

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, "env-token", cfg.App.Token)
	assert.Equal(t, "/tmp/local.db", cfg.Storage.Local.Path)
	assert.Equal(t, time.Second, cfg.Sync.PushDebounce)
	assert.Equal(t, 5, cfg.Sync.MaxRetries)
	assert.Equal(t, 7*time.Second, cfg.Tabs.LeaderTimeout)
	assert.Equal(t, "/etc/omnifolio.json", cfg.JSONFilePath)
}

func TestParseJSON(t *testing.T) {
	p := writeJSONConfig(t, `{
		"app": {"token": "json-token", "token_duration": "1h"},
		"storage": {"db": {"dsn": "postgres://x"}, "local": {"write_delay": "100ms"}},
		"adapter": {"transport": "http", "http_address": "https://sync.example.com"},
		"sync": {"retry_interval": "10s", "max_retries": 2},
		"tabs": {"heartbeat_interval": "1s"}
	}`)

	cfg, err := parseJSON(p)
	require.NoError(t, err)

	assert.Equal(t, "json-token", cfg.App.Token)
	assert.Equal(t, time.Hour, cfg.App.TokenDuration)
	assert.Equal(t, "postgres://x", cfg.Storage.DB.DSN)
	assert.Equal(t, 100*time.Millisecond, cfg.Storage.Local.WriteDelay)
	assert.Equal(t, "https://sync.example.com", cfg.Adapter.HTTPAddress)
	assert.Equal(t, 10*time.Second, cfg.Sync.RetryInterval)
	assert.Equal(t, 2, cfg.Sync.MaxRetries)
	assert.Equal(t, time.Second, cfg.Tabs.HeartbeatInterval)

	_, err = parseJSON(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = parseJSON(writeJSONConfig(t, `{"sync": {"retry_interval": true}}`))
	assert.Error(t, err)
}

// ── builder ───────────────────────────────────────────────────────────────────

func TestBuild_LaterSourcesOverride(t *testing.T) {
	b := newConfigBuilder()
	b.args = nil
	b.withDefaults()
	b.configs = append(b.configs,
		&StructuredConfig{App: App{Token: "env"}, Sync: Sync{MaxRetries: 5}},
		&StructuredConfig{App: App{Token: "flag"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)

	assert.Equal(t, "flag", cfg.App.Token)
	assert.Equal(t, 5, cfg.Sync.MaxRetries)
	assert.Equal(t, DefaultPushDebounce, cfg.Sync.PushDebounce)
	assert.Equal(t, DefaultLeaderTimeout, cfg.Tabs.LeaderTimeout)
}

func TestBuild_JSONFromEarlierSource(t *testing.T) {
	p := writeJSONConfig(t, `{"app": {"token": "from-json"}}`)

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{App: App{Token: "env"}, JSONFilePath: p})
	cfg, err := b.withJSON().build()
	require.NoError(t, err)
	assert.Equal(t, "from-json", cfg.App.Token)
}

func TestBuild_PropagatesError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestBuild_RejectsUnknownTransport(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{Adapter: Adapter{Transport: "carrier-pigeon"}})

	_, err := b.build()
	assert.ErrorIs(t, err, ErrUnsupportedTransport)
}

// ── projections ───────────────────────────────────────────────────────────────

func TestNewClientConfig_DerivesPaths(t *testing.T) {
	base := defaultConfig()
	base.App.Token = "tok"
	base.App.DataDir = "/data"

	cfg, err := newClientConfig(base)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("/data", "omnifolio.db"), cfg.Storage.Path)
	assert.Equal(t, filepath.Join("/data", "tabs"), cfg.Tabs.ChannelDir)
	assert.Equal(t, DefaultMaxRetries, cfg.Sync.MaxRetries)
}

func TestNewClientConfig_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*StructuredConfig)
		want   error
	}{
		{name: "missing token", mutate: func(c *StructuredConfig) { c.App.Token = "" }, want: ErrInvalidAppConfigs},
		{name: "grpc without address", mutate: func(c *StructuredConfig) { c.Adapter.Transport = TransportGRPC }, want: ErrInvalidAdapterConfigs},
		{name: "zero debounce", mutate: func(c *StructuredConfig) { c.Sync.PushDebounce = 0 }, want: ErrInvalidSyncConfigs},
		{name: "timeout below heartbeat", mutate: func(c *StructuredConfig) { c.Tabs.LeaderTimeout = time.Second }, want: ErrInvalidTabsConfigs},
		{name: "zero probe interval", mutate: func(c *StructuredConfig) { c.Workers.ConnectivityInterval = 0 }, want: ErrInvalidWorkerConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := defaultConfig()
			base.App.Token = "tok"
			tt.mutate(base)

			_, err := newClientConfig(base)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewServerConfig_Validation(t *testing.T) {
	base := defaultConfig()
	_, err := newServerConfig(base)
	assert.ErrorIs(t, err, ErrInvalidStorageConfigs)

	base.Storage.DB.DSN = "postgres://x"
	_, err = newServerConfig(base)
	assert.ErrorIs(t, err, ErrInvalidAppConfigs)

	base.App.TokenSignKey = "secret"
	cfg, err := newServerConfig(base)
	require.NoError(t, err)
	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, "omnifolio", cfg.App.TokenIssuer)
}
