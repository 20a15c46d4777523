package config_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/chunkinator/astroneer/config"
	"github.com/rs/zerolog"
)

func TestHolder_Get(t *testing.T) {
	path := writeConfig(t, validConfig())

	h, err := config.NewHolder(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewHolder error: %v", err)
	}
	defer h.Stop()

	got := h.Get()
	if got == nil {
		t.Fatal("Get returned nil")
	}
	if got.Logging.Level != "info" {
		t.Errorf("Logging.Level = %s, want info", got.Logging.Level)
	}
	if h.Path() != path {
		t.Errorf("Path() = %s, want %s", h.Path(), path)
	}
}

func TestHolder_MissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.yaml")

	h, err := config.NewHolder(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewHolder error: %v", err)
	}
	defer h.Stop()

	if h.Get().Server.Port != 5000 {
		t.Errorf("Port = %d, want 5000", h.Get().Server.Port)
	}
}

func TestHolder_Reload(t *testing.T) {
	path := writeConfig(t, validConfig())

	h, err := config.NewHolder(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewHolder error: %v", err)
	}
	defer h.Stop()

	if err := os.WriteFile(path, []byte("logging:\n  level: \"debug\"\n"), 0644); err != nil {
		t.Fatalf("write new config: %v", err)
	}

	if err := h.Reload(); err != nil {
		t.Fatalf("Reload error: %v", err)
	}

	if got := h.Get().Logging.Level; got != "debug" {
		t.Errorf("reloaded Logging.Level = %s, want debug", got)
	}
}

type recordingObserver struct {
	mu   sync.Mutex
	errs []error
}

func (r *recordingObserver) ConfigReloaded(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
}

func TestHolder_OnChangeAndObserver(t *testing.T) {
	path := writeConfig(t, validConfig())

	h, err := config.NewHolder(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewHolder error: %v", err)
	}
	defer h.Stop()

	obs := &recordingObserver{}
	h.SetObserver(obs)

	var got *config.Config
	h.OnChange(func(cfg *config.Config) {
		got = cfg
	})

	if err := h.Reload(); err != nil {
		t.Fatalf("Reload error: %v", err)
	}
	if got == nil {
		t.Fatal("OnChange callback not called")
	}
	if len(obs.errs) != 1 || obs.errs[0] != nil {
		t.Errorf("observer saw %v, want one nil error", obs.errs)
	}
}

func TestHolder_ReloadInvalidConfig(t *testing.T) {
	path := writeConfig(t, validConfig())

	h, err := config.NewHolder(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewHolder error: %v", err)
	}
	defer h.Stop()

	obs := &recordingObserver{}
	h.SetObserver(obs)

	if err := os.WriteFile(path, []byte("logging:\n  level: shouting\n"), 0644); err != nil {
		t.Fatalf("write invalid config: %v", err)
	}

	if err := h.Reload(); err == nil {
		t.Error("Reload should fail for invalid config")
	}

	// Old config survives
	if got := h.Get().Logging.Level; got != "info" {
		t.Errorf("after failed reload, Logging.Level = %s, want info", got)
	}
	if len(obs.errs) != 1 || obs.errs[0] == nil {
		t.Errorf("observer saw %v, want one error", obs.errs)
	}
}

func TestHolder_WatchFile(t *testing.T) {
	path := writeConfig(t, validConfig())

	h, err := config.NewHolder(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewHolder error: %v", err)
	}
	defer h.Stop()

	if err := h.WatchFile(); err != nil {
		t.Fatalf("WatchFile error: %v", err)
	}

	if err := os.WriteFile(path, []byte("logging:\n  level: \"warn\"\n"), 0644); err != nil {
		t.Fatalf("write new config: %v", err)
	}

	// Wait for file watcher to trigger
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if h.Get().Logging.Level == "warn" {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Errorf("after file watch, Logging.Level = %s, want warn", h.Get().Logging.Level)
}

func TestHolder_WatchFileWithoutPath(t *testing.T) {
	cfg, err := config.Default()
	if err != nil {
		t.Fatalf("Default error: %v", err)
	}
	h, err := config.NewHolderWith(cfg, "", zerolog.Nop())
	if err != nil {
		t.Fatalf("NewHolderWith error: %v", err)
	}
	defer h.Stop()

	if err := h.WatchFile(); err == nil {
		t.Error("WatchFile should fail without a config path")
	}
}

func TestHolder_StopTwice(t *testing.T) {
	h, err := config.NewHolder(writeConfig(t, validConfig()), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewHolder error: %v", err)
	}
	h.Stop()
	h.Stop()
}

func TestHolder_ConcurrentAccess(t *testing.T) {
	path := writeConfig(t, validConfig())

	h, err := config.NewHolder(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewHolder error: %v", err)
	}
	defer h.Stop()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if h.Get() == nil {
					t.Error("concurrent Get returned nil")
				}
			}
		}()
	}

	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = h.Reload()
		}()
	}

	wg.Wait()
}

func TestReloadableFields(t *testing.T) {
	fields := config.ReloadableFields()

	found := false
	for _, f := range fields {
		if f == "logging.level" {
			found = true
		}
	}
	if !found {
		t.Error("logging.level should be reloadable")
	}
}

func TestNonReloadableFields(t *testing.T) {
	for _, f := range config.NonReloadableFields() {
		for _, r := range config.ReloadableFields() {
			if f == r {
				t.Errorf("%s listed as both reloadable and non-reloadable", f)
			}
		}
	}
}

func validConfig() string {
	return `
server:
  port: 5000
logging:
  level: "info"
`
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return path
}
