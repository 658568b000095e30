package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "battlepath.yaml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return p
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("test", nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.PlannerURL != DefaultPlannerURL {
		t.Fatalf("planner=%q", cfg.PlannerURL)
	}
	if cfg.CellSize != 24 || cfg.DefaultRadius != 4 || !cfg.DragMode {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if len(cfg.Modes) != 2 || cfg.Modes[0] != "SAFEST" {
		t.Fatalf("modes=%v", cfg.Modes)
	}
}

func TestLoad_Precedence(t *testing.T) {
	p := writeFile(t, "planner_url: http://file:1/api\ncell_size: 30\nrequest_timeout: 3s\nmodes: [A, B, C]\n")
	t.Setenv("BATTLEPATH_CELL_SIZE", "40")
	t.Setenv("BATTLEPATH_RADIUS", "2.5")

	cfg, err := Load("test", []string{"-config", p, "-radius", "6"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.PlannerURL != "http://file:1/api" {
		t.Fatalf("planner=%q, want the file value", cfg.PlannerURL)
	}
	if cfg.RequestTimeout != 3*time.Second {
		t.Fatalf("timeout=%v, want 3s from file", cfg.RequestTimeout)
	}
	if cfg.CellSize != 40 {
		t.Fatalf("cell=%d, want env to beat file", cfg.CellSize)
	}
	if cfg.DefaultRadius != 6 {
		t.Fatalf("radius=%v, want flag to beat env", cfg.DefaultRadius)
	}
	if len(cfg.Modes) != 3 {
		t.Fatalf("modes=%v", cfg.Modes)
	}
}

func TestLoad_ConfigFromEnv(t *testing.T) {
	p := writeFile(t, "drag_mode: false\n")
	t.Setenv("BATTLEPATH_CONFIG", p)
	cfg, err := Load("test", nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DragMode {
		t.Fatal("drag mode should come from the env-named file")
	}
}

func TestLoad_ClampsCellSize(t *testing.T) {
	for in, want := range map[string]int{"1": MinCellSize, "500": MaxCellSize, "12": 12} {
		cfg, err := Load("test", []string{"-cell", in})
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if cfg.CellSize != want {
			t.Fatalf("-cell %s gave %d, want %d", in, cfg.CellSize, want)
		}
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load("test", []string{"-config", filepath.Join(t.TempDir(), "missing.yaml")}); err == nil {
		t.Fatal("missing config file should fail")
	}
	if _, err := Load("test", []string{"-config", writeFile(t, "cell_size: [oops\n")}); err == nil {
		t.Fatal("broken YAML should fail")
	}
	if _, err := Load("test", []string{"-planner", "  "}); err == nil {
		t.Fatal("empty planner URL should fail")
	}
	if _, err := Load("test", []string{"-timeout", "0s"}); err == nil {
		t.Fatal("zero timeout should fail")
	}
	if _, err := Load("test", []string{"-modes", " , "}); err == nil {
		t.Fatal("empty mode list should fail")
	}
}

func TestLoad_TrimsTrailingSlash(t *testing.T) {
	cfg, err := Load("test", []string{"-planner", "http://h:9/api/"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.PlannerURL != "http://h:9/api" {
		t.Fatalf("planner=%q", cfg.PlannerURL)
	}
}

func TestApplyEnv_IgnoresBadValues(t *testing.T) {
	t.Setenv("BATTLEPATH_CELL_SIZE", "big")
	t.Setenv("BATTLEPATH_OVERLAY", "maybe")
	cfg := Default()
	cfg.ApplyEnv()
	if cfg.CellSize != 24 || !cfg.RiskOverlay {
		t.Fatalf("bad env values changed config: %+v", cfg)
	}
}
