package viewer

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Garsondee/battlepath/internal/model"
	"github.com/Garsondee/battlepath/internal/render"
)

// File names used inside the export directory.
const (
	scenarioFile   = "battlepath_scenario.json"
	pathFile       = "battlepath_path.json"
	metaFile       = "map_meta.json"
	snapshotFile   = "battlepath.png"
	mapPreviewFile = "map.json"
)

// writeExport stores data under dir/name and returns the full path.
func writeExport(dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return p, nil
}

func readImport(dir, name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

// snapshotPNG rasterises the session exactly as the window shows it, at one
// pixel per logical pixel.
func snapshotPNG(s *model.Session, riskOverlay bool, cellSize int, path []model.Cell) ([]byte, error) {
	surf := render.NewRasterSurface()
	render.NewRenderer(1).RenderPath(surf, s.Grid(), s.Scenario(), riskOverlay, cellSize, path)
	var buf bytes.Buffer
	if err := surf.WritePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
