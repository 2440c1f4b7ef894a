package scene

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SceneInfo describes a scene that can be selected by ID
type SceneInfo struct {
	ID       string `json:"id"`       // Unique identifier
	Type     string `json:"type"`     // "builtin" or "json"
	FilePath string `json:"filePath"` // Path to the JSON file (json type only)
}

// builtinScenes maps scene IDs to constructors
var builtinScenes = map[string]func() *Scene{
	"rtweekend": func() *Scene { return NewRTWeekendScene() },
}

// ListScenes returns the built-in scenes followed by any *.json scenes in dir
func ListScenes(dir string) ([]SceneInfo, error) {
	var scenes []SceneInfo
	for id := range builtinScenes {
		scenes = append(scenes, SceneInfo{ID: id, Type: "builtin"})
	}
	sort.Slice(scenes, func(i, j int) bool { return scenes[i].ID < scenes[j].ID })

	if dir == "" {
		return scenes, nil
	}
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		return scenes, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}
	sort.Strings(files)

	for _, path := range files {
		id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if _, clash := builtinScenes[id]; clash {
			id = "json/" + id
		}
		scenes = append(scenes, SceneInfo{ID: id, Type: "json", FilePath: path})
	}
	return scenes, nil
}

// Open resolves a scene ID against the built-ins and the JSON scenes in dir.
// A path to a .json file is also accepted.
func Open(id, dir string) (*Scene, error) {
	if strings.HasSuffix(id, ".json") {
		return LoadFile(id)
	}

	scenes, err := ListScenes(dir)
	if err != nil {
		return nil, err
	}
	for _, info := range scenes {
		if info.ID != id {
			continue
		}
		if info.Type == "builtin" {
			return builtinScenes[id](), nil
		}
		return LoadFile(info.FilePath)
	}
	return nil, fmt.Errorf("unknown scene %q", id)
}
