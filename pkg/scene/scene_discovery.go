package scene

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrUnknownScene is returned when a scene name matches no built-in scene
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier, the built-in name or file path
	DisplayName string `json:"displayName"` // Human readable name
	Description string `json:"description"` // Optional description
	Type        string `json:"type"`        // "builtin" or "file"
	FilePath    string `json:"filePath"`    // Path to the JSON file (file type only)
}

type builtinScene struct {
	info  SceneInfo
	build func(seed int64) (*Scene, error)
}

var builtinScenes = []builtinScene{
	{
		info: SceneInfo{ID: "default", DisplayName: "Default Scene", Description: "Three spheres with hollow glass on a large ground sphere"},
		build: func(int64) (*Scene, error) {
			return NewDefaultScene()
		},
	},
	{
		info:  SceneInfo{ID: "random", DisplayName: "Random Spheres", Description: "Many small random spheres around three large ones"},
		build: func(seed int64) (*Scene, error) { return NewRandomScene(seed) },
	},
	{
		info: SceneInfo{ID: "spheregrid", DisplayName: "Sphere Grid", Description: "Grid of rainbow-colored metallic spheres"},
		build: func(int64) (*Scene, error) {
			return NewSphereGridScene()
		},
	},
	{
		info: SceneInfo{ID: "test", DisplayName: "Test Scene", Description: "Single red sphere on a white background"},
		build: func(int64) (*Scene, error) {
			return NewTestScene()
		},
	},
}

// BuiltinScenes returns metadata for every built-in scene
func BuiltinScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtinScenes))
	for _, b := range builtinScenes {
		info := b.info
		info.Type = "builtin"
		scenes = append(scenes, info)
	}
	return scenes
}

// Names returns the IDs of the built-in scenes
func Names() []string {
	names := make([]string, 0, len(builtinScenes))
	for _, b := range builtinScenes {
		names = append(names, b.info.ID)
	}
	return names
}

// New builds the built-in scene with the given name. The seed only affects randomized scenes.
func New(name string, seed int64) (*Scene, error) {
	for _, b := range builtinScenes {
		if b.info.ID == name {
			return b.build(seed)
		}
	}
	return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownScene, name, strings.Join(Names(), ", "))
}

// ListSceneFiles scans dir for JSON scene files. A missing directory yields an empty list.
func ListSceneFiles(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []SceneInfo{}, nil
		}
		return nil, fmt.Errorf("failed to stat scenes directory: %w", err)
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := make([]SceneInfo, 0, len(files))
	for _, filePath := range files {
		nameWithoutExt := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
		scenes = append(scenes, SceneInfo{
			ID:          filePath,
			DisplayName: titleCase(nameWithoutExt),
			Type:        "file",
			FilePath:    filePath,
		})
	}

	// Sort scenes by display name
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})

	return scenes, nil
}

// ListAllScenes returns the built-in scenes followed by the JSON scenes found in dir
func ListAllScenes(dir string) ([]SceneInfo, error) {
	files, err := ListSceneFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list scene files: %w", err)
	}
	return append(BuiltinScenes(), files...), nil
}

// titleCase converts a filename-style string to title case
// e.g., "three-spheres" -> "Three Spheres"
func titleCase(s string) string {
	// Replace hyphens and underscores with spaces
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	// Title case each word
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
