package scene

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownScene is returned by Create for names with no registered preset
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo represents a built-in scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
}

type preset struct {
	info   SceneInfo
	create func(Options) (*Scene, error)
}

var presets = []preset{
	{
		info:   SceneInfo{ID: "random", Description: "Three large spheres among a grid of small random ones"},
		create: NewRandomScene,
	},
	{
		info:   SceneInfo{ID: "default", Description: "Diffuse, metal and hollow glass spheres with depth of field"},
		create: NewDefaultScene,
	},
	{
		info:   SceneInfo{ID: "single", Description: "One diffuse sphere seen through a pinhole camera"},
		create: NewSingleSphereScene,
	},
}

// Names returns the IDs of all built-in scenes
func Names() []string {
	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = p.info.ID
	}
	return names
}

// ListScenes returns metadata for every built-in scene
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, len(presets))
	for i, p := range presets {
		scenes[i] = p.info
		scenes[i].DisplayName = titleCase(p.info.ID)
	}
	return scenes
}

// Create builds the named scene with opts applied. It fails for unknown names
// and for camera overrides that leave no valid view basis.
func Create(name string, opts Options) (*Scene, error) {
	for _, p := range presets {
		if p.info.ID == name {
			s, err := p.create(opts)
			if err != nil {
				return nil, fmt.Errorf("scene %q: %w", name, err)
			}
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownScene, name, strings.Join(Names(), ", "))
}

// titleCase converts a filename-style string to title case
// e.g., "cornell-empty" -> "Cornell Empty"
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
