package scene

import (
	"fmt"
	"sort"
	"strings"
)

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`          // Name used on the command line
	DisplayName string `json:"displayName"` // Human readable name
	Description string `json:"description"`
}

type sceneEntry struct {
	info    SceneInfo
	factory func() *Scene
}

var registry = map[string]sceneEntry{}

func register(id, description string, factory func() *Scene) {
	registry[id] = sceneEntry{
		info: SceneInfo{
			ID:          id,
			DisplayName: titleCase(id),
			Description: description,
		},
		factory: factory,
	}
}

func init() {
	register("default", "Red diffuse sphere on a large ground sphere", NewDefaultScene)
	register("materials", "Diffuse, fuzzed metal and hollow glass spheres side by side", NewMaterialsScene)
	register("spheregrid", "Seeded field of small spheres around three large ones", NewSphereGridScene)
	register("glass-cavity", "Camera enclosed in nested glass shells", NewGlassCavityScene)
}

// ListScenes returns all built-in scenes sorted by display name
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(registry))
	for _, entry := range registry {
		scenes = append(scenes, entry.info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})

	return scenes
}

// Names returns the identifiers of all built-in scenes in sorted order
func Names() []string {
	names := make([]string, 0, len(registry))
	for id := range registry {
		names = append(names, id)
	}
	sort.Strings(names)
	return names
}

// Create builds a fresh instance of the named scene
func Create(name string) (*Scene, error) {
	id := strings.ToLower(strings.TrimSpace(name))
	if id == "" {
		return nil, fmt.Errorf("scene name is empty")
	}

	entry, ok := registry[id]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return entry.factory(), nil
}

// titleCase converts an identifier to title case
// e.g., "glass-cavity" -> "Glass Cavity"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}
