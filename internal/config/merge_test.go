package config

import (
	"reflect"
	"testing"
)

func TestDeepMerge(t *testing.T) {
	t.Run("overlay_scalar_wins", func(t *testing.T) {
		base := map[string]any{"globs": "**/*.go", "alwaysApply": true}
		overlay := map[string]any{"globs": "**/*.go,**/*.tmpl"}

		merged := deepMerge(base, overlay)

		if merged["globs"] != "**/*.go,**/*.tmpl" {
			t.Errorf("globs = %v, want overlay value", merged["globs"])
		}
		if merged["alwaysApply"] != true {
			t.Errorf("alwaysApply = %v, want base value preserved", merged["alwaysApply"])
		}
	})

	t.Run("nested_trees_merge_recursively", func(t *testing.T) {
		base := map[string]any{
			"languages": map[string]any{
				"go": map[string]any{
					"globs": "**/*.go",
					"frameworks": map[string]any{
						"gin": map[string]any{"file": "gin"},
					},
				},
			},
		}
		overlay := map[string]any{
			"languages": map[string]any{
				"go": map[string]any{
					"frameworks": map[string]any{
						"echo": map[string]any{"file": "echo"},
					},
				},
			},
		}

		merged := deepMerge(base, overlay)

		langs := merged["languages"].(map[string]any)
		goLang := langs["go"].(map[string]any)
		if goLang["globs"] != "**/*.go" {
			t.Errorf("globs lost during merge: %v", goLang["globs"])
		}
		fws := goLang["frameworks"].(map[string]any)
		if _, ok := fws["gin"]; !ok {
			t.Error("base framework gin lost during merge")
		}
		if _, ok := fws["echo"]; !ok {
			t.Error("overlay framework echo not added")
		}
	})

	t.Run("overlay_leaf_replaces_base_tree", func(t *testing.T) {
		base := map[string]any{"frameworks": map[string]any{"gin": map[string]any{}}}
		overlay := map[string]any{"frameworks": "none"}

		merged := deepMerge(base, overlay)

		if merged["frameworks"] != "none" {
			t.Errorf("frameworks = %v, want overlay leaf", merged["frameworks"])
		}
	})

	t.Run("inputs_not_mutated", func(t *testing.T) {
		base := map[string]any{"a": map[string]any{"x": 1}}
		overlay := map[string]any{"a": map[string]any{"y": 2}}
		baseCopy := map[string]any{"a": map[string]any{"x": 1}}
		overlayCopy := map[string]any{"a": map[string]any{"y": 2}}

		_ = deepMerge(base, overlay)

		if !reflect.DeepEqual(base, baseCopy) {
			t.Errorf("base mutated: %v", base)
		}
		if !reflect.DeepEqual(overlay, overlayCopy) {
			t.Errorf("overlay mutated: %v", overlay)
		}
	})
}
