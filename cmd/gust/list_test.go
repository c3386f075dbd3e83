// SPDX-License-Identifier: MPL-2.0

package main

import (
	"testing"

	"gust-cli/pkg/justfile"
)

func TestRecipeHeader(t *testing.T) {
	t.Parallel()

	jf := compileSource(t, "build target=\"all\" *flags:\n\techo {{target}}\n")
	recipe := jf.RecipeByName("build")
	if recipe == nil {
		t.Fatal("recipe not found")
	}
	got := recipeHeader(recipe, false)
	want := "build target=\"all\" *flags"
	if got != want {
		t.Errorf("recipeHeader() = %q, want %q", got, want)
	}
}

func TestFilterRecipes(t *testing.T) {
	t.Parallel()

	jf := compileSource(t, "build:\n\techo b\ntest:\n\techo t\ndeploy:\n\techo d\n")
	recipes := jf.PublicRecipes()

	filtered := filterRecipes(recipes, "bld")
	if len(filtered) != 1 || filtered[0].Name.Lexeme != "build" {
		t.Errorf("filterRecipes(bld) = %v, want [build]", names(filtered))
	}

	if got := filterRecipes(recipes, "zzz"); len(got) != 0 {
		t.Errorf("filterRecipes(zzz) = %v, want empty", names(got))
	}
}

func names(recipes []*justfile.Recipe) []string {
	out := make([]string, len(recipes))
	for i, recipe := range recipes {
		out[i] = recipe.Name.Lexeme
	}
	return out
}
