package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/electrium-mobility/rolesync/pkg/cli/config"
	"github.com/electrium-mobility/rolesync/pkg/domain/types"
)

func writeMappingFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mappings.toml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0644)).Required()
	return path
}

func TestMappingLoad(t *testing.T) {
	path := writeMappingFile(t, `
term_marker = "F25"

[[category]]
name = "Teams"
description = "Long-lived project teams"

[[category.mapping]]
role = "Web Team"
group = "web-team"

[[category.mapping]]
role = "Firmware"
group = "firmware"

[[category]]
name = "Exec"

[[category.mapping]]
role = "Leads"
group = "leads"
`)

	cfg := config.NewMappingForTest(path, "")
	set, err := cfg.Load()
	gt.NoError(t, err).Required()

	gt.Value(t, set.Len()).Equal(3)
	gt.Array(t, set.Categories()).Length(2).Required()
	gt.Value(t, set.Categories()[0].Name).Equal("Teams")

	group, ok := set.GroupForRole("Web Team")
	gt.Bool(t, ok).True()
	gt.Value(t, group).Equal("web-team")

	// term marker from the file enables derivation
	group, ok = set.GroupForRole("F25-Solar Car")
	gt.Bool(t, ok).True()
	gt.Value(t, group).Equal("F25-Solar Car")
}

func TestMappingLoadMissingFileDegradesToEmpty(t *testing.T) {
	cfg := config.NewMappingForTest(filepath.Join(t.TempDir(), "nope.toml"), "")

	set, err := cfg.Load()
	gt.Error(t, err)
	gt.Bool(t, goerr.HasTag(err, types.ErrTagConfig)).True()

	// a usable (empty) snapshot is still returned
	gt.Value(t, set).NotNil()
	gt.Value(t, set.Len()).Equal(0)
}

func TestMappingLoadCorruptFile(t *testing.T) {
	path := writeMappingFile(t, `this is not toml [[ "`)
	cfg := config.NewMappingForTest(path, "")

	set, err := cfg.Load()
	gt.Error(t, err)
	gt.Bool(t, goerr.HasTag(err, types.ErrTagConfig)).True()
	gt.Value(t, set.Len()).Equal(0)
}

func TestMappingLoadRejectsIncompleteEntries(t *testing.T) {
	path := writeMappingFile(t, `
[[category]]
name = "Teams"

[[category.mapping]]
role = "Web Team"
`)
	cfg := config.NewMappingForTest(path, "")

	_, err := cfg.Load()
	gt.Error(t, err)
	gt.Bool(t, goerr.HasTag(err, types.ErrTagConfig)).True()
}

func TestMappingFlagMarkerIsFallback(t *testing.T) {
	path := writeMappingFile(t, `
[[category]]
name = "Teams"

[[category.mapping]]
role = "Web Team"
group = "web-team"
`)

	cfg := config.NewMappingForTest(path, "W26")
	set, err := cfg.Load()
	gt.NoError(t, err).Required()

	group, ok := set.GroupForRole("W26-Baja")
	gt.Bool(t, ok).True()
	gt.Value(t, group).Equal("W26-Baja")
}
