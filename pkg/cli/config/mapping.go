package config

import (
	"log/slog"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	modelconfig "github.com/electrium-mobility/rolesync/pkg/domain/model/config"
	"github.com/electrium-mobility/rolesync/pkg/domain/types"
	"github.com/electrium-mobility/rolesync/pkg/usecase"
)

type Mapping struct {
	path       string
	termMarker string
}

// mappingFile is the TOML shape of the role mapping configuration:
//
//	term_marker = "F25"
//
//	[[category]]
//	name = "Teams"
//	description = "Long-lived project teams"
//
//	[[category.mapping]]
//	role = "Web Team"
//	group = "web-team"
type mappingFile struct {
	TermMarker string         `toml:"term_marker"`
	Categories []categoryFile `toml:"category"`
}

type categoryFile struct {
	Name        string        `toml:"name"`
	Description string        `toml:"description"`
	Mappings    []mappingLine `toml:"mapping"`
}

type mappingLine struct {
	Role        string `toml:"role"`
	Group       string `toml:"group"`
	Description string `toml:"description"`
}

func (x *Mapping) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "mapping-file",
			Usage:       "Path to the role mapping TOML file",
			Category:    "Mapping",
			Value:       "mappings.toml",
			Destination: &x.path,
			Sources:     cli.EnvVars("ROLESYNC_MAPPING_FILE"),
		},
		&cli.StringFlag{
			Name:        "term-marker",
			Usage:       "Term marker for derived group names (e.g. F25); empty disables derivation",
			Category:    "Mapping",
			Destination: &x.termMarker,
			Sources:     cli.EnvVars("ROLESYNC_TERM_MARKER"),
		},
	}
}

func (x Mapping) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("path", x.path),
		slog.String("term-marker", x.termMarker),
	)
}

// Loader returns a loader that re-reads the mapping file on each call. A
// missing or corrupt file yields an empty snapshot plus the error, so the
// caller degrades to "no mappings" instead of keeping stale state.
func (x *Mapping) Loader() usecase.MappingLoader {
	return func() (*modelconfig.MappingSet, error) {
		return x.Load()
	}
}

// Load reads and validates the mapping file once.
func (x *Mapping) Load() (*modelconfig.MappingSet, error) {
	empty := modelconfig.NewMappingSet(nil, x.termMarker)

	raw, err := os.ReadFile(x.path)
	if err != nil {
		return empty, goerr.Wrap(err, "failed to read mapping file",
			goerr.V("path", x.path), goerr.T(types.ErrTagConfig))
	}

	var file mappingFile
	if err := toml.Unmarshal(raw, &file); err != nil {
		return empty, goerr.Wrap(err, "failed to parse mapping file",
			goerr.V("path", x.path), goerr.T(types.ErrTagConfig))
	}

	marker := file.TermMarker
	if marker == "" {
		marker = x.termMarker
	}

	categories := make([]modelconfig.Category, 0, len(file.Categories))
	for _, c := range file.Categories {
		if c.Name == "" {
			return empty, goerr.New("mapping category is missing a name",
				goerr.V("path", x.path), goerr.T(types.ErrTagConfig))
		}

		cat := modelconfig.Category{
			Name:        c.Name,
			Description: c.Description,
		}
		for _, m := range c.Mappings {
			if m.Role == "" || m.Group == "" {
				return empty, goerr.New("mapping entry requires both role and group",
					goerr.V("path", x.path), goerr.V("category", c.Name),
					goerr.T(types.ErrTagConfig))
			}
			cat.Mappings = append(cat.Mappings, modelconfig.RoleMapping{
				RoleName:    m.Role,
				GroupName:   m.Group,
				Category:    c.Name,
				Description: m.Description,
			})
		}
		categories = append(categories, cat)
	}

	return modelconfig.NewMappingSet(categories, marker), nil
}
