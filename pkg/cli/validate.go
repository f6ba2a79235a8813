package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/electrium-mobility/rolesync/pkg/cli/config"
	"github.com/electrium-mobility/rolesync/pkg/utils/logging"
)

func cmdValidate() *cli.Command {
	var mappingCfg config.Mapping

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate the role mapping configuration file",
		Flags:   mappingCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			set, err := mappingCfg.Load()
			if err != nil {
				return goerr.Wrap(err, "mapping validation failed")
			}

			logger.Info("Mapping validation passed",
				"categories", len(set.Categories()),
				"entries", set.Len(),
			)

			seen := map[string]string{}
			for _, cat := range set.Categories() {
				fmt.Printf("%s (%d mappings)\n", cat.Name, len(cat.Mappings))
				for _, m := range cat.Mappings {
					fmt.Printf("  %s -> %s\n", m.RoleName, m.GroupName)
					if prev, ok := seen[m.RoleName]; ok {
						color.Yellow("  duplicate role %q also mapped in category %q; the later entry wins", m.RoleName, prev)
					}
					seen[m.RoleName] = cat.Name
				}
			}

			color.Green("configuration is valid")
			return nil
		},
	}
}
