package config

import (
	"strings"

	platformerrors "github.com/jmgilman/go/errors"
	"github.com/spf13/cobra"

	"fstree/internal/domain"
)

func RegisterFlags(cmd *cobra.Command, base Config) {
	flags := cmd.PersistentFlags()
	flags.String("theme", base.Theme, "Color theme (dark or light)")
	flags.String("sort", string(base.SortMode), "Browser sort order (size, name or kind)")
	flags.String("log-level", base.LogLevel, "Log level (debug, info, warn or error)")
	flags.Bool("color", base.Color, "Colorize tree output")
}

// ApplyFlags overlays the flags the user actually set onto base. Unlike the
// config file, invalid values are reported instead of ignored.
func ApplyFlags(cmd *cobra.Command, base Config) (Config, error) {
	flags := cmd.Flags()
	if flags.Changed("theme") {
		theme, _ := flags.GetString("theme")
		theme = strings.ToLower(theme)
		if !themes[theme] {
			return base, invalidFlag("theme", theme)
		}
		base.Theme = theme
	}
	if flags.Changed("sort") {
		sortMode, _ := flags.GetString("sort")
		if !domain.ValidSortMode(sortMode) {
			return base, invalidFlag("sort", sortMode)
		}
		base.SortMode = domain.SortMode(sortMode)
	}
	if flags.Changed("log-level") {
		level, _ := flags.GetString("log-level")
		level = strings.ToLower(level)
		if _, ok := logLevels[level]; !ok {
			return base, invalidFlag("log-level", level)
		}
		base.LogLevel = level
	}
	if flags.Changed("color") {
		base.Color, _ = flags.GetBool("color")
	}
	return base, nil
}

func invalidFlag(name, value string) error {
	err := platformerrors.Newf(platformerrors.CodeInvalidConfig, "invalid value %q for --%s", value, name)
	return platformerrors.WithContext(err, "flag", name)
}
