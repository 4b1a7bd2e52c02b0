package main

import (
	"github.com/spf13/pflag"

	"github.com/ludo-technologies/scorediff/domain"
	"github.com/ludo-technologies/scorediff/internal/config"
	"github.com/ludo-technologies/scorediff/service"
)

// resolveOutputFormat merges the exclusive format flags with the configured
// default. An explicit flag always wins; otherwise the config file decides.
func resolveOutputFormat(flags *pflag.FlagSet, cfg *config.Config, json, csv, yaml bool) (domain.OutputFormat, error) {
	format, _, err := service.NewOutputFormatResolver().Determine(json, csv, yaml)
	if err != nil {
		return "", err
	}
	if format == domain.OutputFormatText &&
		!flags.Changed("json") && !flags.Changed("csv") && !flags.Changed("yaml") {
		format = domain.OutputFormat(cfg.Output.Format)
	}
	return format, nil
}
