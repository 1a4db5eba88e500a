// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"time"

	"github.com/apex/log"
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/postctl/internal/config"
	"github.com/staranto/postctl/internal/remote"
)

// NewGlobalFlags returns the flags shared by every subcommand. ns is the
// subcommand being run and source the config file. Config values are looked
// up as "<ns>.<key>" before "<key>".
func NewGlobalFlags(ns string, source string) (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "attrs",
			Aliases: []string{"a"},
			Usage:   "comma-separated list of attributes to include in results",
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to post listings",
		},
		&cli.StringFlag{
			Name:  "cache",
			Usage: "cache file location",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("POSTCTL_CACHE_FILE"),
				yaml.YAML("cache.file", altsrc.StringSourcer(source)),
			),
		},
		&cli.StringFlag{
			Name:  "base-url",
			Usage: "base URL of the posts API",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("POSTCTL_BASE_URL"),
				yaml.YAML("api.base", altsrc.StringSourcer(source)),
			),
			Value: remote.DefaultBaseURL,
			Validator: func(value string) error {
				return FlagValidators(value, JammedFlagValidator, URLValidator)
			},
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "per-request timeout",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("POSTCTL_TIMEOUT"),
			),
			Value: configTimeout(),
		},
		namespaced(ns, source, &cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Value:   "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		}),
		&cli.BoolWithInverseFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(ns+"."+"color", altsrc.StringSourcer(source)),
				yaml.YAML("color", altsrc.StringSourcer(source)),
			),
			Value: false,
		},
		&cli.BoolWithInverseFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(ns+"."+"titles", altsrc.StringSourcer(source)),
				yaml.YAML("titles", altsrc.StringSourcer(source)),
			),
			Value: false,
		},
	}

	return
}

// namespaced adds namespaced and global config file sources to the given
// flag's Sources chain.
func namespaced(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	if ns != "" {
		src := yaml.YAML(ns+"."+flag.Name, altsrc.StringSourcer(path))
		flag.Sources.Chain = append(flag.Sources.Chain, src)
	}

	src := yaml.YAML(flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}

// configTimeout returns api.timeout from the config file, which may be a
// duration string or a bare number of seconds.
func configTimeout() time.Duration {
	d, err := config.GetDuration("api.timeout", remote.DefaultTimeout)
	if err != nil {
		log.Warnf("ignoring api.timeout: %v", err)
		return remote.DefaultTimeout
	}
	return d
}
