// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/apex/log"

	"github.com/staranto/postctl/internal/command"
	"github.com/staranto/postctl/internal/config"
	mylog "github.com/staranto/postctl/internal/log"
	"github.com/staranto/postctl/internal/version"
)

var ctx = context.Background()

func main() {
	os.Exit(realMain(os.Args, os.Stdout, os.Stderr))
}

func realMain(args []string, stdout, stderr io.Writer) int {
	mylog.InitLogger()

	if len(args) > 1 {
		args = mangleArguments(args)
	}

	// Short-circuit --version/-v.
	for _, a := range args[1:] {
		if a == "--version" || a == "-v" {
			fmt.Fprintln(stdout, version.Version)
			return 0
		}
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	app.Writer = stdout
	app.ErrWriter = stderr

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	return 0
}

// mangleArguments expands an argument set from the config file into the
// command line right after the subcommand. "@name" selects the set
// "<subcommand>.name"; without one "<subcommand>.defaults" is used if it
// exists. Each entry of a set may hold several whitespace-separated args.
func mangleArguments(args []string) []string {
	if strings.HasPrefix(args[1], "-") {
		return args
	}

	// Short-circuit for --help/-h. If help is requested, just keep the
	// preamble and add --help flag.
	for _, a := range args {
		if a == "--help" || a == "-h" {
			return []string{args[0], args[1], "--help"}
		}
	}

	working := make([]string, 0, len(args))
	working = append(working, args[:2]...)

	set := "defaults"
	for _, a := range args[2:] {
		if len(a) > 1 && strings.HasPrefix(a, "@") {
			set = a[1:]
			continue
		}
		working = append(working, a)
	}

	setArgs, _ := config.GetStringSlice(args[1]+"."+set, nil)
	var expanded []string
	for _, arg := range setArgs {
		expanded = append(expanded, strings.Fields(arg)...)
	}

	out := append([]string{}, working[:2]...)
	out = append(out, expanded...)
	out = append(out, working[2:]...)

	log.Debugf("set=%s, args=%v", set, out)
	return out
}
