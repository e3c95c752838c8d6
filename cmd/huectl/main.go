package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/dokzlo13/huectl/internal/app"
	"github.com/dokzlo13/huectl/internal/config"
	"github.com/dokzlo13/huectl/internal/store"
)

type usageError struct {
	msg string
}

func (e *usageError) Error() string {
	return e.msg
}

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

func main() {
	flagSet := pflag.NewFlagSet("huectl", pflag.ContinueOnError)
	settingsPath := flagSet.StringP("settings", "s", config.DefaultPath, "path to the settings file")
	statePath := flagSet.StringP("config", "c", "", "path to the bridge state file (overrides state_file)")
	logLevel := flagSet.String("log-level", "", "log level: debug, info, warn, error")
	logJSON := flagSet.Bool("log-json", false, "write logs as JSON")
	flagSet.BoolP("help", "h", false, "show help")
	// Everything after the command is positional, so "set bri desk -5" reaches validation.
	flagSet.SetInterspersed(false)
	flagSet.Usage = func() { printUsage(flagSet) }

	// pflag has already printed the error and usage.
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}
	if help, _ := flagSet.GetBool("help"); help {
		printUsage(flagSet)
		return
	}

	cfg, err := config.Load(*settingsPath)
	if err != nil {
		log.Fatal().Err(err).Str("settings", *settingsPath).Msg("Failed to load settings")
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if *logJSON {
		cfg.Log.JSON = true
	}
	if *statePath != "" {
		cfg.StateFile = *statePath
	}

	setupLogging(cfg.Log.Level, cfg.Log.JSON, cfg.Log.Colors)
	log.Logger = log.With().Str("invocation", uuid.NewString()).Logger()

	application := app.New(cfg, store.NewFile(cfg.StateFile))

	state, err := application.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Str("state_file", cfg.StateFile).Msg("Failed to load state")
	}

	err = run(context.Background(), application, state, flagSet.Args())
	if err == nil {
		return
	}

	var usageErr *usageError
	switch {
	case errors.As(err, &usageErr):
		fmt.Fprintf(os.Stderr, "error: %v\n\n", err)
		printUsage(flagSet)
		os.Exit(2)
	case app.IsFailure(err):
		fmt.Println(err.Error())
		log.Debug().Err(errors.Unwrap(err)).Msg("Command failed")
		os.Exit(1)
	default:
		log.Fatal().Err(err).Msg("Command aborted")
	}
}

func run(ctx context.Context, a *app.App, state store.Config, args []string) error {
	if len(args) == 0 {
		return usagef("no command given")
	}

	command, rest := args[0], args[1:]
	switch command {
	case "discover":
		if err := expectArgs(command, rest, 0); err != nil {
			return err
		}
		_, err := a.Discover(ctx)
		return err
	case "test":
		if err := expectArgs(command, rest, 0); err != nil {
			return err
		}
		return a.Test(ctx, state)
	case "login":
		if err := expectArgs(command, rest, 0); err != nil {
			return err
		}
		_, err := a.Login(ctx, state)
		return err
	case "list", "ls":
		if err := expectArgs(command, rest, 0); err != nil {
			return err
		}
		return a.List(ctx, state)
	case "aliases":
		if err := expectArgs(command, rest, 0); err != nil {
			return err
		}
		a.Aliases(state)
		return nil
	case "set":
		return runSet(ctx, a, state, rest)
	default:
		return usagef("unknown command %q", command)
	}
}

func runSet(ctx context.Context, a *app.App, state store.Config, args []string) error {
	if len(args) == 0 {
		return usagef("set: expected on, off, bri or alias")
	}

	sub, rest := args[0], args[1:]
	switch sub {
	case "on", "off":
		if err := expectArgs("set "+sub, rest, 1); err != nil {
			return err
		}
		return a.SetState(ctx, state, app.Power(sub == "on"), rest[0])
	case "bri":
		if err := expectArgs("set bri", rest, 2); err != nil {
			return err
		}
		bri, err := app.ParseBrightness(rest[1])
		if err != nil {
			return &app.Failure{Msg: "Unable to set brightness: " + err.Error(), Err: err}
		}
		return a.SetState(ctx, state, bri, rest[0])
	case "alias":
		if err := expectArgs("set alias", rest, 2); err != nil {
			return err
		}
		_, err := a.SetAlias(ctx, state, rest[0], rest[1])
		return err
	default:
		return usagef("set: unknown state %q", sub)
	}
}

func expectArgs(command string, args []string, n int) error {
	if len(args) != n {
		return usagef("%s: expected %d argument(s), got %d", command, n, len(args))
	}
	return nil
}

func printUsage(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `huectl controls the lights of a Philips Hue bridge.

Usage:
  huectl [flags] <command>

Commands:
  discover               find the bridge on the local network (resets pairing and aliases)
  test                   check that the bridge answers
  login                  pair with the bridge (press its link button first)
  list                   list all lights and whether they are on
  aliases                list configured aliases
  set on NAME            turn a light on
  set off NAME           turn a light off
  set bri NAME BRI       set brightness between 0 and 100
  set alias NAME ALIAS   let ALIAS refer to the light NAME

Flags:
%s`, flagSet.FlagUsages())
}

func setupLogging(level string, useJSON bool, colors bool) {
	// ISO 8601 format with timezone
	zerolog.TimeFieldFormat = time.RFC3339

	if useJSON {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: "2006-01-02T15:04:05.000Z07:00",
			NoColor:    !colors,
		})
	}

	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}
}
