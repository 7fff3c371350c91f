package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"
)

func newCommand() *cli.Command {
	return &cli.Command{
		Name:        "uwuweather",
		Usage:       "weather for any place",
		Description: "Looks places up, shows current conditions, the next 24 hours, the next 5 days and a 2-hour rain nowcast.",
		ArgsUsage:   "[place]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"cfg"},
				Usage:   "config file path",
				Value:   "./config.yaml",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "enable debug logging",
			},
		},
		Action: showAction,
		Commands: []*cli.Command{
			{
				Name:      "show",
				Usage:     "show the forecast for a place, the last place or the default place",
				ArgsUsage: "[place]",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "lat", Usage: "latitude, shown as \"My location\""},
					&cli.StringFlag{Name: "lon", Usage: "longitude, shown as \"My location\""},
				},
				Action: showAction,
			},
			{
				Name:      "search",
				Usage:     "list matching places and show the first one",
				ArgsUsage: "<name[, region][, CC]>",
				Action:    searchAction,
			},
			{
				Name:      "units",
				Usage:     "print or change the unit system",
				ArgsUsage: "[metric|imperial|toggle]",
				Action:    unitsAction,
			},
			{
				Name:      "save",
				Usage:     "save a place, or the last shown place",
				ArgsUsage: "[place]",
				Action:    saveAction,
			},
			{
				Name:   "saved",
				Usage:  "list saved places",
				Action: savedAction,
			},
			{
				Name:      "forget",
				Usage:     "remove a saved place by its number",
				ArgsUsage: "<number>",
				Action:    forgetAction,
			},
			{
				Name:   "bot",
				Usage:  "run the Discord bot",
				Action: botAction,
			},
		},
	}
}

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		slog.Error("Command failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
