package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	mcp_golang "github.com/metoro-io/mcp-golang"
	"github.com/metoro-io/mcp-golang/transport/http"
	"github.com/urfave/cli/v3"

	"github.com/FlameInTheDark/uwuweather/internal/config"
)

func main() {
	cmd := &cli.Command{
		Name:        "tool",
		Description: "MCP server with place search and weather forecast tools",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"cfg"},
				Usage:   "config file path",
				Value:   "./tool.yaml",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return serve(config.NewConfig(c.String("config")))
		},
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		panic(err)
	}
}

func serve(cfg config.Config) error {
	tools := NewTools(cfg)
	defer tools.Close()

	transport := http.NewHTTPTransport("/mcp")
	transport.WithAddr(cfg.MCPAddr)

	server := mcp_golang.NewServer(transport, mcp_golang.WithName("uwuweather"), mcp_golang.WithVersion("1.0.0"))
	err := server.RegisterTool("search_places", "Find places by name. Accepts \"City\", \"City, Region\" or \"City, Region, CC\" with a 2-letter country code.", func(arguments SearchPlacesArguments) (*mcp_golang.ToolResponse, error) {
		slog.Info("search places", slog.String("query", arguments.Query))
		return mcp_golang.NewToolResponse(mcp_golang.NewTextContent(tools.SearchPlaces(arguments))), nil
	})
	if err != nil {
		return err
	}

	err = server.RegisterTool("get_weather_forecast", "Get current conditions, the next 24 hours, the next 5 days and a 2-hour rain nowcast for a place or coordinates. If you need weather forecast you should use this tool!", func(arguments WeatherForecastArguments) (*mcp_golang.ToolResponse, error) {
		slog.Info("get forecast", slog.String("place", arguments.Place))
		return mcp_golang.NewToolResponse(mcp_golang.NewTextContent(tools.Forecast(arguments))), nil
	})
	if err != nil {
		return err
	}

	go func() {
		err := server.Serve()
		if err != nil {
			slog.Error("MCP server stopped", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	slog.Info("Up and running", slog.String("addr", cfg.MCPAddr))
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)
	<-signalCh
	return nil
}
