package main

import (
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

var (
	integrationTypes = &[]discordgo.ApplicationIntegrationType{
		discordgo.ApplicationIntegrationGuildInstall,
		discordgo.ApplicationIntegrationUserInstall,
	}
	interactionContexts = &[]discordgo.InteractionContextType{
		discordgo.InteractionContextGuild,
		discordgo.InteractionContextBotDM,
		discordgo.InteractionContextPrivateChannel,
	}
)

func (a *App) createCommands() {
	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "weather",
			Description: "Show the weather for a place, or for your last place",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "place",
					Description: "City, optionally with region and 2-letter country code",
					Required:    false,
				},
			},
			IntegrationTypes: integrationTypes,
			Contexts:         interactionContexts,
		},
		{
			Name:        "units",
			Description: "Show or change your unit system",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "system",
					Description: "metric, imperial or toggle",
					Required:    false,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "metric", Value: "metric"},
						{Name: "imperial", Value: "imperial"},
						{Name: "toggle", Value: "toggle"},
					},
				},
			},
			IntegrationTypes: integrationTypes,
			Contexts:         interactionContexts,
		},
		{
			Name:             "save",
			Description:      "Save the place you are looking at",
			IntegrationTypes: integrationTypes,
			Contexts:         interactionContexts,
		},
		{
			Name:             "saved",
			Description:      "List your saved places",
			IntegrationTypes: integrationTypes,
			Contexts:         interactionContexts,
		},
		{
			Name:        "forget",
			Description: "Remove a saved place",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "number",
					Description: "number shown by /saved",
					Required:    true,
				},
			},
			IntegrationTypes: integrationTypes,
			Contexts:         interactionContexts,
		},
	}

	for _, command := range commands {
		_, err := a.s.ApplicationCommandCreate(a.s.State.User.ID, "", command)
		if err != nil {
			slog.Error("Unable to create command", slog.String("command", command.Name), slog.String("error", err.Error()))
		}
	}
}

func (a *App) registerHandlers() {
	a.handlers = map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate){
		"weather": a.weatherHandler,
		"units":   a.unitsHandler,
		"save":    a.saveHandler,
		"saved":   a.savedHandler,
		"forget":  a.forgetHandler,
	}

	a.s.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		if i.Type != discordgo.InteractionApplicationCommand {
			return
		}
		if h, ok := a.handlers[i.ApplicationCommandData().Name]; ok {
			h(s, i)
		}
	})
}
