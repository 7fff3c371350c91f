package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/FlameInTheDark/uwuweather/internal/report"
	"github.com/FlameInTheDark/uwuweather/internal/session"
	"github.com/FlameInTheDark/uwuweather/internal/state"
	"github.com/FlameInTheDark/uwuweather/internal/units"
)

type weatherArgs struct {
	Place string `mapstructure:"place"`
}

type unitsArgs struct {
	System string `mapstructure:"system"`
}

type forgetArgs struct {
	Number int `mapstructure:"number"`
}

func (a *App) weatherHandler(s *discordgo.Session, i *discordgo.InteractionCreate) {
	var args weatherArgs
	if err := decodeOptions(i.ApplicationCommandData().Options, &args); err != nil {
		slog.Warn("Unable to decode options", slog.String("error", err.Error()))
		a.errorResponse(s, i)
		return
	}

	err := a.thinkingResponse(s, i)
	if err != nil {
		return
	}

	ctx, cancel := a.requestContext()
	defer cancel()
	sess := a.userSession(interactionUserID(i))

	start := time.Now()
	var rep *report.Report
	if strings.TrimSpace(args.Place) == "" {
		rep, err = sess.Boot(ctx, "")
	} else {
		_, rep, err = sess.Search(ctx, args.Place)
	}
	if err != nil {
		a.editError(i, err)
		return
	}
	a.editEmbed(i, reportEmbed(rep, time.Since(start)))
}

func (a *App) unitsHandler(s *discordgo.Session, i *discordgo.InteractionCreate) {
	var args unitsArgs
	if err := decodeOptions(i.ApplicationCommandData().Options, &args); err != nil {
		slog.Warn("Unable to decode options", slog.String("error", err.Error()))
		a.errorResponse(s, i)
		return
	}

	err := a.thinkingResponse(s, i)
	if err != nil {
		return
	}

	ctx, cancel := a.requestContext()
	defer cancel()
	sess := a.userSession(interactionUserID(i))

	start := time.Now()
	var (
		u   units.System
		rep *report.Report
	)
	switch args.System {
	case "":
		u = sess.Units()
		a.editText(i, "Units", fmt.Sprintf("You are using %s (%s, %s).", u, u.TemperatureGlyph(), u.WindGlyph()))
		return
	case "toggle":
		u, rep, err = sess.ToggleUnits(ctx)
	default:
		u, _ = units.Parse(args.System)
		rep, err = sess.SetUnits(ctx, u)
	}
	if err != nil {
		a.editError(i, err)
		return
	}
	if rep == nil {
		a.editText(i, "Units", fmt.Sprintf("Switched to %s (%s, %s).", u, u.TemperatureGlyph(), u.WindGlyph()))
		return
	}
	a.editEmbed(i, reportEmbed(rep, time.Since(start)))
}

func (a *App) saveHandler(s *discordgo.Session, i *discordgo.InteractionCreate) {
	sess := a.userSession(interactionUserID(i))
	active, _ := sess.Current().Get()

	added, err := sess.SaveCurrent()
	switch {
	case errors.Is(err, session.ErrNoActiveLocation):
		a.textResponse(s, i, "Save", "Load a location first with /weather.")
	case err != nil:
		slog.Error("Unable to save place", slog.String("error", err.Error()))
		a.errorResponse(s, i)
	case added:
		a.textResponse(s, i, "Save", fmt.Sprintf("Saved %s %s.", report.Marker(active), active.Label))
	default:
		a.textResponse(s, i, "Save", fmt.Sprintf("%s is already saved.", active.Label))
	}
}

func (a *App) savedHandler(s *discordgo.Session, i *discordgo.InteractionCreate) {
	sess := a.userSession(interactionUserID(i))
	a.textResponse(s, i, "Saved places", savedList(sess.Saved()))
}

func (a *App) forgetHandler(s *discordgo.Session, i *discordgo.InteractionCreate) {
	var args forgetArgs
	if err := decodeOptions(i.ApplicationCommandData().Options, &args); err != nil {
		slog.Warn("Unable to decode options", slog.String("error", err.Error()))
		a.errorResponse(s, i)
		return
	}

	sess := a.userSession(interactionUserID(i))
	removed, err := sess.RemoveSaved(args.Number - 1)
	switch {
	case errors.Is(err, state.ErrIndexOutOfRange):
		a.textResponse(s, i, "Forget", fmt.Sprintf("There is no saved place number %d.", args.Number))
	case err != nil:
		slog.Error("Unable to remove place", slog.String("error", err.Error()))
		a.errorResponse(s, i)
	default:
		a.textResponse(s, i, "Forget", fmt.Sprintf("Removed %s.", removed.Label))
	}
}

// editError turns a session error into a user-facing message on the
// deferred response.
func (a *App) editError(i *discordgo.InteractionCreate, err error) {
	switch {
	case errors.Is(err, session.ErrNoMatch):
		a.editText(i, "Weather", "No matching location found. Try a different spelling.")
	case errors.Is(err, session.ErrSuperseded):
		a.editText(i, "Weather", "A newer request replaced this one.")
	default:
		slog.Error("Unable to get weather forecast", slog.String("error", err.Error()))
		a.editText(i, "Error", "Unable to get weather forecast. Try again later.")
	}
}

func (a *App) editEmbed(i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	respEdit := &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	}
	_, err := a.s.InteractionResponseEdit(i.Interaction, respEdit)
	if err != nil {
		slog.Error("Unable to send response", slog.String("error", err.Error()))
	}
}

func (a *App) editText(i *discordgo.InteractionCreate, title, text string) {
	a.editEmbed(i, textEmbed(title, text))
}

func (a *App) textResponse(s *discordgo.Session, i *discordgo.InteractionCreate, title, text string) {
	resp := &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{textEmbed(title, text)},
		},
	}
	err := s.InteractionRespond(i.Interaction, resp)
	if err != nil {
		slog.Error("Unable to send response", slog.String("error", err.Error()))
	}
}

func (a *App) thinkingResponse(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	resp := &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsLoading,
			Embeds: []*discordgo.MessageEmbed{
				{
					Author: &discordgo.MessageEmbedAuthor{
						Name: "Looking at the sky...",
					},
				},
			},
		}}
	err := s.InteractionRespond(i.Interaction, resp)
	if err != nil {
		slog.Error("Unable to send response", slog.String("error", err.Error()))
		return err
	}
	return nil
}

func (a *App) errorResponse(s *discordgo.Session, i *discordgo.InteractionCreate) {
	resp := &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
			Embeds: []*discordgo.MessageEmbed{
				{
					Author: &discordgo.MessageEmbedAuthor{
						Name: "Error",
					},
				},
			},
		}}
	err := s.InteractionRespond(i.Interaction, resp)
	if err != nil {
		slog.Error("Unable to send response", slog.String("error", err.Error()))
	}
}
