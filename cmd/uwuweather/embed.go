package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/FlameInTheDark/uwuweather/internal/place"
	"github.com/FlameInTheDark/uwuweather/internal/report"
)

func reportEmbed(rep *report.Report, took time.Duration) *discordgo.MessageEmbed {
	c := rep.Current
	fields := []*discordgo.MessageEmbedField{
		{Name: "Temperature", Value: c.Temperature, Inline: true},
		{Name: "Feels like", Value: c.Apparent, Inline: true},
		{Name: "Humidity", Value: c.Humidity, Inline: true},
		{Name: "Wind", Value: c.Wind, Inline: true},
		{Name: "Gusts", Value: c.Gusts, Inline: true},
		{Name: "Pressure", Value: c.Pressure, Inline: true},
		{Name: "Cloud cover", Value: c.CloudCover, Inline: true},
		{Name: "Precipitation", Value: c.Precipitation, Inline: true},
	}

	if len(rep.Nowcast) > 0 {
		var b strings.Builder
		for _, n := range rep.Nowcast {
			b.WriteString(fmt.Sprintf("`%s` %s\n", n.Label, n.Value))
		}
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  "Next 2 hours (" + rep.NowcastRange + ")",
			Value: CropText(b.String(), maxFieldValue),
		})
	}
	if len(rep.Hourly) > 0 {
		var b strings.Builder
		for _, h := range rep.Hourly {
			b.WriteString(fmt.Sprintf("`%s` %s %s · %s\n", h.Label, h.Icon.Emoji(), h.Temperature, h.Precipitation))
		}
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  "Next 24 hours",
			Value: CropText(b.String(), maxFieldValue),
		})
	}
	if len(rep.Daily) > 0 {
		var b strings.Builder
		for _, d := range rep.Daily {
			b.WriteString(fmt.Sprintf("`%s` %s %s · %s\n", d.Label, d.Icon.Emoji(), d.Temperature, d.Precipitation))
		}
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  "Next 5 days",
			Value: CropText(b.String(), maxFieldValue),
		})
	}

	footer := fmt.Sprintf("Units: %s", rep.UnitsLabel)
	if rep.Timezone != "" {
		footer += " · " + rep.Timezone
	}
	footer += fmt.Sprintf(" · Response time: %.2fs", took.Seconds())

	return &discordgo.MessageEmbed{
		Author: &discordgo.MessageEmbedAuthor{
			Name: report.Marker(rep.Location) + " " + rep.Location.Label,
		},
		Title:  c.Icon.Emoji() + " " + c.Summary,
		Fields: fields,
		Footer: &discordgo.MessageEmbedFooter{
			Text: footer,
		},
	}
}

func textEmbed(title, text string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Author: &discordgo.MessageEmbedAuthor{
			Name: title,
		},
		Description: CropText(text, maxDescription),
	}
}

func savedList(saved []place.Location) string {
	var b strings.Builder
	writeSaved(&b, saved)
	return b.String()
}
