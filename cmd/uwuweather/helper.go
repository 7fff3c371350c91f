package main

import (
	"github.com/bwmarrin/discordgo"
	"github.com/go-viper/mapstructure/v2"
)

// Discord embed limits.
const (
	maxDescription = 4096
	maxFieldValue  = 1024
)

func CropText(input string, maxLength int) string {
	runes := []rune(input)
	if len(runes) <= maxLength {
		return input
	}

	return string(runes[:maxLength-3]) + "..."
}

// decodeOptions maps slash-command options by name onto the mapstructure
// tags of out. Integer options arrive as float64 and are converted.
func decodeOptions(options []*discordgo.ApplicationCommandInteractionDataOption, out any) error {
	values := make(map[string]any, len(options))
	for _, o := range options {
		values[o.Name] = o.Value
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(values)
}

// interactionUserID works for guild interactions, where the user sits on
// Member, and for DMs, where it is set directly.
func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return "anonymous"
}
