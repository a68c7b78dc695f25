package command

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/notjagan/pokeguide/pkg/model"
)

type languageOptions struct {
	LocalizationCode *string `option:"language"`
}

type language struct {
	code model.LocalizationCode
	name string
}

var languages = []language{
	{model.LocalizationCodeKorean, "한국어"},
	{model.LocalizationCodeEnglish, "English"},
	{"ja", "日本語"},
	{"fr", "Français"},
	{"de", "Deutsch"},
	{"es", "Español"},
	{"it", "Italiano"},
	{"zh-Hans", "简体中文"},
	{"zh-Hant", "繁體中文"},
}

func languageName(code model.LocalizationCode) string {
	for _, l := range languages {
		if l.code == code {
			return l.name
		}
	}
	return string(code)
}

type languageResponder struct{}

func (resp languageResponder) Handle(
	ctx context.Context,
	env *Env,
	sess *discordgo.Session,
	interaction *discordgo.InteractionCreate,
	opt *languageOptions,
) (*discordgo.InteractionResponseData, error) {
	if opt.LocalizationCode == nil {
		return &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("Language is currently %q.", languageName(env.Guild.Language())),
		}, nil
	}

	env.Guild.SetLanguage(model.LocalizationCode(*opt.LocalizationCode))
	return &discordgo.InteractionResponseData{
		Content: "Language successfully changed.",
	}, nil
}

func (builder *Builder) language(ctx context.Context) (Command, error) {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, len(languages))
	for i, l := range languages {
		choices[i] = &discordgo.ApplicationCommandOptionChoice{
			Name:  l.name,
			Value: string(l.code),
		}
	}

	return command[languageOptions]{
		handle: languageResponder{}.Handle,
		applicationCommand: &discordgo.ApplicationCommand{
			Name:        "language",
			Description: "Get/set the current Pokedex language.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "language",
					Description: "Language to set Pokedex to",
					Required:    false,
					Choices:     choices,
				},
			},
		},
	}, nil
}
