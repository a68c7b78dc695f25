package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/notjagan/pokeguide/pkg/model"
	"github.com/notjagan/pokeguide/pkg/typechart"
)

type weakPokemon struct {
	Name refField `option:"pokemon"`
}

type weakTypes struct {
	Name1 discordField[string]  `option:"type_1"`
	Name2 *discordField[string] `option:"type_2"`
}

type weakOptions struct {
	Pokemon *weakPokemon `option:"pokemon"`
	Type    *weakTypes   `option:"type"`
}

type weakResponder struct {
	autocompleteLimit int
	emojis            Emojis
}

func (resp weakResponder) Handle(
	ctx context.Context,
	env *Env,
	sess *discordgo.Session,
	interaction *discordgo.InteractionCreate,
	opt *weakOptions,
) (*discordgo.InteractionResponseData, error) {
	vc := env.Resolver.Normalize(env.Guild.Version())
	chart := env.Resolver.TypeChartFor(vc)

	titleStrings := make([]string, 0, 3)
	var types []typechart.Type
	var thumbnail string
	switch {
	case opt.Pokemon != nil:
		pokemon, err := env.Resolver.Pokemon(ctx, opt.Pokemon.Name.Ref, vc, env.Guild.Language())
		if err != nil {
			if data, ok := missing(err, "Pokemon"); ok {
				return data, nil
			}
			return nil, fmt.Errorf("could not resolve pokemon %q: %w", opt.Pokemon.Name.Text, err)
		}

		titleStrings = append(titleStrings, pokemon.Name)
		types = pokemon.Types
		thumbnail = string(pokemon.Sprite.Or(pokemon.Artwork))
	case opt.Type != nil:
		names := []string{opt.Type.Name1.Value}
		if opt.Type.Name2 != nil && opt.Type.Name2.Value != opt.Type.Name1.Value {
			names = append(names, opt.Type.Name2.Value)
		}
		for _, name := range names {
			t, ok := parseType(env, name)
			if !ok {
				return &discordgo.InteractionResponseData{
					Content: fmt.Sprintf("No type named %q exists in this generation.", name),
				}, nil
			}
			types = append(types, t)
		}
	default:
		return nil, fmt.Errorf("unrecognized subcommand for command \"weak\": %w", ErrCommandFormat)
	}

	label := typeLabeler(env, resp.emojis)
	titleStrings = append(titleStrings, labels(types, label)...)

	fields := efficaciesToFields(typechart.DefenseProfile(chart, types...), false, efficacyNames{
		doubleStrong: "Weaknesses (4x)",
		strong:       "Weaknesses (2x)",
		weak:         "Resistances (0.5x)",
		doubleWeak:   "Resistances (0.25x)",
		immune:       "Immunities",
	}, label)

	embed := &discordgo.MessageEmbed{
		Title:       strings.Join(titleStrings, " "),
		Description: fmt.Sprintf("Defensive type chart ▸ %s", vc),
		Fields:      fields,
	}
	if thumbnail != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: thumbnail}
	}

	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{embed},
	}, nil
}

func (resp weakResponder) Autocomplete(
	ctx context.Context,
	env *Env,
	sess *discordgo.Session,
	interaction *discordgo.InteractionCreate,
	opt *weakOptions,
) ([]*discordgo.ApplicationCommandOptionChoice, error) {
	switch {
	case opt.Pokemon != nil:
		if opt.Pokemon.Name.Focused {
			return searchChoices(ctx, env, model.KindPokemon, opt.Pokemon.Name.Text, resp.autocompleteLimit)
		}
	case opt.Type != nil:
		switch {
		case opt.Type.Name1.Focused:
			return typeChoices(env, opt.Type.Name1.Value, resp.autocompleteLimit), nil
		case opt.Type.Name2 != nil && opt.Type.Name2.Focused:
			return typeChoices(env, opt.Type.Name2.Value, resp.autocompleteLimit), nil
		}
	default:
		return nil, fmt.Errorf("no recognized subcommand in focus: %w", ErrCommandFormat)
	}

	return nil, fmt.Errorf("no recognized field in focus: %w", ErrCommandFormat)
}

func (builder *Builder) weak(ctx context.Context) (Command, error) {
	resp := weakResponder{
		autocompleteLimit: builder.autocompleteLimit,
		emojis:            builder.emojis,
	}

	return command[weakOptions]{
		handle:       resp.Handle,
		autocomplete: resp.Autocomplete,
		applicationCommand: &discordgo.ApplicationCommand{
			Name:        "weak",
			Description: "View type chart against a defending Pokemon/type combination.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "pokemon",
					Description: "View type chart against a defending Pokemon",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:         discordgo.ApplicationCommandOptionString,
							Name:         "pokemon",
							Description:  "Name of the Pokemon",
							Required:     true,
							Autocomplete: true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "type",
					Description: "View type chart against a defending type (combination)",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:         discordgo.ApplicationCommandOptionString,
							Name:         "type_1",
							Description:  "Name of the first type",
							Required:     true,
							Autocomplete: true,
						},
						{
							Type:         discordgo.ApplicationCommandOptionString,
							Name:         "type_2",
							Description:  "Name of the second type",
							Required:     false,
							Autocomplete: true,
						},
					},
				},
			},
		},
	}, nil
}
