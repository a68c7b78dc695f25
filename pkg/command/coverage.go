package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/notjagan/pokeguide/pkg/model"
	"github.com/notjagan/pokeguide/pkg/typechart"
)

type coverageMove struct {
	Name refField `option:"move"`
}

type coverageType struct {
	Name discordField[string] `option:"type"`
}

type coverageOptions struct {
	Move *coverageMove `option:"move"`
	Type *coverageType `option:"type"`
}

type coverageResponder struct {
	autocompleteLimit int
	emojis            Emojis
}

func (resp coverageResponder) Handle(
	ctx context.Context,
	env *Env,
	sess *discordgo.Session,
	interaction *discordgo.InteractionCreate,
	opt *coverageOptions,
) (*discordgo.InteractionResponseData, error) {
	vc := env.Resolver.Normalize(env.Guild.Version())
	chart := env.Resolver.TypeChartFor(vc)

	titleStrings := make([]string, 0, 2)
	var attack typechart.Type
	switch {
	case opt.Move != nil:
		move, err := env.Resolver.Move(ctx, opt.Move.Name.Ref, vc, env.Guild.Language())
		if err != nil {
			if data, ok := missing(err, "move"); ok {
				return data, nil
			}
			return nil, fmt.Errorf("could not resolve move %q: %w", opt.Move.Name.Text, err)
		}

		titleStrings = append(titleStrings, move.Name)
		attack = move.Type
	case opt.Type != nil:
		t, ok := parseType(env, opt.Type.Name.Value)
		if !ok {
			return &discordgo.InteractionResponseData{
				Content: fmt.Sprintf("No type named %q exists in this generation.", opt.Type.Name.Value),
			}, nil
		}
		attack = t
	default:
		return nil, fmt.Errorf("unrecognized subcommand for command \"coverage\": %w", ErrCommandFormat)
	}

	label := typeLabeler(env, resp.emojis)
	titleStrings = append(titleStrings, label(attack))

	fields := efficaciesToFields(typechart.AttackProfile(chart, attack), true, efficacyNames{
		doubleStrong: "Super Effective (4x)",
		strong:       "Super Effective (2x)",
		neutral:      "Neutral (1x)",
		weak:         "Resists (0.5x)",
		doubleWeak:   "Resists (0.25x)",
		immune:       "Immune",
	}, label)

	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{
			{
				Title:       strings.Join(titleStrings, " "),
				Description: fmt.Sprintf("Offensive type chart ▸ %s", vc),
				Fields:      fields,
			},
		},
	}, nil
}

func (resp coverageResponder) Autocomplete(
	ctx context.Context,
	env *Env,
	sess *discordgo.Session,
	interaction *discordgo.InteractionCreate,
	opt *coverageOptions,
) ([]*discordgo.ApplicationCommandOptionChoice, error) {
	switch {
	case opt.Move != nil:
		if opt.Move.Name.Focused {
			return searchChoices(ctx, env, model.KindMove, opt.Move.Name.Text, resp.autocompleteLimit)
		}
	case opt.Type != nil:
		if opt.Type.Name.Focused {
			return typeChoices(env, opt.Type.Name.Value, resp.autocompleteLimit), nil
		}
	default:
		return nil, fmt.Errorf("no recognized subcommand in focus: %w", ErrCommandFormat)
	}

	return nil, fmt.Errorf("no recognized field in focus: %w", ErrCommandFormat)
}

func (builder *Builder) coverage(ctx context.Context) (Command, error) {
	resp := coverageResponder{
		autocompleteLimit: builder.autocompleteLimit,
		emojis:            builder.emojis,
	}

	return command[coverageOptions]{
		handle:       resp.Handle,
		autocomplete: resp.Autocomplete,
		applicationCommand: &discordgo.ApplicationCommand{
			Name:        "coverage",
			Description: "View type chart for an attacking move/type combination.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "move",
					Description: "View type chart for an attacking move",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:         discordgo.ApplicationCommandOptionString,
							Name:         "move",
							Description:  "Name of the move",
							Required:     true,
							Autocomplete: true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "type",
					Description: "View type chart for an attacking type",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:         discordgo.ApplicationCommandOptionString,
							Name:         "type",
							Description:  "Name of the type",
							Required:     true,
							Autocomplete: true,
						},
					},
				},
			},
		},
	}, nil
}
