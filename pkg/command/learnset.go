package command

import (
	"context"
	"fmt"
	"slices"

	"github.com/bwmarrin/discordgo"

	"github.com/notjagan/pokeguide/pkg/model"
	"github.com/notjagan/pokeguide/pkg/resolver"
)

type learnsetOptions struct {
	PokemonName refField `option:"pokemon"`
	MaxLevel    *int     `option:"max_level"`
	EggMoves    *bool    `option:"egg_moves"`
}

type learnsetResponder struct {
	autocompleteLimit int
	learnMethodNames  []model.LearnMethodName
	emojis            Emojis
}

// learnable filters a pokemon's moves down to the requested methods and
// level cap. The cap only applies to level-up moves.
func (resp learnsetResponder) learnable(moves []resolver.LearnableMove, opt learnsetOptions) []resolver.LearnableMove {
	methods := slices.Clone(resp.learnMethodNames)
	if opt.EggMoves != nil && *opt.EggMoves {
		methods = append(methods, model.Egg)
	}

	out := make([]resolver.LearnableMove, 0, len(moves))
	for _, m := range moves {
		if !slices.Contains(methods, m.Method) {
			continue
		}
		if opt.MaxLevel != nil && m.Method == model.LevelUp && m.Level > *opt.MaxLevel {
			continue
		}
		out = append(out, m)
	}
	return out
}

func (resp learnsetResponder) Paginate(
	ctx context.Context,
	env *Env,
	sess *discordgo.Session,
	interaction *discordgo.InteractionCreate,
	p paginator[learnsetOptions],
) (*discordgo.InteractionResponseData, error) {
	vc := env.Resolver.Normalize(env.Guild.Version())
	pokemon, err := env.Resolver.Pokemon(ctx, p.Options.PokemonName.Ref, vc, env.Guild.Language())
	if err != nil {
		if data, ok := missing(err, "Pokemon"); ok {
			return data, nil
		}
		return nil, fmt.Errorf("could not resolve pokemon %q: %w", p.Options.PokemonName.Text, err)
	}

	moves := resp.learnable(pokemon.Moves, p.Options)
	start := min(p.Page.Offset, len(moves))
	end := min(start+p.Page.Limit, len(moves))
	hasNext := end < len(moves)

	embed := &discordgo.MessageEmbed{
		Title:  fmt.Sprintf("%s, %s", pokemon.Name, vc),
		Fields: movesToFields(moves[start:end], typeLabeler(env, resp.emojis)),
	}
	if p.Options.MaxLevel != nil {
		embed.Description = fmt.Sprintf("Max Lv. %d", *p.Options.MaxLevel)
	}
	if len(moves) == 0 {
		embed.Description = "No moves learned."
	} else {
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("%d–%d of %d", start+1, end, len(moves)),
		}
	}

	buttons, err := p.moveButtons(hasNext, "learnset")
	if err != nil {
		return nil, fmt.Errorf("failed to generate pagination buttons: %w", err)
	}
	var components []discordgo.MessageComponent
	if buttons != nil {
		components = []discordgo.MessageComponent{buttons}
	}

	return &discordgo.InteractionResponseData{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: components,
	}, nil
}

func (resp learnsetResponder) Autocomplete(
	ctx context.Context,
	env *Env,
	sess *discordgo.Session,
	interaction *discordgo.InteractionCreate,
	opt *learnsetOptions,
) ([]*discordgo.ApplicationCommandOptionChoice, error) {
	switch {
	case opt.PokemonName.Focused:
		return searchChoices(ctx, env, model.KindPokemon, opt.PokemonName.Text, resp.autocompleteLimit)
	default:
		return nil, fmt.Errorf("no recognized field in focus: %w", ErrCommandFormat)
	}
}

func (builder *Builder) learnset(ctx context.Context) (Command, error) {
	minLevel := 1.0
	maxLevel := 100.0

	resp := learnsetResponder{
		autocompleteLimit: builder.autocompleteLimit,
		learnMethodNames: []model.LearnMethodName{
			model.LevelUp,
		},
		emojis: builder.emojis,
	}

	return command[learnsetOptions]{
		paginate:     resp.Paginate,
		autocomplete: resp.Autocomplete,
		limit:        builder.moveLimit,
		applicationCommand: &discordgo.ApplicationCommand{
			Name:        "learnset",
			Description: "Learnset for a given Pokemon.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:         discordgo.ApplicationCommandOptionString,
					Name:         "pokemon",
					Description:  "Name of the Pokemon",
					Required:     true,
					Autocomplete: true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "max_level",
					Description: "Level cap for learnset",
					Required:    false,
					MinValue:    &minLevel,
					MaxValue:    maxLevel,
				},
				{
					Type:        discordgo.ApplicationCommandOptionBoolean,
					Name:        "egg_moves",
					Description: "Include egg moves",
					Required:    false,
				},
			},
		},
	}, nil
}
