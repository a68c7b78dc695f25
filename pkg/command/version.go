package command

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/notjagan/pokeguide/pkg/model"
	"github.com/notjagan/pokeguide/pkg/search"
)

type versionOptions struct {
	Name       *discordField[string] `option:"version"`
	Generation *int                  `option:"generation"`
}

type versionResponder struct {
	autocompleteLimit int
}

func (resp versionResponder) Handle(
	ctx context.Context,
	env *Env,
	sess *discordgo.Session,
	interaction *discordgo.InteractionCreate,
	opt *versionOptions,
) (*discordgo.InteractionResponseData, error) {
	tables := env.Resolver.Tables()

	var vc model.VersionContext
	switch {
	case opt.Name != nil:
		v, ok := tables.Version(opt.Name.Value)
		if !ok {
			return &discordgo.InteractionResponseData{
				Content: "No version found with that name.",
			}, nil
		}
		vc.Game = v.Identifier
	case opt.Generation != nil:
		if *opt.Generation < 1 || *opt.Generation > tables.LatestGeneration() {
			return &discordgo.InteractionResponseData{
				Content: fmt.Sprintf("Generations range from 1 to %d.", tables.LatestGeneration()),
			}, nil
		}
		vc.Generation = *opt.Generation
	default:
		return &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("Currently using Pokemon %s.", env.Resolver.Normalize(env.Guild.Version())),
		}, nil
	}

	vc = env.Resolver.Normalize(vc)
	env.Guild.SetVersion(vc)
	return &discordgo.InteractionResponseData{
		Content: fmt.Sprintf("Version successfully changed to %s.", vc),
	}, nil
}

func (resp versionResponder) Autocomplete(
	ctx context.Context,
	env *Env,
	sess *discordgo.Session,
	interaction *discordgo.InteractionCreate,
	opt *versionOptions,
) ([]*discordgo.ApplicationCommandOptionChoice, error) {
	if opt.Name == nil || !opt.Name.Focused {
		return nil, fmt.Errorf("no recognized field in focus: %w", ErrCommandFormat)
	}

	versions := env.Resolver.Tables().Versions()
	entries := make([]search.Entry, len(versions))
	for i, v := range versions {
		entries[i] = search.Entry{ID: v.ID, Identifier: v.Identifier, Name: model.IdentifierName(v.Identifier)}
	}
	if opt.Name.Value != "" {
		entries = search.Filter(entries, opt.Name.Value)
	}

	return entryChoices(entries, resp.autocompleteLimit), nil
}

func (builder *Builder) version(ctx context.Context) (Command, error) {
	resp := versionResponder{
		autocompleteLimit: builder.autocompleteLimit,
	}
	minGeneration := 1.0

	return command[versionOptions]{
		handle:       resp.Handle,
		autocomplete: resp.Autocomplete,
		applicationCommand: &discordgo.ApplicationCommand{
			Name:        "version",
			Description: "Get/set the current Pokedex game version.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:         discordgo.ApplicationCommandOptionString,
					Name:         "version",
					Description:  "Game version to pull data from",
					Required:     false,
					Autocomplete: true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "generation",
					Description: "Generation to pull data from",
					Required:    false,
					MinValue:    &minGeneration,
				},
			},
		},
	}, nil
}
