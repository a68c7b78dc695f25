package command

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/notjagan/pokeguide/pkg/model"
	"github.com/notjagan/pokeguide/pkg/resolver"
	"github.com/notjagan/pokeguide/pkg/typechart"
)

type dexQuery struct {
	Name refField `option:"name"`
}

type dexOptions struct {
	Pokemon *dexQuery `option:"pokemon"`
	Move    *dexQuery `option:"move"`
	Ability *dexQuery `option:"ability"`
	Item    *dexQuery `option:"item"`
}

// selected returns the subcommand that was invoked.
func (opt *dexOptions) selected() (model.Kind, *dexQuery, string, error) {
	switch {
	case opt.Pokemon != nil:
		return model.KindPokemon, opt.Pokemon, "Pokemon", nil
	case opt.Move != nil:
		return model.KindMove, opt.Move, "move", nil
	case opt.Ability != nil:
		return model.KindAbility, opt.Ability, "ability", nil
	case opt.Item != nil:
		return model.KindItem, opt.Item, "item", nil
	default:
		return 0, nil, "", fmt.Errorf("unrecognized subcommand for command \"dex\": %w", ErrCommandFormat)
	}
}

type dexResponder struct {
	autocompleteLimit int
	emojis            Emojis
}

var statNames = map[string]string{
	"hp":              "HP",
	"attack":          "Attack",
	"defense":         "Defense",
	"special-attack":  "Sp. Atk",
	"special-defense": "Sp. Def",
	"speed":           "Speed",
}

func (resp dexResponder) Handle(
	ctx context.Context,
	env *Env,
	sess *discordgo.Session,
	interaction *discordgo.InteractionCreate,
	opt *dexOptions,
) (*discordgo.InteractionResponseData, error) {
	kind, query, noun, err := opt.selected()
	if err != nil {
		return nil, err
	}

	vc := env.Resolver.Normalize(env.Guild.Version())
	resolved, err := env.Resolver.Resolve(ctx, kind, query.Name.Ref, vc, env.Guild.Language())
	if err != nil {
		if data, ok := missing(err, noun); ok {
			return data, nil
		}
		return nil, fmt.Errorf("could not resolve %s %q: %w", kind, query.Name.Text, err)
	}

	label := typeLabeler(env, resp.emojis)
	switch v := resolved.(type) {
	case *resolver.Pokemon:
		return resp.pokemon(v, vc, label)
	case *resolver.Move:
		return resp.move(v, vc, label)
	case *resolver.Ability:
		return resp.ability(v, vc), nil
	case *resolver.Item:
		return resp.item(v, vc), nil
	default:
		return nil, fmt.Errorf("unexpected resolution %T: %w", resolved, ErrCommandFormat)
	}
}

func (resp dexResponder) pokemon(
	pokemon *resolver.Pokemon,
	vc model.VersionContext,
	label func(typechart.Type) string,
) (*discordgo.InteractionResponseData, error) {
	titleStrings := []string{fmt.Sprintf("#%03d %s", pokemon.ID, pokemon.Name)}
	titleStrings = append(titleStrings, labels(pokemon.Types, label)...)

	fields := make([]*discordgo.MessageEmbedField, 0, 12)

	visibleAbilities := make([]string, 0, len(pokemon.Abilities))
	hiddenAbilities := make([]string, 0, len(pokemon.Abilities))
	for _, ability := range pokemon.Abilities {
		if ability.Hidden {
			hiddenAbilities = append(hiddenAbilities, ability.Name)
		} else {
			visibleAbilities = append(visibleAbilities, ability.Name)
		}
	}

	if len(visibleAbilities) > 0 || len(hiddenAbilities) == 0 {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   "Abilities",
			Value:  joinField(visibleAbilities, ", "),
			Inline: true,
		})
	}
	if len(hiddenAbilities) > 0 {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   "Hidden Abilities",
			Value:  joinField(hiddenAbilities, ", "),
			Inline: true,
		})
	}
	fields = append(fields, &discordgo.MessageEmbedField{
		Name:   "Size",
		Value:  fmt.Sprintf("%.1f m ▸ %.1f kg", float64(pokemon.Height)/10, float64(pokemon.Weight)/10),
		Inline: true,
	})

	padding := 3 - len(fields)
	for i := 0; i < padding; i++ {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   "\u200b",
			Value:  "\u200b",
			Inline: true,
		})
	}

	for _, stat := range pokemon.Stats {
		name, ok := statNames[stat.Identifier]
		if !ok {
			name = model.IdentifierName(stat.Identifier)
		}
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   name,
			Value:  strconv.Itoa(stat.Base),
			Inline: true,
		})
	}

	if len(pokemon.HeldItems) > 0 {
		held := make([]string, len(pokemon.HeldItems))
		for i, h := range pokemon.HeldItems {
			held[i] = fmt.Sprintf("%s (%d%%)", h.Name, h.Rarity)
		}
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  "Held Items",
			Value: joinField(held, ", "),
		})
	}

	learnsetButton, err := followUpButton("learnset", learnsetOptions{
		PokemonName: refOf(pokemon.Identifier),
	}, discordgo.Button{Label: "Learnset"})
	if err != nil {
		return nil, fmt.Errorf("could not create follow-up button for learnset: %w", err)
	}

	weakButton, err := followUpButton("weak", weakOptions{
		Pokemon: &weakPokemon{Name: refOf(pokemon.Identifier)},
	}, discordgo.Button{Label: "Type Chart"})
	if err != nil {
		return nil, fmt.Errorf("could not create follow-up button for weak: %w", err)
	}

	embed := &discordgo.MessageEmbed{
		Title:       strings.Join(titleStrings, " "),
		Description: vc.String(),
		Fields:      fields,
	}
	if sprite := pokemon.Sprite.Or(pokemon.Artwork); !sprite.Empty() {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: string(sprite)}
	}

	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{embed},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					learnsetButton,
					weakButton,
				},
			},
		},
	}, nil
}

func optionalStat(v *int, format string) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf(format, *v)
}

func (resp dexResponder) move(
	move *resolver.Move,
	vc model.VersionContext,
	label func(typechart.Type) string,
) (*discordgo.InteractionResponseData, error) {
	fields := []*discordgo.MessageEmbedField{
		{Name: "Power", Value: optionalStat(move.Power, "%d"), Inline: true},
		{Name: "Accuracy", Value: optionalStat(move.Accuracy, "%d%%"), Inline: true},
		{Name: "PP", Value: optionalStat(move.PP, "%d"), Inline: true},
	}
	if move.Priority != 0 {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Priority", Value: fmt.Sprintf("%+d", move.Priority), Inline: true})
	}
	if move.Machine != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Machine", Value: move.Machine, Inline: true})
	}
	if move.Effect != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Effect", Value: truncate(move.Effect, maxFieldValue)})
	}

	coverageButton, err := followUpButton("coverage", coverageOptions{
		Move: &coverageMove{Name: refOf(move.Identifier)},
	}, discordgo.Button{Label: "Type Chart"})
	if err != nil {
		return nil, fmt.Errorf("could not create follow-up button for coverage: %w", err)
	}

	description := []string{vc.String()}
	if move.DamageClass != "" {
		description = append(description, model.IdentifierName(move.DamageClass))
	}

	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{
			{
				Title:       fmt.Sprintf("%s %s", move.Name, label(move.Type)),
				Description: strings.Join(description, " ▸ "),
				Fields:      fields,
				Footer:      flavorFooter(move.FlavorText),
			},
		},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{coverageButton},
			},
		},
	}, nil
}

func (resp dexResponder) ability(ability *resolver.Ability, vc model.VersionContext) *discordgo.InteractionResponseData {
	holders := make([]string, len(ability.Pokemon))
	for i, p := range ability.Pokemon {
		holders[i] = p.Name
		if p.Hidden {
			holders[i] = fmt.Sprintf("_%s_", p.Name)
		}
	}

	fields := make([]*discordgo.MessageEmbedField, 0, 2)
	if ability.Effect != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Effect", Value: truncate(ability.Effect, maxFieldValue)})
	}
	fields = append(fields, &discordgo.MessageEmbedField{Name: "Pokemon", Value: joinField(holders, ", ")})

	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{
			{
				Title:       ability.Name,
				Description: vc.String(),
				Fields:      fields,
				Footer:      flavorFooter(ability.FlavorText),
			},
		},
	}
}

func (resp dexResponder) item(item *resolver.Item, vc model.VersionContext) *discordgo.InteractionResponseData {
	fields := []*discordgo.MessageEmbedField{
		{Name: "Cost", Value: strconv.Itoa(item.Cost), Inline: true},
	}
	if item.Category != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Category", Value: model.IdentifierName(item.Category), Inline: true})
	}
	if item.Effect != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Effect", Value: truncate(item.Effect, maxFieldValue)})
	}
	if len(item.HeldBy) > 0 {
		held := make([]string, len(item.HeldBy))
		for i, h := range item.HeldBy {
			held[i] = fmt.Sprintf("%s (%d%%)", h.Name, h.Rarity)
		}
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Held By", Value: joinField(held, ", ")})
	}

	embed := &discordgo.MessageEmbed{
		Title:       item.Name,
		Description: vc.String(),
		Fields:      fields,
		Footer:      flavorFooter(item.FlavorText),
	}
	if !item.Sprite.Empty() {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: string(item.Sprite)}
	}

	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{embed},
	}
}

func flavorFooter(text string) *discordgo.MessageEmbedFooter {
	if text == "" {
		return nil
	}
	return &discordgo.MessageEmbedFooter{Text: text}
}

func (resp dexResponder) Autocomplete(
	ctx context.Context,
	env *Env,
	sess *discordgo.Session,
	interaction *discordgo.InteractionCreate,
	opt *dexOptions,
) ([]*discordgo.ApplicationCommandOptionChoice, error) {
	kind, query, _, err := opt.selected()
	if err != nil {
		return nil, fmt.Errorf("no recognized subcommand in focus: %w", err)
	}
	if !query.Name.Focused {
		return nil, fmt.Errorf("no recognized field in focus: %w", ErrCommandFormat)
	}

	return searchChoices(ctx, env, kind, query.Name.Text, resp.autocompleteLimit)
}

func dexSubcommand(name string, description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionSubCommand,
		Name:        name,
		Description: description,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:         discordgo.ApplicationCommandOptionString,
				Name:         "name",
				Description:  "Name to look up",
				Required:     true,
				Autocomplete: true,
			},
		},
	}
}

func (builder *Builder) dex(ctx context.Context) (Command, error) {
	resp := dexResponder{
		autocompleteLimit: builder.autocompleteLimit,
		emojis:            builder.emojis,
	}

	return command[dexOptions]{
		handle:       resp.Handle,
		autocomplete: resp.Autocomplete,
		applicationCommand: &discordgo.ApplicationCommand{
			Name:        "dex",
			Description: "Fetch game data for a specified resource.",
			Options: []*discordgo.ApplicationCommandOption{
				dexSubcommand("pokemon", "Fetch data for a Pokemon"),
				dexSubcommand("move", "Fetch data for a move"),
				dexSubcommand("ability", "Fetch data for an ability"),
				dexSubcommand("item", "Fetch data for an item"),
			},
		},
	}, nil
}
