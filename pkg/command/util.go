package command

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"

	"github.com/notjagan/pokeguide/pkg/model"
	"github.com/notjagan/pokeguide/pkg/resolver"
	"github.com/notjagan/pokeguide/pkg/search"
	"github.com/notjagan/pokeguide/pkg/typechart"
)

var ErrCommandFormat = errors.New("invalid command format")

var ErrMissingResourceGuild = errors.New("resource guild not found")

// missing turns resolution failures a user can act on into a reply.
func missing(err error, noun string) (*discordgo.InteractionResponseData, bool) {
	var content string
	switch {
	case errors.Is(err, model.ErrWrongGeneration):
		content = fmt.Sprintf("The specified %s does not exist in this generation.", noun)
	case errors.Is(err, model.ErrNotFound):
		content = fmt.Sprintf("No %s found with that name.", noun)
	case errors.Is(err, model.ErrUpstreamUnavailable):
		content = "The Pokedex is unavailable right now. Try again later."
	default:
		return nil, false
	}

	return &discordgo.InteractionResponseData{Content: content}, true
}

func entryChoices(entries []search.Entry, limit int) []*discordgo.ApplicationCommandOptionChoice {
	if len(entries) > limit {
		entries = entries[:limit]
	}

	choices := make([]*discordgo.ApplicationCommandOptionChoice, len(entries))
	for i, e := range entries {
		choices[i] = &discordgo.ApplicationCommandOptionChoice{
			Name:  e.Name,
			Value: e.Identifier,
		}
	}

	return choices
}

// searchChoices completes an entity name from the guild's search index. An
// empty query lists the first entries in index order.
func searchChoices(ctx context.Context, env *Env, kind model.Kind, query string, limit int) ([]*discordgo.ApplicationCommandOptionChoice, error) {
	idx, err := env.Search.Build(ctx, env.Guild.Version(), env.Guild.Language())
	if err != nil {
		return nil, fmt.Errorf("error while building search index: %w", err)
	}

	entries := idx.Category(kind)
	if strings.TrimSpace(query) != "" {
		entries = search.Filter(entries, query)
	}

	return entryChoices(entries, limit), nil
}

// typeChoices completes a type name among the types of the guild's
// generation.
func typeChoices(env *Env, query string, limit int) []*discordgo.ApplicationCommandOptionChoice {
	tables := env.Resolver.Tables()
	vc := env.Resolver.Normalize(env.Guild.Version())
	lang := env.Guild.Language()

	var entries []search.Entry
	for _, t := range tables.TypesIn(vc.Generation) {
		entries = append(entries, search.Entry{Identifier: t, Name: tables.TypeName(t, lang)})
	}
	if strings.TrimSpace(query) != "" {
		entries = search.Filter(entries, query)
	}

	return entryChoices(entries, limit)
}

// parseType validates a type option against the guild's generation.
func parseType(env *Env, name string) (typechart.Type, bool) {
	vc := env.Resolver.Normalize(env.Guild.Version())
	for _, t := range env.Resolver.Tables().TypesIn(vc.Generation) {
		if t == strings.ToLower(strings.TrimSpace(name)) {
			return typechart.Type(t), true
		}
	}
	return "", false
}

func typeLabeler(env *Env, emojis Emojis) func(typechart.Type) string {
	tables := env.Resolver.Tables()
	lang := env.Guild.Language()
	return func(t typechart.Type) string {
		return emojis.Label(string(t), tables.TypeName(string(t), lang))
	}
}

func labels(types []typechart.Type, label func(typechart.Type) string) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = label(t)
	}
	return out
}

// maxFieldValue is Discord's limit on embed field values.
const maxFieldValue = 1024

// joinField joins values for an embed field, dropping trailing values that
// would not fit.
func joinField(values []string, sep string) string {
	if len(values) == 0 {
		return "_None_"
	}

	var b strings.Builder
	for i, v := range values {
		next := v
		if i > 0 {
			next = sep + v
		}
		if b.Len()+len(next)+len(sep)+len("…") > maxFieldValue {
			if i == 0 {
				return truncate(v, maxFieldValue)
			}
			b.WriteString(sep + "…")
			break
		}
		b.WriteString(next)
	}
	return b.String()
}

// truncate shortens s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n - len("…")
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "…"
}

func movesToFields(moves []resolver.LearnableMove, label func(typechart.Type) string) []*discordgo.MessageEmbedField {
	fields := make([]*discordgo.MessageEmbedField, len(moves))
	for i, move := range moves {
		var name string
		switch move.Method {
		case model.LevelUp:
			name = fmt.Sprintf("Lv. %-2d ▸ %s", move.Level, move.Name)
		case model.Egg:
			name = fmt.Sprintf("Egg ▸ %s", move.Name)
		case model.Machine:
			name = fmt.Sprintf("%s ▸ %s", move.Machine, move.Name)
		default:
			name = fmt.Sprintf("%s ▸ %s", model.IdentifierName(string(move.Method)), move.Name)
		}

		values := make([]string, 0, 2)
		if move.Type != "" {
			values = append(values, label(move.Type))
		}
		values = append(values, fmt.Sprintf("`%s`", move.VersionGroup))

		fields[i] = &discordgo.MessageEmbedField{
			Name:  name,
			Value: strings.Join(values, " ▸ "),
		}
	}

	return fields
}

func (p paginator[T]) moveButtons(hasNext bool, cmdName string) (*discordgo.ActionsRow, error) {
	if p.Page.Offset == 0 && !hasNext {
		return nil, nil
	}

	phome := paginator[T]{
		Options: p.Options,
		Page: Page{
			Limit:  p.Page.Limit,
			Offset: 0,
		},
	}
	homeID, err := customID(phome, cmdName)
	if err != nil {
		return nil, fmt.Errorf("failed to create home button: %w", err)
	}
	homeButton := discordgo.Button{
		Style:    discordgo.PrimaryButton,
		Label:    "⏮",
		CustomID: homeID,
		Disabled: p.Page.Offset == 0,
	}

	prevOffset := p.Page.Offset - p.Page.Limit
	pprev := paginator[T]{
		Options: p.Options,
		Page: Page{
			Limit:  p.Page.Limit,
			Offset: max(prevOffset, 0),
		},
	}
	prevID, err := customID(pprev, cmdName)
	if err != nil {
		return nil, fmt.Errorf("failed to create previous button: %w", err)
	}
	prevButton := discordgo.Button{
		Style:    discordgo.PrimaryButton,
		Label:    "⏴",
		CustomID: prevID,
		Disabled: prevOffset < 0,
	}

	pnext := paginator[T]{
		Options: p.Options,
		Page: Page{
			Limit:  p.Page.Limit,
			Offset: p.Page.Offset + p.Page.Limit,
		},
	}
	nextID, err := customID(pnext, cmdName)
	if err != nil {
		return nil, fmt.Errorf("failed to create next button: %w", err)
	}
	nextButton := discordgo.Button{
		Style:    discordgo.PrimaryButton,
		Label:    "⏵",
		CustomID: nextID,
		Disabled: !hasNext,
	}

	return &discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			homeButton,
			prevButton,
			nextButton,
		},
	}, nil
}

// followUpButton replies to the message with another command's response.
func followUpButton[T any](cmdName string, opt T, button discordgo.Button) (discordgo.Button, error) {
	id, err := customID(followUp[T]{Options: opt}, cmdName)
	if err != nil {
		return discordgo.Button{}, fmt.Errorf("failed to create follow-up button for %q: %w", cmdName, err)
	}

	button.CustomID = id
	if button.Style == 0 {
		button.Style = discordgo.SecondaryButton
	}
	return button, nil
}

type efficacyNames struct {
	doubleStrong string
	strong       string
	neutral      string
	weak         string
	doubleWeak   string
	immune       string
}

// efficaciesToFields lays a matchup profile out as embed fields, strongest
// first. With includeAll the single-step buckets are always shown.
func efficaciesToFields(
	profile typechart.Profile,
	includeAll bool,
	names efficacyNames,
	label func(typechart.Type) string,
) []*discordgo.MessageEmbedField {
	rows := []struct {
		bucket typechart.Bucket
		name   string
		always bool
	}{
		{typechart.BucketQuadruple, names.doubleStrong, false},
		{typechart.BucketDouble, names.strong, includeAll},
		{typechart.BucketNeutral, names.neutral, includeAll},
		{typechart.BucketHalf, names.weak, includeAll},
		{typechart.BucketQuarter, names.doubleWeak, false},
		{typechart.BucketImmune, names.immune, includeAll},
	}

	fields := make([]*discordgo.MessageEmbedField, 0, len(rows))
	for _, row := range rows {
		if row.name == "" {
			continue
		}
		types := profile.In(row.bucket)
		if len(types) == 0 && !row.always {
			continue
		}
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  row.name,
			Value: joinField(labels(types, label), " "),
		})
	}

	return fields
}
