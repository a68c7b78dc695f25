package command

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notjagan/pokeguide/pkg/cache"
	"github.com/notjagan/pokeguide/pkg/model"
	"github.com/notjagan/pokeguide/pkg/quiz"
	"github.com/notjagan/pokeguide/pkg/resolver/resolvertest"
	"github.com/notjagan/pokeguide/pkg/search"
)

func newEnv(t *testing.T, lang model.LocalizationCode) *Env {
	t.Helper()
	res, _ := resolvertest.New(t)
	return &Env{
		Resolver: res,
		Search:   search.NewBuilder(res, cache.New(cache.Options{}), nil),
		Quizzes:  quiz.NewManager(time.Minute, nil),
		Guild:    NewGuild("guild", lang),
	}
}

func choiceValues(choices []*discordgo.ApplicationCommandOptionChoice) []string {
	values := make([]string, len(choices))
	for i, c := range choices {
		values[i] = c.Value.(string)
	}
	return values
}

func TestDecodeOptions(t *testing.T) {
	t.Run("subcommand", func(t *testing.T) {
		var opt weakOptions
		err := decodeOptions([]*discordgo.ApplicationCommandInteractionDataOption{
			{
				Name: "type",
				Type: discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandInteractionDataOption{
					{Name: "type_1", Type: discordgo.ApplicationCommandOptionString, Value: "water"},
					{Name: "type_2", Type: discordgo.ApplicationCommandOptionString, Value: "gr", Focused: true},
				},
			},
		}, &opt)
		require.NoError(t, err)

		assert.Nil(t, opt.Pokemon)
		require.NotNil(t, opt.Type)
		assert.Equal(t, discordField[string]{Value: "water"}, opt.Type.Name1)
		require.NotNil(t, opt.Type.Name2)
		assert.Equal(t, discordField[string]{Value: "gr", Focused: true}, *opt.Type.Name2)
	})

	t.Run("scalars", func(t *testing.T) {
		var opt learnsetOptions
		err := decodeOptions([]*discordgo.ApplicationCommandInteractionDataOption{
			{Name: "pokemon", Type: discordgo.ApplicationCommandOptionString, Value: "pikachu"},
			{Name: "max_level", Type: discordgo.ApplicationCommandOptionInteger, Value: float64(20)},
			{Name: "egg_moves", Type: discordgo.ApplicationCommandOptionBoolean, Value: true},
		}, &opt)
		require.NoError(t, err)

		assert.Equal(t, "pikachu", opt.PokemonName.Text)
		assert.Equal(t, model.ByIdentifier("pikachu"), opt.PokemonName.Ref)
		require.NotNil(t, opt.MaxLevel)
		assert.Equal(t, 20, *opt.MaxLevel)
		require.NotNil(t, opt.EggMoves)
		assert.True(t, *opt.EggMoves)
	})

	t.Run("empty subcommand", func(t *testing.T) {
		var opt quizOptions
		err := decodeOptions([]*discordgo.ApplicationCommandInteractionDataOption{
			{Name: "next", Type: discordgo.ApplicationCommandOptionSubCommand},
		}, &opt)
		require.NoError(t, err)
		assert.NotNil(t, opt.Next)
		assert.Nil(t, opt.Start)
	})

	t.Run("unknown option", func(t *testing.T) {
		var opt learnsetOptions
		err := decodeOptions([]*discordgo.ApplicationCommandInteractionDataOption{
			{Name: "shiny", Type: discordgo.ApplicationCommandOptionBoolean, Value: true},
		}, &opt)
		assert.ErrorIs(t, err, ErrDecodeOption)
	})

	t.Run("numeric reference", func(t *testing.T) {
		var opt dexOptions
		err := decodeOptions([]*discordgo.ApplicationCommandInteractionDataOption{
			{
				Name: "pokemon",
				Type: discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandInteractionDataOption{
					{Name: "name", Type: discordgo.ApplicationCommandOptionString, Value: " 25 "},
				},
			},
		}, &opt)
		require.NoError(t, err)
		require.NotNil(t, opt.Pokemon)
		assert.Equal(t, model.ByID(25), opt.Pokemon.Name.Ref)
	})

	t.Run("non pointer", func(t *testing.T) {
		var opt learnsetOptions
		assert.ErrorIs(t, decodeOptions(nil, opt), ErrDecodeOption)
	})

	t.Run("mismatched type", func(t *testing.T) {
		var opt learnsetOptions
		err := decodeOptions([]*discordgo.ApplicationCommandInteractionDataOption{
			{Name: "pokemon", Type: discordgo.ApplicationCommandOptionInteger, Value: float64(25)},
		}, &opt)
		assert.ErrorIs(t, err, ErrDecodeOption)
	})
}

func TestCustomIDRoundTrip(t *testing.T) {
	level := 30
	eggs := false
	p := paginator[learnsetOptions]{
		Options: learnsetOptions{
			PokemonName: refOf("charizard-mega-x"),
			MaxLevel:    &level,
			EggMoves:    &eggs,
		},
		Page: Page{Limit: 15, Offset: 45},
	}

	id, err := customID(p, "learnset")
	require.NoError(t, err)
	assert.LessOrEqual(t, len(id), maxCustomIDLength)

	other, err := customID(p, "learnset")
	require.NoError(t, err)
	assert.NotEqual(t, id, other, "button ids carry a nonce")

	press, err := DecodeButton(id)
	require.NoError(t, err)
	assert.Equal(t, "learnset", press.Command)
	assert.Equal(t, paginator[learnsetOptions]{}.Name(), press.action)

	decoded, err := pressState[paginator[learnsetOptions]](press)
	require.NoError(t, err)
	assert.Equal(t, p, decoded)
}

func TestCustomIDErrors(t *testing.T) {
	_, err := DecodeButton("not base64!")
	assert.ErrorIs(t, err, ErrUnrecognizedInteraction)

	_, err = DecodeButton(base64.RawURLEncoding.EncodeToString(appendString(nil, "learnset")))
	assert.ErrorIs(t, err, ErrUnrecognizedInteraction, "missing action byte")

	truncated := append(appendString(nil, "learnset"), 'p', 1)
	press, err := DecodeButton(base64.RawURLEncoding.EncodeToString(truncated))
	require.NoError(t, err)
	_, err = pressState[paginator[learnsetOptions]](press)
	assert.ErrorIs(t, err, ErrDecodeOption)

	long := followUp[weakOptions]{Options: weakOptions{
		Pokemon: &weakPokemon{Name: refOf(strings.Repeat("a", 120))},
	}}
	_, err = customID(long, "weak")
	assert.ErrorIs(t, err, ErrEncodeOptions)
}

func TestEmojis(t *testing.T) {
	emojis := NewEmojis([]*discordgo.Emoji{
		{ID: "1", Name: "fire1"},
		{ID: "2", Name: "fire2"},
		{ID: "3", Name: "water1"},
	})

	assert.Equal(t, "<:fire1:1><:fire2:2>", emojis.Label("fire", "Fire"))
	assert.Equal(t, "Water", emojis.Label("water", "Water"))

	_, err := emojis.Emoji("water")
	assert.ErrorIs(t, err, ErrNoEmoji)
}

func TestJoinField(t *testing.T) {
	assert.Equal(t, "_None_", joinField(nil, ", "))
	assert.Equal(t, "a, b", joinField([]string{"a", "b"}, ", "))

	many := make([]string, 300)
	for i := range many {
		many[i] = "Electric"
	}
	joined := joinField(many, " ")
	assert.LessOrEqual(t, len(joined), maxFieldValue)
	assert.True(t, strings.HasSuffix(joined, " …"))

	long := strings.Repeat("피", 600)
	cut := truncate(long, maxFieldValue)
	assert.LessOrEqual(t, len(cut), maxFieldValue)
	assert.True(t, strings.HasSuffix(cut, "…"))
	assert.Equal(t, cut, joinField([]string{long}, ", "))
}

func TestBuilder(t *testing.T) {
	cmds, err := NewBuilder(nil).All(context.Background())
	require.NoError(t, err)

	names := make([]string, len(cmds))
	for i, cmd := range cmds {
		names[i] = cmd.Name()
		assert.Equal(t, cmd.Name(), cmd.ApplicationCommand().Name)
	}
	assert.Equal(t, []string{"language", "version", "dex", "learnset", "weak", "coverage", "quiz"}, names)
}

func TestLocaleCode(t *testing.T) {
	assert.Equal(t, model.LocalizationCodeKorean, LocaleCode(discordgo.Korean))
	assert.Equal(t, model.LocalizationCodeEnglish, LocaleCode(discordgo.EnglishGB))
	assert.Equal(t, model.DefaultLocalizationCode, LocaleCode(discordgo.Locale("tlh")))
}

func memberInteraction(userID string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Member: &discordgo.Member{User: &discordgo.User{ID: userID}},
	}}
}

func TestCompleteDropsStaleResults(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t, model.LocalizationCodeEnglish)

	started := make(chan struct{})
	release := make(chan struct{})
	cmd := command[dexOptions]{
		applicationCommand: &discordgo.ApplicationCommand{Name: "dex"},
		autocomplete: func(_ context.Context, _ *Env, _ *discordgo.Session, _ *discordgo.InteractionCreate, opt *dexOptions) ([]*discordgo.ApplicationCommandOptionChoice, error) {
			if opt.Pokemon.Name.Text == "pi" {
				close(started)
				<-release
			}
			return []*discordgo.ApplicationCommandOptionChoice{{Name: opt.Pokemon.Name.Text, Value: opt.Pokemon.Name.Text}}, nil
		},
	}

	type result struct {
		choices []*discordgo.ApplicationCommandOptionChoice
		current bool
	}
	slow := make(chan result)
	go func() {
		choices, current, err := cmd.complete(ctx, env, nil, memberInteraction("ash"), &dexOptions{Pokemon: &dexQuery{Name: refOf("pi")}})
		assert.NoError(t, err)
		slow <- result{choices, current}
	}()
	<-started

	choices, current, err := cmd.complete(ctx, env, nil, memberInteraction("ash"), &dexOptions{Pokemon: &dexQuery{Name: refOf("pika")}})
	require.NoError(t, err)
	assert.True(t, current)
	assert.Equal(t, []string{"pika"}, choiceValues(choices))

	// Another member's keystrokes do not supersede ash's.
	_, current, err = cmd.complete(ctx, env, nil, memberInteraction("misty"), &dexOptions{Pokemon: &dexQuery{Name: refOf("star")}})
	require.NoError(t, err)
	assert.True(t, current)

	close(release)
	stale := <-slow
	assert.False(t, stale.current, "an older keystroke finished last")
	assert.Empty(t, stale.choices)
}

func TestCompleteTruncatesChoices(t *testing.T) {
	env := newEnv(t, model.LocalizationCodeEnglish)
	cmd := command[dexOptions]{
		applicationCommand: &discordgo.ApplicationCommand{Name: "dex"},
		autocomplete: func(context.Context, *Env, *discordgo.Session, *discordgo.InteractionCreate, *dexOptions) ([]*discordgo.ApplicationCommandOptionChoice, error) {
			return make([]*discordgo.ApplicationCommandOptionChoice, 40), nil
		},
	}

	choices, current, err := cmd.complete(context.Background(), env, nil, memberInteraction("ash"), &dexOptions{})
	require.NoError(t, err)
	assert.True(t, current)
	assert.Len(t, choices, maxChoices)

	_, _, err = command[dexOptions]{applicationCommand: &discordgo.ApplicationCommand{Name: "dex"}}.complete(context.Background(), env, nil, nil, &dexOptions{})
	assert.ErrorIs(t, err, ErrUnrecognizedInteraction)
}
