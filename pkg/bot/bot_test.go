package bot

import (
	"context"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notjagan/pokeguide/pkg/cache"
	"github.com/notjagan/pokeguide/pkg/model"
	"github.com/notjagan/pokeguide/pkg/quiz"
	"github.com/notjagan/pokeguide/pkg/resolver"
	"github.com/notjagan/pokeguide/pkg/resolver/resolvertest"
)

type staticResolvers struct {
	resolver *resolver.Resolver
	err      error
}

func (s staticResolvers) Get(context.Context) (*resolver.Resolver, error) {
	return s.resolver, s.err
}

func TestGuildLifecycle(t *testing.T) {
	res, _ := resolvertest.New(t)
	bot := New(Options{
		Resolvers: staticResolvers{resolver: res},
		Cache:     cache.New(cache.Options{}),
	})
	ctx := context.Background()

	_, err := bot.env(ctx, "1")
	assert.ErrorIs(t, err, ErrNoMatchingGuild)

	bot.addGuild(&discordgo.Guild{ID: "1", PreferredLocale: string(discordgo.EnglishUS)})
	env, err := bot.env(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, model.LocalizationCodeEnglish, env.Guild.Language())
	assert.Same(t, res, env.Resolver)
	require.NotNil(t, env.Search)

	env.Guild.SetVersion(model.VersionContext{Game: "red"})
	bot.addGuild(&discordgo.Guild{ID: "1", PreferredLocale: string(discordgo.Korean)})
	again, err := bot.env(ctx, "1")
	require.NoError(t, err)
	assert.Same(t, env.Guild, again.Guild, "repeated guild events keep the state")

	s := bot.opts.Quizzes.Create(res.Tables(), quiz.Options{})
	env.Guild.SwapQuiz(s.ID)
	bot.removeGuild(&discordgo.Guild{ID: "1"})
	assert.Zero(t, bot.opts.Quizzes.Len())
	_, err = bot.env(ctx, "1")
	assert.ErrorIs(t, err, ErrNoMatchingGuild)
}

func TestEnvWithoutReferenceData(t *testing.T) {
	bot := New(Options{Resolvers: staticResolvers{err: model.ErrReferenceLoad}})
	bot.addGuild(&discordgo.Guild{ID: "1"})

	_, err := bot.env(context.Background(), "1")
	assert.ErrorIs(t, err, model.ErrReferenceLoad)
}

func TestEmojisWithoutResourceGuild(t *testing.T) {
	emojis, err := New(Options{}).emojis()
	require.NoError(t, err)
	assert.Empty(t, emojis)
}
