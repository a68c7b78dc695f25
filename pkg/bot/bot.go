package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/notjagan/pokeguide/pkg/cache"
	"github.com/notjagan/pokeguide/pkg/command"
	"github.com/notjagan/pokeguide/pkg/quiz"
	"github.com/notjagan/pokeguide/pkg/resolver"
	"github.com/notjagan/pokeguide/pkg/search"
)

// Resolvers hands out the resolver once reference data is loaded.
type Resolvers interface {
	Get(ctx context.Context) (*resolver.Resolver, error)
}

type Options struct {
	Token         string
	ResourceGuild string
	Resolvers     Resolvers
	Cache         *cache.Coordinator
	Quizzes       *quiz.Manager
	Logger        *slog.Logger
}

type Bot struct {
	opts     Options
	logger   *slog.Logger
	session  *discordgo.Session
	commands map[string]command.Command

	mu     sync.Mutex
	guilds map[string]*command.Guild
}

func New(opts Options) *Bot {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Quizzes == nil {
		opts.Quizzes = quiz.NewManager(quiz.DefaultIdleTimeout, logger)
	}

	return &Bot{
		opts:     opts,
		logger:   logger.With("component", "bot"),
		commands: make(map[string]command.Command),
		guilds:   make(map[string]*command.Guild),
	}
}

func (bot *Bot) Close() {
	bot.logger.Info("shutting down")
	if bot.session == nil {
		return
	}
	err := bot.session.Close()
	if err != nil {
		bot.logger.Error("error while closing discord session", "err", err)
	}
}

func (bot *Bot) addGuild(guild *discordgo.Guild) {
	bot.mu.Lock()
	defer bot.mu.Unlock()
	if _, ok := bot.guilds[guild.ID]; ok {
		return
	}
	bot.guilds[guild.ID] = command.NewGuild(guild.ID, command.LocaleCode(discordgo.Locale(guild.PreferredLocale)))
}

// removeGuild forgets a guild along with its quiz session.
func (bot *Bot) removeGuild(guild *discordgo.Guild) {
	bot.mu.Lock()
	g, ok := bot.guilds[guild.ID]
	delete(bot.guilds, guild.ID)
	bot.mu.Unlock()

	if ok {
		if id, running := g.Quiz(); running {
			bot.opts.Quizzes.Delete(id)
		}
	}
}

var ErrNoMatchingGuild = errors.New("no matching guild")

func (bot *Bot) guild(id string) (*command.Guild, error) {
	bot.mu.Lock()
	defer bot.mu.Unlock()

	g, ok := bot.guilds[id]
	if !ok {
		return nil, fmt.Errorf("could not find state for guild %q: %w", id, ErrNoMatchingGuild)
	}

	return g, nil
}

// env assembles the command environment for one interaction in a guild.
func (bot *Bot) env(ctx context.Context, guildID string) (*command.Env, error) {
	g, err := bot.guild(guildID)
	if err != nil {
		return nil, err
	}

	res, err := bot.opts.Resolvers.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("reference data unavailable: %w", err)
	}

	return &command.Env{
		Resolver: res,
		Search:   search.NewBuilder(res, bot.opts.Cache, bot.logger),
		Quizzes:  bot.opts.Quizzes,
		Guild:    g,
	}, nil
}

func (bot *Bot) emojis() (command.Emojis, error) {
	if bot.opts.ResourceGuild == "" {
		return command.Emojis{}, nil
	}

	emojis, err := bot.session.GuildEmojis(bot.opts.ResourceGuild)
	if err != nil {
		return nil, fmt.Errorf("could not list emojis of guild %q: %w: %w", bot.opts.ResourceGuild, command.ErrMissingResourceGuild, err)
	}

	return command.NewEmojis(emojis), nil
}

func (bot *Bot) initialize(ctx context.Context) error {
	sess, err := discordgo.New("Bot " + bot.opts.Token)
	if err != nil {
		return fmt.Errorf("failed to instantiate discord bot: %w", err)
	}
	bot.session = sess

	bot.session.AddHandler(func(_ *discordgo.Session, create *discordgo.GuildCreate) {
		bot.addGuild(create.Guild)
		bot.logger.Info("joined guild", "guild", create.Guild.Name)
	})
	bot.session.AddHandler(func(_ *discordgo.Session, remove *discordgo.GuildDelete) {
		bot.removeGuild(remove.Guild)
		bot.logger.Info("left guild", "guild", remove.Guild.ID)
	})
	bot.session.AddHandler(func(sess *discordgo.Session, interaction *discordgo.InteractionCreate) {
		bot.dispatch(ctx, sess, interaction)
	})

	err = bot.session.Open()
	if err != nil {
		return fmt.Errorf("failed to start discord session: %w", err)
	}

	emojis, err := bot.emojis()
	if err != nil {
		bot.logger.Warn("falling back to plain type names", "err", err)
		emojis = command.Emojis{}
	}

	cmds, err := command.NewBuilder(emojis).All(ctx)
	if err != nil {
		return fmt.Errorf("error while building commands: %w", err)
	}

	err = bot.registerCommands(cmds)
	if err != nil {
		return fmt.Errorf("error while registering commands: %w", err)
	}

	return nil
}

func (bot *Bot) Run(ctx context.Context) error {
	err := bot.initialize(ctx)
	if err != nil {
		return fmt.Errorf("error while initializing bot: %w", err)
	}

	bot.logger.Info("hosting pokedex bot")
	defer bot.Close()
	<-ctx.Done()

	return nil
}

func (bot *Bot) registerCommands(cmds []command.Command) error {
	appCmds := make([]*discordgo.ApplicationCommand, 0, len(cmds))
	for _, cmd := range cmds {
		bot.commands[cmd.Name()] = cmd
		appCmds = append(appCmds, cmd.ApplicationCommand())
	}

	_, err := bot.session.ApplicationCommandBulkOverwrite(bot.session.State.User.ID, "", appCmds)
	if err != nil {
		return fmt.Errorf("failed to create commands: %w", err)
	}

	return nil
}

// dispatch routes an interaction to its command by type.
func (bot *Bot) dispatch(ctx context.Context, sess *discordgo.Session, interaction *discordgo.InteractionCreate) {
	logger := bot.logger.With("guild", interaction.GuildID, "interaction", interaction.Type.String())

	env, err := bot.env(ctx, interaction.GuildID)
	if err != nil {
		logger.Error("could not prepare command environment", "err", err)
		return
	}

	switch interaction.Type {
	case discordgo.InteractionApplicationCommand:
		name := interaction.ApplicationCommandData().Name
		cmd, ok := bot.commands[name]
		if !ok {
			logger.Warn("unknown command", "command", name)
			return
		}

		logger.Info("command", "command", name)
		err = cmd.Handle(ctx, env, sess, interaction)
	case discordgo.InteractionApplicationCommandAutocomplete:
		cmd, ok := bot.commands[interaction.ApplicationCommandData().Name]
		if !ok {
			return
		}

		err = cmd.Autocomplete(ctx, env, sess, interaction)
	case discordgo.InteractionMessageComponent:
		press, decodeErr := command.DecodeButton(interaction.MessageComponentData().CustomID)
		if decodeErr != nil {
			logger.Warn("unrecognized button", "err", decodeErr)
			return
		}
		cmd, ok := bot.commands[press.Command]
		if !ok {
			logger.Warn("button for unknown command", "command", press.Command)
			return
		}

		err = cmd.Button(ctx, env, sess, interaction, press)
	default:
		return
	}

	if err != nil {
		logger.Error("error while handling interaction", "err", err)
	}
}
