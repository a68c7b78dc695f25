package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

type (
	Page struct {
		Limit  int
		Offset int
	}

	Command interface {
		ApplicationCommand() *discordgo.ApplicationCommand
		Handle(context.Context, *Env, *discordgo.Session, *discordgo.InteractionCreate) error
		Autocomplete(context.Context, *Env, *discordgo.Session, *discordgo.InteractionCreate) error
		Button(context.Context, *Env, *discordgo.Session, *discordgo.InteractionCreate, ButtonPress) error
		Name() string
	}

	handler[S any, T any] func(context.Context, *Env, *discordgo.Session, *discordgo.InteractionCreate, S) (T, error)

	command[T any] struct {
		applicationCommand *discordgo.ApplicationCommand
		handle             handler[*T, *discordgo.InteractionResponseData]
		autocomplete       handler[*T, []*discordgo.ApplicationCommandOptionChoice]
		paginate           handler[paginator[T], *discordgo.InteractionResponseData]
		limit              int
	}
)

var ErrUnrecognizedInteraction = errors.New("could not handle interaction")

// Discord rejects autocomplete results with more choices.
const maxChoices = 25

func (cmd command[T]) ApplicationCommand() *discordgo.ApplicationCommand {
	return cmd.applicationCommand
}

func (cmd command[T]) Name() string {
	return cmd.applicationCommand.Name
}

// render produces the reply for a fresh invocation. Paginated commands
// start at their first page.
func (cmd command[T]) render(
	ctx context.Context,
	env *Env,
	sess *discordgo.Session,
	interaction *discordgo.InteractionCreate,
	opt T,
) (*discordgo.InteractionResponseData, error) {
	switch {
	case cmd.handle != nil:
		return cmd.handle(ctx, env, sess, interaction, &opt)
	case cmd.paginate != nil && cmd.limit > 0:
		return cmd.paginate(ctx, env, sess, interaction, paginator[T]{
			Options: opt,
			Page:    Page{Limit: cmd.limit},
		})
	default:
		return nil, fmt.Errorf("command %q has no handler: %w", cmd.Name(), ErrUnrecognizedInteraction)
	}
}

func respond(
	sess *discordgo.Session,
	interaction *discordgo.InteractionCreate,
	typ discordgo.InteractionResponseType,
	data *discordgo.InteractionResponseData,
) error {
	err := sess.InteractionRespond(interaction.Interaction, &discordgo.InteractionResponse{
		Type: typ,
		Data: data,
	})
	if err != nil {
		return fmt.Errorf("error while responding to interaction: %w", err)
	}
	return nil
}

func (cmd command[T]) Handle(
	ctx context.Context,
	env *Env,
	sess *discordgo.Session,
	interaction *discordgo.InteractionCreate,
) error {
	var opt T
	err := decodeOptions(interaction.ApplicationCommandData().Options, &opt)
	if err != nil {
		return fmt.Errorf("error while decoding options for command %q: %w", cmd.Name(), err)
	}

	body, err := cmd.render(ctx, env, sess, interaction, opt)
	if err != nil {
		return fmt.Errorf("could not handle command %q: %w", cmd.Name(), err)
	}

	return respond(sess, interaction, discordgo.InteractionResponseChannelMessageWithSource, body)
}

// Button answers a press on one of the command's buttons. Page turns
// replace the message in place; follow-ups post a new message.
func (cmd command[T]) Button(
	ctx context.Context,
	env *Env,
	sess *discordgo.Session,
	interaction *discordgo.InteractionCreate,
	press ButtonPress,
) error {
	switch press.action {
	case paginator[T]{}.Name():
		if cmd.paginate == nil {
			return fmt.Errorf("command %q does not paginate: %w", cmd.Name(), ErrUnrecognizedInteraction)
		}
		page, err := pressState[paginator[T]](press)
		if err != nil {
			return err
		}

		body, err := cmd.paginate(ctx, env, sess, interaction, page)
		if err != nil {
			return fmt.Errorf("error while turning page of command %q: %w", cmd.Name(), err)
		}
		return respond(sess, interaction, discordgo.InteractionResponseUpdateMessage, body)
	case followUp[T]{}.Name():
		next, err := pressState[followUp[T]](press)
		if err != nil {
			return err
		}

		body, err := cmd.render(ctx, env, sess, interaction, next.Options)
		if err != nil {
			return fmt.Errorf("could not follow up with command %q: %w", cmd.Name(), err)
		}
		return respond(sess, interaction, discordgo.InteractionResponseChannelMessageWithSource, body)
	default:
		return fmt.Errorf("unknown button action %q: %w", press.action, ErrUnrecognizedInteraction)
	}
}

func (cmd command[T]) Autocomplete(
	ctx context.Context,
	env *Env,
	sess *discordgo.Session,
	interaction *discordgo.InteractionCreate,
) error {
	var opt T
	err := decodeOptions(interaction.ApplicationCommandData().Options, &opt)
	if err != nil {
		return fmt.Errorf("error while decoding options for autocomplete: %w", err)
	}

	choices, current, err := cmd.complete(ctx, env, sess, interaction, &opt)
	if err != nil || !current {
		return err
	}

	return respond(sess, interaction, discordgo.InteractionApplicationCommandAutocompleteResult, &discordgo.InteractionResponseData{
		Choices: choices,
	})
}

// complete runs the autocomplete handler. current is false once a newer
// keystroke from the same member has started, and the result is dropped.
func (cmd command[T]) complete(
	ctx context.Context,
	env *Env,
	sess *discordgo.Session,
	interaction *discordgo.InteractionCreate,
	opt *T,
) (choices []*discordgo.ApplicationCommandOptionChoice, current bool, err error) {
	if cmd.autocomplete == nil {
		return nil, false, fmt.Errorf("command %q has no autocompletion: %w", cmd.Name(), ErrUnrecognizedInteraction)
	}

	seq := env.Guild.Completion(interactionUser(interaction))
	ticket := seq.Next()

	choices, err = cmd.autocomplete(ctx, env, sess, interaction, opt)
	if err != nil {
		return nil, false, fmt.Errorf("error while completing command %q: %w", cmd.Name(), err)
	}
	if !seq.Current(ticket) {
		return nil, false, nil
	}
	if len(choices) > maxChoices {
		choices = choices[:maxChoices]
	}
	return choices, true, nil
}
