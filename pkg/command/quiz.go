package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"

	"github.com/notjagan/pokeguide/pkg/quiz"
	"github.com/notjagan/pokeguide/pkg/typechart"
)

type quizStart struct {
	Total   *int  `option:"total"`
	Pokemon *bool `option:"pokemon"`
}

type quizAnswer struct {
	Choice string `option:"choice"`
}

type quizOptions struct {
	Start  *quizStart  `option:"start"`
	Answer *quizAnswer `option:"answer"`
	Next   *struct{}   `option:"next"`
	Reset  *struct{}   `option:"reset"`
}

type quizResponder struct {
	emojis Emojis
}

func noQuiz() *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		Content: "No quiz in progress. Start one with `/quiz start`.",
	}
}

// session returns the guild's running quiz. Evicted sessions are forgotten.
func (resp quizResponder) session(env *Env) (*quiz.Session, bool) {
	id, ok := env.Guild.Quiz()
	if !ok {
		return nil, false
	}
	s, err := env.Quizzes.Get(id)
	if err != nil {
		env.Guild.SwapQuiz(uuid.Nil)
		return nil, false
	}
	return s, true
}

func (resp quizResponder) Handle(
	ctx context.Context,
	env *Env,
	sess *discordgo.Session,
	interaction *discordgo.InteractionCreate,
	opt *quizOptions,
) (*discordgo.InteractionResponseData, error) {
	if opt.Start != nil {
		return resp.start(env, opt.Start)
	}

	s, ok := resp.session(env)
	if !ok {
		return noQuiz(), nil
	}

	switch {
	case opt.Answer != nil:
		choice, err := typechart.BucketString(opt.Answer.Choice)
		if err != nil {
			return &discordgo.InteractionResponseData{
				Content: fmt.Sprintf("%q is not a valid answer.", opt.Answer.Choice),
			}, nil
		}

		res, err := s.Submit(choice)
		if errors.Is(err, quiz.ErrInvalidTransition) {
			return &discordgo.InteractionResponseData{
				Content: "There is no open question. Use `/quiz next` to continue.",
			}, nil
		} else if err != nil {
			return nil, fmt.Errorf("error while submitting quiz answer: %w", err)
		}

		return resp.result(res, s.Snapshot()), nil
	case opt.Next != nil:
		snap, err := s.Next()
		if errors.Is(err, quiz.ErrInvalidTransition) {
			if !s.Exhausted() {
				return &discordgo.InteractionResponseData{
					Content: "Answer the current question with `/quiz answer` first.",
				}, nil
			}
			if _, err := s.Generate(); err != nil {
				return nil, fmt.Errorf("error while generating quiz question: %w", err)
			}
			snap = s.Snapshot()
		} else if err != nil {
			return nil, fmt.Errorf("error while advancing quiz: %w", err)
		}

		if snap.Exhausted {
			return &discordgo.InteractionResponseData{
				Content: fmt.Sprintf("Quiz complete! Final score: %d/%d. Use `/quiz next` to play again.", snap.LastScore, snap.Total),
			}, nil
		}
		return resp.question(env, snap), nil
	case opt.Reset != nil:
		env.Quizzes.Delete(env.Guild.SwapQuiz(uuid.Nil))
		return &discordgo.InteractionResponseData{
			Content: "Quiz reset.",
		}, nil
	default:
		return nil, fmt.Errorf("unrecognized subcommand for command \"quiz\": %w", ErrCommandFormat)
	}
}

func (resp quizResponder) start(env *Env, opt *quizStart) (*discordgo.InteractionResponseData, error) {
	opts := quiz.Options{
		Generation: env.Resolver.Normalize(env.Guild.Version()).Generation,
		Lang:       env.Guild.Language(),
	}
	if opt.Total != nil {
		opts.Total = *opt.Total
	}
	if opt.Pokemon != nil {
		opts.Pokemon = *opt.Pokemon
	}

	s := env.Quizzes.Create(env.Resolver.Tables(), opts)
	if prev := env.Guild.SwapQuiz(s.ID); prev != uuid.Nil {
		env.Quizzes.Delete(prev)
	}

	if _, err := s.Generate(); err != nil {
		if errors.Is(err, quiz.ErrEmptyDeck) {
			return &discordgo.InteractionResponseData{
				Content: "There is nothing to quiz on in this generation.",
			}, nil
		}
		return nil, fmt.Errorf("error while generating quiz question: %w", err)
	}

	return resp.question(env, s.Snapshot()), nil
}

func (resp quizResponder) question(env *Env, snap quiz.Snapshot) *discordgo.InteractionResponseData {
	q := snap.Question
	label := typeLabeler(env, resp.emojis)

	defender := strings.Join(labels(q.Defender.Types, label), " ")
	if q.Defender.PokemonID != 0 {
		defender = fmt.Sprintf("%s %s", q.Defender.Name, defender)
	}

	choices := make([]string, len(q.Choices))
	for i, c := range q.Choices {
		choices[i] = fmt.Sprintf("`%s`", c.Label())
	}

	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{
			{
				Title:       fmt.Sprintf("Question %d/%d", q.Number, snap.Total),
				Description: fmt.Sprintf("%s ▸ %s\nHow effective is the attack?", label(q.Attack), defender),
				Fields: []*discordgo.MessageEmbedField{
					{Name: "Choices", Value: strings.Join(choices, " ")},
				},
				Footer: &discordgo.MessageEmbedFooter{
					Text: fmt.Sprintf("Score: %d", snap.Score),
				},
			},
		},
	}
}

func (resp quizResponder) result(res quiz.Result, snap quiz.Snapshot) *discordgo.InteractionResponseData {
	content := fmt.Sprintf("Correct! It is `%s`.", res.Answer.Label())
	if !res.Correct {
		content = fmt.Sprintf("Wrong, the answer was `%s`.", res.Answer.Label())
	}

	return &discordgo.InteractionResponseData{
		Content: fmt.Sprintf("%s Score: %d/%d.", content, snap.Score, snap.Number),
	}
}

func (builder *Builder) quiz(ctx context.Context) (Command, error) {
	resp := quizResponder{emojis: builder.emojis}

	buckets := typechart.BucketValues()
	choices := make([]*discordgo.ApplicationCommandOptionChoice, len(buckets))
	for i, b := range buckets {
		choices[i] = &discordgo.ApplicationCommandOptionChoice{
			Name:  b.Label(),
			Value: b.String(),
		}
	}
	minTotal := 1.0

	return command[quizOptions]{
		handle: resp.Handle,
		applicationCommand: &discordgo.ApplicationCommand{
			Name:        "quiz",
			Description: "Practice type matchups.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "start",
					Description: "Start a new quiz round",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "total",
							Description: "Number of questions",
							Required:    false,
							MinValue:    &minTotal,
							MaxValue:    50,
						},
						{
							Type:        discordgo.ApplicationCommandOptionBoolean,
							Name:        "pokemon",
							Description: "Use Pokemon as defenders",
							Required:    false,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "answer",
					Description: "Answer the current question",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "choice",
							Description: "Damage multiplier",
							Required:    true,
							Choices:     choices,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "next",
					Description: "Move on to the next question",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "reset",
					Description: "Abandon the current quiz",
				},
			},
		},
	}, nil
}
