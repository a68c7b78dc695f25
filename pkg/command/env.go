package command

import (
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"

	"github.com/notjagan/pokeguide/pkg/model"
	"github.com/notjagan/pokeguide/pkg/quiz"
	"github.com/notjagan/pokeguide/pkg/resolver"
	"github.com/notjagan/pokeguide/pkg/search"
)

// Guild is the per-server state commands read and change.
type Guild struct {
	ID string

	mu          sync.Mutex
	version     model.VersionContext
	language    model.LocalizationCode
	quiz        uuid.UUID
	completions map[string]*search.Sequence
}

func NewGuild(id string, lang model.LocalizationCode) *Guild {
	return &Guild{ID: id, language: lang, completions: make(map[string]*search.Sequence)}
}

// Completion returns the autocomplete sequence of one member. Only the
// member's latest keystroke gets an answer.
func (g *Guild) Completion(userID string) *search.Sequence {
	g.mu.Lock()
	defer g.mu.Unlock()
	seq, ok := g.completions[userID]
	if !ok {
		seq = new(search.Sequence)
		g.completions[userID] = seq
	}
	return seq
}

func (g *Guild) Version() model.VersionContext {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.version
}

func (g *Guild) SetVersion(vc model.VersionContext) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.version = vc
}

func (g *Guild) Language() model.LocalizationCode {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.language
}

func (g *Guild) SetLanguage(code model.LocalizationCode) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.language = code
}

// Quiz returns the guild's running quiz session, if any.
func (g *Guild) Quiz() (uuid.UUID, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.quiz, g.quiz != uuid.Nil
}

// SwapQuiz replaces the guild's quiz session and returns the previous one.
func (g *Guild) SwapQuiz(id uuid.UUID) uuid.UUID {
	g.mu.Lock()
	defer g.mu.Unlock()
	prev := g.quiz
	g.quiz = id
	return prev
}

// Env carries everything a command needs to answer one interaction.
type Env struct {
	Resolver *resolver.Resolver
	Search   *search.Builder
	Quizzes  *quiz.Manager
	Guild    *Guild
}

func interactionUser(interaction *discordgo.InteractionCreate) string {
	switch {
	case interaction == nil || interaction.Interaction == nil:
		return ""
	case interaction.Member != nil && interaction.Member.User != nil:
		return interaction.Member.User.ID
	case interaction.User != nil:
		return interaction.User.ID
	default:
		return ""
	}
}

var locales = map[discordgo.Locale]model.LocalizationCode{
	discordgo.Korean:    model.LocalizationCodeKorean,
	discordgo.EnglishUS: model.LocalizationCodeEnglish,
	discordgo.EnglishGB: model.LocalizationCodeEnglish,
	discordgo.Japanese:  "ja",
	discordgo.French:    "fr",
	discordgo.German:    "de",
	discordgo.SpanishES: "es",
	discordgo.Italian:   "it",
	discordgo.ChineseCN: "zh-Hans",
	discordgo.ChineseTW: "zh-Hant",
}

// LocaleCode maps a Discord locale onto a localization code, falling back
// to the default language.
func LocaleCode(locale discordgo.Locale) model.LocalizationCode {
	if code, ok := locales[locale]; ok {
		return code
	}
	return model.DefaultLocalizationCode
}
