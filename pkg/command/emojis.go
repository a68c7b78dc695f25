package command

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// Emojis indexes the resource guild's custom emojis by name. Every icon is
// split across two emojis suffixed "1" and "2".
type Emojis map[string]*discordgo.Emoji

var ErrNoEmoji = errors.New("no matching emoji")

func NewEmojis(emojis []*discordgo.Emoji) Emojis {
	m := make(Emojis, len(emojis))
	for _, e := range emojis {
		m[e.Name] = e
	}
	return m
}

func (emojis Emojis) Emoji(name string) (string, error) {
	emoji1, ok := emojis[name+"1"]
	if !ok {
		return "", fmt.Errorf("could not find first emoji for resource %q: %w", name, ErrNoEmoji)
	}

	emoji2, ok := emojis[name+"2"]
	if !ok {
		return "", fmt.Errorf("could not find second emoji for resource %q: %w", name, ErrNoEmoji)
	}

	return fmt.Sprintf("<:%v:%v><:%v:%v>", emoji1.Name, emoji1.ID, emoji2.Name, emoji2.ID), nil
}

// Label renders the emoji for name, or fallback when the resource guild does
// not carry it.
func (emojis Emojis) Label(name string, fallback string) string {
	emoji, err := emojis.Emoji(name)
	if err != nil {
		return fallback
	}
	return emoji
}
