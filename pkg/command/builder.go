package command

import (
	"context"
	"fmt"
)

type commandFunc func(*Builder, context.Context) (Command, error)

// Builder assembles the bot's slash commands.
type Builder struct {
	funcs             []commandFunc
	emojis            Emojis
	moveLimit         int
	autocompleteLimit int
}

func NewBuilder(emojis Emojis) *Builder {
	return &Builder{
		funcs: []commandFunc{
			(*Builder).language,
			(*Builder).version,
			(*Builder).dex,
			(*Builder).learnset,
			(*Builder).weak,
			(*Builder).coverage,
			(*Builder).quiz,
		},
		emojis:            emojis,
		moveLimit:         15,
		autocompleteLimit: maxChoices,
	}
}

func (builder *Builder) All(ctx context.Context) ([]Command, error) {
	cmds := make([]Command, 0, len(builder.funcs))
	for _, f := range builder.funcs {
		cmd, err := f(builder, ctx)
		if err != nil {
			return nil, fmt.Errorf("error while building command: %w", err)
		}
		cmds = append(cmds, cmd)
	}

	return cmds, nil
}
