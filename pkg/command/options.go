package command

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/bwmarrin/discordgo"

	"github.com/notjagan/pokeguide/pkg/model"
)

var ErrDecodeOption = errors.New("error while decoding options")

type discordValue interface {
	string | int | bool
}

type discordField[T discordValue] struct {
	Value   T
	Focused bool
}

// refField is a string option naming an entity. The reference is parsed
// once, when the option is decoded.
type refField struct {
	Ref     model.Ref
	Text    string
	Focused bool
}

func refOf(text string) refField {
	return refField{Ref: model.ParseRef(text), Text: text}
}

var (
	refFieldType  = reflect.TypeFor[refField]()
	wrappedFields = map[reflect.Type]bool{
		reflect.TypeFor[discordField[string]](): true,
		reflect.TypeFor[discordField[int]]():    true,
		reflect.TypeFor[discordField[bool]]():   true,
	}
)

// decodeOptions fills the `option:"..."` tagged fields of the struct
// pointed to by structure. Pointer fields stay nil unless the option was
// given; subcommands decode into nested structs.
func decodeOptions(options []*discordgo.ApplicationCommandInteractionDataOption, structure any) error {
	value := reflect.ValueOf(structure)
	if value.Kind() != reflect.Pointer || value.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("options must decode into a struct pointer, got %T: %w", structure, ErrDecodeOption)
	}

	fields := optionFields(value.Elem())
	for _, option := range options {
		field, ok := fields[option.Name]
		if !ok {
			return fmt.Errorf("unexpected option name %q: %w", option.Name, ErrDecodeOption)
		}

		if err := setOption(field, option); err != nil {
			return fmt.Errorf("error while decoding option %q: %w", option.Name, err)
		}
	}

	return nil
}

func optionFields(value reflect.Value) map[string]reflect.Value {
	typ := value.Type()
	fields := make(map[string]reflect.Value, typ.NumField())
	for i := range typ.NumField() {
		f := typ.Field(i)
		if name := f.Tag.Get("option"); name != "" && f.IsExported() {
			fields[name] = value.Field(i)
		}
	}
	return fields
}

func setOption(field reflect.Value, option *discordgo.ApplicationCommandInteractionDataOption) error {
	if field.Kind() == reflect.Pointer {
		ptr := reflect.New(field.Type().Elem())
		if err := setOption(ptr.Elem(), option); err != nil {
			return err
		}
		field.Set(ptr)
		return nil
	}

	if field.Type() == refFieldType {
		text, ok := option.Value.(string)
		if !ok || option.Type != discordgo.ApplicationCommandOptionString {
			return fmt.Errorf("expected a name, got %s option: %w", option.Type, ErrDecodeOption)
		}
		ref := refOf(text)
		ref.Focused = option.Focused
		field.Set(reflect.ValueOf(ref))
		return nil
	}

	if wrappedFields[field.Type()] {
		field.FieldByName("Focused").SetBool(option.Focused)
		field = field.FieldByName("Value")
	}

	switch option.Type {
	case discordgo.ApplicationCommandOptionString:
		if v, ok := option.Value.(string); ok && field.Kind() == reflect.String {
			field.SetString(v)
			return nil
		}
	case discordgo.ApplicationCommandOptionInteger:
		// Discord delivers every number as a JSON float.
		if v, ok := option.Value.(float64); ok && field.Kind() == reflect.Int {
			field.SetInt(int64(v))
			return nil
		}
	case discordgo.ApplicationCommandOptionBoolean:
		if v, ok := option.Value.(bool); ok && field.Kind() == reflect.Bool {
			field.SetBool(v)
			return nil
		}
	case discordgo.ApplicationCommandOptionSubCommand:
		if field.Kind() == reflect.Struct {
			return decodeOptions(option.Options, field.Addr().Interface())
		}
	}

	return fmt.Errorf("cannot store %s option in %s: %w", option.Type, field.Type(), ErrDecodeOption)
}
