package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/terraincognita07/datepick/internal/picker"
)

var ErrUnknownCommand = errors.New("unknown picker command")

type CommandKind string

const (
	CommandOpen          CommandKind = "open"
	CommandClose         CommandKind = "close"
	CommandPickDay       CommandKind = "pick"
	CommandPreviousMonth CommandKind = "previous"
	CommandNextMonth     CommandKind = "next"
	CommandPreset        CommandKind = "preset"
	CommandSetVisibility CommandKind = "set-visibility"
)

// Command is one user intent (or host flip) applied to a stored picker.
type Command struct {
	Kind   CommandKind
	Day    int
	Preset picker.Preset
	Open   bool
}

func PickDay(day int) Command {
	return Command{Kind: CommandPickDay, Day: day}
}

func ApplyPreset(preset picker.Preset) Command {
	return Command{Kind: CommandPreset, Preset: preset}
}

func SetVisibility(open bool) Command {
	return Command{Kind: CommandSetVisibility, Open: open}
}

// ParseCommand maps a command name to a Command. Preset names ("today",
// "this-week", "this-month") are accepted directly.
func ParseCommand(raw string) (Command, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	switch CommandKind(name) {
	case CommandOpen, CommandClose, CommandPreviousMonth, CommandNextMonth:
		return Command{Kind: CommandKind(name)}, nil
	}
	if preset, err := picker.ParsePreset(name); err == nil {
		return ApplyPreset(preset), nil
	}
	return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, raw)
}

func (command Command) run(controller *picker.Controller) error {
	switch command.Kind {
	case CommandOpen:
		controller.Open()
	case CommandClose:
		controller.Close()
	case CommandPickDay:
		controller.PickDay(command.Day)
	case CommandPreviousMonth:
		controller.PreviousMonth()
	case CommandNextMonth:
		controller.NextMonth()
	case CommandPreset:
		return controller.ApplyPreset(command.Preset)
	case CommandSetVisibility:
		controller.SetControlledOpen(command.Open)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, command.Kind)
	}
	return nil
}
