package entity

import (
	"fmt"
	"strings"
)

// Mode selects which relay an ask targets.
type Mode string

const (
	ModeChat Mode = "chat"
	ModeQA   Mode = "qa"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeChat:
		return ModeChat, nil
	case ModeQA:
		return ModeQA, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

func (m Mode) String() string { return string(m) }
