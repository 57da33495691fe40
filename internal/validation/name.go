package validation

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

const (
	// GoalNameMaxLength is counted in characters, not bytes
	GoalNameMaxLength = 10
	NicknameMaxLength = 30
	DefaultEmoji      = "🎯"
)

// GoalName normalizes a goal name and caps it at GoalNameMaxLength characters.
// Longer names are truncated rather than rejected.
func GoalName(name string) (string, error) {
	trimmed := strings.TrimSpace(norm.NFC.String(name))

	if trimmed == "" {
		return "", New("name", "name is required")
	}

	if utf8.RuneCountInString(trimmed) > GoalNameMaxLength {
		runes := []rune(trimmed)
		trimmed = strings.TrimSpace(string(runes[:GoalNameMaxLength]))
	}

	return trimmed, nil
}

// Nickname validates the display name a user picks during setup
func Nickname(nickname string) (string, error) {
	trimmed := strings.TrimSpace(norm.NFC.String(nickname))

	if trimmed == "" {
		return "", New("nickname", "nickname is required")
	}

	if utf8.RuneCountInString(trimmed) > NicknameMaxLength {
		return "", New("nickname", "nickname is too long (max 30 characters)")
	}

	return trimmed, nil
}

// Emoji returns the default glyph when none was chosen
func Emoji(emoji string) string {
	trimmed := strings.TrimSpace(emoji)
	if trimmed == "" {
		return DefaultEmoji
	}
	return trimmed
}
