// Package envfile reads and writes dotenv-style KEY=VALUE files used to feed
// app environment values.
package envfile

import (
	"bufio"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/fleuristes/fleur/internal/messages"
)

// Parse decodes dotenv content into a map. Later assignments win.
func Parse(content string) (map[string]string, error) {
	env := make(map[string]string)
	scanner := bufio.NewScanner(strings.NewReader(content))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		entry, err := parseLine(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf(messages.EnvfileLineErrorFmt, lineNo, err)
		}
		if entry.key == "" {
			continue
		}
		env[entry.key] = entry.value
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf(messages.EnvfileReadFailedFmt, err)
	}
	return env, nil
}

// Format renders env as dotenv content with keys sorted.
func Format(env map[string]string) string {
	keys := make([]string, 0, len(env))
	for key := range env {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(quote(env[key]))
		b.WriteByte('\n')
	}
	return b.String()
}

// Merge rewrites content so every key in updates carries its new value.
// Existing assignments are edited in place, duplicates of an updated key are
// dropped, and new keys are appended. Comments and unrelated lines survive.
func Merge(content string, updates map[string]string) string {
	if len(updates) == 0 {
		return content
	}
	var lines []string
	if content != "" {
		lines = strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	}

	written := make(map[string]bool, len(updates))
	out := make([]string, 0, len(lines)+len(updates))
	for _, line := range lines {
		entry, err := parseLine(line)
		value, updated := updates[entry.key]
		if err != nil || entry.key == "" || !updated {
			out = append(out, line)
			continue
		}
		if written[entry.key] {
			continue
		}
		out = append(out, entry.key+"="+quote(value))
		written[entry.key] = true
	}

	pending := make([]string, 0, len(updates))
	for key := range updates {
		if !written[key] {
			pending = append(pending, key)
		}
	}
	sort.Strings(pending)
	for _, key := range pending {
		out = append(out, key+"="+quote(updates[key]))
	}
	return strings.Join(out, "\n") + "\n"
}

type assignment struct {
	key   string
	value string
}

// parseLine returns a zero assignment for blank and comment lines.
func parseLine(line string) (assignment, error) {
	text := strings.TrimSpace(line)
	if text == "" || text[0] == '#' {
		return assignment{}, nil
	}
	text = strings.TrimSpace(strings.TrimPrefix(text, "export "))

	key, raw, found := strings.Cut(text, "=")
	key = strings.TrimSpace(key)
	if !found || key == "" {
		return assignment{}, errors.New(messages.EnvfileExpectedKeyValue)
	}
	raw = strings.TrimSpace(raw)

	switch {
	case strings.HasPrefix(raw, `"`):
		value, rest, err := unquoteDouble(raw)
		if err != nil {
			return assignment{}, err
		}
		if err := checkTrailing(rest); err != nil {
			return assignment{}, err
		}
		return assignment{key: key, value: value}, nil
	case strings.HasPrefix(raw, `'`):
		end := strings.IndexByte(raw[1:], '\'')
		if end < 0 {
			return assignment{}, errors.New(messages.EnvfileUnterminatedQuotedValue)
		}
		if err := checkTrailing(raw[end+2:]); err != nil {
			return assignment{}, err
		}
		return assignment{key: key, value: raw[1 : end+1]}, nil
	}
	return assignment{key: key, value: raw}, nil
}

// unquoteDouble decodes a double-quoted value and returns the text after the
// closing quote.
func unquoteDouble(raw string) (string, string, error) {
	var b strings.Builder
	for i := 1; i < len(raw); i++ {
		c := raw[i]
		switch {
		case c == '"':
			return b.String(), raw[i+1:], nil
		case c == '\\' && i+1 < len(raw):
			i++
			switch raw[i] {
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case '"', '\\':
				b.WriteByte(raw[i])
			default:
				b.WriteByte('\\')
				b.WriteByte(raw[i])
			}
		default:
			b.WriteByte(c)
		}
	}
	return "", "", errors.New(messages.EnvfileUnterminatedQuotedValue)
}

func checkTrailing(rest string) error {
	rest = strings.TrimSpace(rest)
	if rest == "" || strings.HasPrefix(rest, "#") {
		return nil
	}
	return errors.New(messages.EnvfileInvalidQuotedSuffix)
}

// quote wraps values that would not survive an unquoted round trip.
func quote(value string) string {
	if value == "" || !strings.ContainsAny(value, " \t#\"'\\\n\r") {
		return value
	}
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", `\r`)
	return `"` + r.Replace(value) + `"`
}
