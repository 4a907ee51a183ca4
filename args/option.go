package args

import (
	"fmt"
	"strings"
	"unicode"
)

// Option declares a named argument. A zero Type makes it a boolean flag.
type Option struct {
	Type  Type
	Short rune
	Long  string
}

// IsFlag reports whether the option takes no value.
func (o Option) IsFlag() bool {
	return o.Type.IsZero()
}

func (o Option) String() string {
	var names []string
	if o.Short != 0 {
		names = append(names, "-"+string(o.Short))
	}
	if o.Long != "" {
		names = append(names, "--"+o.Long)
	}

	name := strings.Join(names, "|")
	if o.IsFlag() {
		return fmt.Sprintf("[%s]", name)
	}

	return fmt.Sprintf("[%s <%s>]", name, o.Type)
}

func (o Option) normalize() (Option, error) {
	o.Short = unicode.ToLower(o.Short)
	o.Long = kebab(o.Long)

	if o.Short == 0 && o.Long == "" {
		return o, fmt.Errorf("%w: short or long name required", ErrInvalidOption)
	}
	if o.Short == '-' || unicode.IsSpace(o.Short) {
		return o, fmt.Errorf("%w: invalid short name %q", ErrInvalidOption, o.Short)
	}

	return o, nil
}

// kebab lower-cases a long option name and separates words with '-', so
// "fooBar", "foo_bar" and "FOO-BAR" all become "foo-bar".
func kebab(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}

	runes := []rune(name)

	var b strings.Builder
	for i, r := range runes {
		switch {
		case r == '_' || r == ' ' || r == '-':
			if b.Len() > 0 && !strings.HasSuffix(b.String(), "-") {
				b.WriteRune('-')
			}
		case unicode.IsUpper(r):
			// A new word starts at an upper-case letter that follows a
			// lower-case one or precedes one ("HTTPPort" -> "http-port").
			if i > 0 && !strings.HasSuffix(b.String(), "-") {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					b.WriteRune('-')
				}
			}
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}

// foldName drops separators and case from a long name. Input is matched on
// the folded form, so "LoUd" finds "loud" and "MaxCount" finds "maxcount".
func foldName(name string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(name) {
		if r == '_' || r == ' ' || r == '-' {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
