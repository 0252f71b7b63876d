package dredd

import (
	"strings"
	"unicode"
)

// OptionKind groups registry entries by how they render.
type OptionKind string

const (
	// KindBoolean options render a single flag and can be negated with a
	// "no" prefix.
	KindBoolean OptionKind = "boolean"
	// KindMeta options render a single flag and cannot be negated.
	KindMeta OptionKind = "meta"
	// KindSingleArgument options render a flag followed by one value.
	KindSingleArgument OptionKind = "single-argument"
)

// Option describes one flag dredd accepts.
type Option struct {
	Name      string
	Flag      string
	Kind      OptionKind
	Arity     int
	Negatable bool
}

// NegatedName returns the name of the negated form, e.g. "noColor" for
// "color". It returns "" for options that can't be negated.
func (o Option) NegatedName() string {
	if !o.Negatable {
		return ""
	}
	return "no" + strings.ToUpper(o.Name[:1]) + o.Name[1:]
}

// NegatedFlag returns the negated flag token, e.g. "--no-color".
func (o Option) NegatedFlag() string {
	if !o.Negatable {
		return ""
	}
	return "--no-" + strings.TrimPrefix(o.Flag, "--")
}

var (
	booleanOptions = []string{
		"dryRun", "names", "sorted", "inlineErrors",
		"details", "color", "timestamp", "silent",
	}

	metaOptions = []string{"help", "version"}

	singleArgumentOptions = []string{
		"hookfiles", "only", "reporter", "output", "header",
		"user", "method", "level", "path",
	}
)

var (
	registry      = buildRegistry()
	registryIndex = indexRegistry(registry)
)

func buildRegistry() []Option {
	opts := make([]Option, 0, len(booleanOptions)+len(metaOptions)+len(singleArgumentOptions))
	for _, name := range booleanOptions {
		opts = append(opts, Option{Name: name, Flag: flagFor(name), Kind: KindBoolean, Negatable: true})
	}
	for _, name := range metaOptions {
		opts = append(opts, Option{Name: name, Flag: flagFor(name), Kind: KindMeta})
	}
	for _, name := range singleArgumentOptions {
		opts = append(opts, Option{Name: name, Flag: flagFor(name), Kind: KindSingleArgument, Arity: 1})
	}
	return opts
}

func indexRegistry(opts []Option) map[string]Option {
	index := make(map[string]Option, len(opts))
	for _, opt := range opts {
		index[normalizeName(opt.Name)] = opt
	}
	return index
}

// Options returns every registry entry in declaration order.
func Options() []Option {
	out := make([]Option, len(registry))
	copy(out, registry)
	return out
}

// LookupOption resolves name against the registry. Names may be camelCase,
// snake_case or kebab-case. A "no" prefix on a negatable option resolves to
// that option with negated set.
func LookupOption(name string) (opt Option, negated bool, ok bool) {
	key := normalizeName(name)
	if opt, ok := registryIndex[key]; ok {
		return opt, false, true
	}
	if base, found := strings.CutPrefix(key, "no-"); found {
		if opt, ok := registryIndex[base]; ok && opt.Negatable {
			return opt, true, true
		}
	}
	return Option{}, false, false
}

func flagFor(name string) string {
	return "--" + normalizeName(name)
}

// normalizeName lowercases name and turns camelCase humps, underscores and
// spaces into single dashes.
func normalizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 4)
	lastDash := true
	for _, r := range strings.TrimSpace(name) {
		switch {
		case r == '_' || r == '-' || r == ' ':
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		case unicode.IsUpper(r):
			if !lastDash {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
			lastDash = false
		default:
			b.WriteRune(r)
			lastDash = false
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
