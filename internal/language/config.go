package language

import (
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/boundaryx/boundaryx/internal/errs"
)

// TerminatorPattern names a multi-rune terminator sequence, e.g. "?!"
// mapped to the logical name "interrobang".
type TerminatorPattern struct {
	Pattern string `yaml:"pattern"`
	Name    string `yaml:"name"`
}

// EllipsisConfig controls how "…" / "..." are treated, per spec.md §4.2.
type EllipsisConfig struct {
	Patterns        []string `yaml:"patterns"`
	TreatAsBoundary bool     `yaml:"treat_as_boundary"`
	ContextRules    []string `yaml:"context_rules"`
	Exceptions      []string `yaml:"exceptions"`
}

// EnclosureConfig declares one enclosure pair. Symmetric is explicit
// rather than inferred from Open == Close so a language can mark an
// ASCII quote symmetric while still listing Open/Close identically.
type EnclosureConfig struct {
	Open      string `yaml:"open"`
	Close     string `yaml:"close"`
	Symmetric bool   `yaml:"symmetric"`
}

// SuppressionConfig lists both cheap structural checks (FastPatterns,
// matched by name against hand-written predicates in suppression.go)
// and general regexes run on a bounded window around a candidate.
type SuppressionConfig struct {
	FastPatterns  []string `yaml:"fast_patterns"`
	RegexPatterns []string `yaml:"regex_patterns"`
}

// Config is the language configuration document schema enumerated
// exhaustively in spec.md §4.2, plus the small set of ambient fields
// every language document also carries (Code, case sensitivity, and the
// strong-in-enclosure demotion policy resolved as an Open Question in
// SPEC_FULL.md §9).
type Config struct {
	Code                       string              `yaml:"code"`
	Terminators                []string            `yaml:"terminators"`
	TerminatorPatterns         []TerminatorPattern `yaml:"terminator_patterns"`
	Ellipsis                   EllipsisConfig      `yaml:"ellipsis"`
	Enclosures                 []EnclosureConfig   `yaml:"enclosures"`
	Suppression                SuppressionConfig   `yaml:"suppression"`
	Abbreviations              map[string][]string `yaml:"abbreviations"`
	SentenceStarters           []string            `yaml:"sentence_starters"`
	CaseSensitiveAbbreviations bool                `yaml:"case_sensitive_abbreviations"`
	DemoteStrongInEnclosures   bool                `yaml:"demote_strong_in_enclosures"`
}

// LoadBytes parses a language configuration document from raw YAML and
// compiles it into an immutable *Language.
func LoadBytes(data []byte) (*Language, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errs.Wrap(errs.InvalidConfiguration, err)
	}
	return Compile(cfg)
}

// LoadFile reads and compiles a language configuration document from disk.
func LoadFile(path string) (*Language, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrap(errs.Io, err)
	}
	return LoadBytes(data)
}

// Compile validates cfg and builds the immutable rule set a scanner
// consults. Compile is the only place enclosure IDs are assigned, so a
// Language's EnclosureDefs are stable for its whole lifetime (spec.md §3:
// "created once per language and shared immutably across all chunk scans").
func Compile(cfg Config) (*Language, error) {
	if cfg.Code == "" {
		return nil, errs.New(errs.InvalidConfiguration, "language code must not be empty")
	}
	if len(cfg.Enclosures) > maxEnclosureTypes {
		return nil, errs.New(errs.TooManyEnclosureTypes, "language declares more than 16 enclosure types")
	}

	lang := &Language{
		Code:                     cfg.Code,
		CaseSensitiveAbbrev:      cfg.CaseSensitiveAbbreviations,
		DemoteStrongInEnclosures: cfg.DemoteStrongInEnclosures,
		terminators:              make(map[rune]bool),
		strongTerminators:        make(map[rune]bool),
		enclosureByRune:          make(map[rune]enclosureDef),
		sentenceStarters:         make(map[string]bool),
		ellipsis:                 cfg.Ellipsis,
	}

	for _, t := range cfg.Terminators {
		for _, r := range t {
			lang.terminators[r] = true
			if r != '.' {
				lang.strongTerminators[r] = true
			}
		}
	}
	if len(cfg.Terminators) == 0 {
		lang.terminators['.'] = true
		lang.terminators['!'] = true
		lang.terminators['?'] = true
		lang.strongTerminators['!'] = true
		lang.strongTerminators['?'] = true
	}
	for _, tp := range cfg.TerminatorPatterns {
		for _, r := range tp.Pattern {
			lang.terminators[r] = true
			lang.strongTerminators[r] = true
		}
	}
	if len(cfg.Ellipsis.Patterns) == 0 {
		lang.terminators['…'] = true
	}
	for _, p := range cfg.Ellipsis.Patterns {
		for _, r := range p {
			lang.terminators[r] = true
		}
	}

	seenEnclosureRune := make(map[rune]bool)
	typeID := 0
	for _, e := range cfg.Enclosures {
		openRunes := []rune(e.Open)
		closeRunes := []rune(e.Close)
		if len(openRunes) != 1 || len(closeRunes) != 1 {
			return nil, errs.New(errs.InvalidConfiguration, "enclosure open/close must be a single character: "+e.Open+"/"+e.Close)
		}
		open, closeRune := openRunes[0], closeRunes[0]
		if seenEnclosureRune[open] || (!e.Symmetric && seenEnclosureRune[closeRune]) {
			return nil, errs.New(errs.InvalidConfiguration, "duplicate enclosure character")
		}
		seenEnclosureRune[open] = true
		if !e.Symmetric {
			seenEnclosureRune[closeRune] = true
		}
		def := enclosureDef{typeID: typeID, open: open, close: closeRune, symmetric: e.Symmetric}
		lang.enclosures = append(lang.enclosures, def)
		lang.enclosureByRune[open] = def
		if !e.Symmetric {
			lang.enclosureByRune[closeRune] = def
		}
		typeID++
	}
	if typeID > maxEnclosureTypes {
		return nil, errs.New(errs.TooManyEnclosureTypes, "language declares more than 16 enclosure types")
	}

	lang.abbrevTrie = NewTrie(cfg.CaseSensitiveAbbreviations)
	for category, words := range cfg.Abbreviations {
		for _, w := range words {
			lang.abbrevTrie.Insert(w, category)
		}
	}

	for _, w := range cfg.SentenceStarters {
		lang.sentenceStarters[w] = true
	}

	for _, name := range cfg.Suppression.FastPatterns {
		if fn, ok := fastPatterns[name]; ok {
			lang.fastPatterns = append(lang.fastPatterns, fn)
		}
	}
	for _, pat := range cfg.Suppression.RegexPatterns {
		re, err := regexp.Compile(pat)
		if err != nil {
			return nil, errs.Wrap(errs.InvalidConfiguration, err)
		}
		lang.regexPatterns = append(lang.regexPatterns, re)
	}

	return lang, nil
}

const maxEnclosureTypes = 16
