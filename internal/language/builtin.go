// Package language bundles two default rule sets (English, Japanese) as
// embedded YAML assets, following the same go:embed-a-leaf-directory
// pattern the teacher corpus uses for bundling non-Go assets (see
// hazyhaar-GoRAGlite's internal/assets package).
package language

import (
	"embed"
	"fmt"
	"sync"

	"github.com/boundaryx/boundaryx/internal/errs"
)

//go:embed data/*.yaml
var builtinFS embed.FS

var (
	builtinOnce  sync.Once
	builtinCache map[string]*Language
	builtinErr   error
)

func loadBuiltins() {
	builtinCache = make(map[string]*Language)
	for code, file := range map[string]string{
		"en": "data/en.yaml",
		"ja": "data/ja.yaml",
	} {
		data, err := builtinFS.ReadFile(file)
		if err != nil {
			builtinErr = err
			return
		}
		lang, err := LoadBytes(data)
		if err != nil {
			builtinErr = fmt.Errorf("compiling builtin language %q: %w", code, err)
			return
		}
		builtinCache[code] = lang
	}
}

// Builtin returns one of the library's bundled default rule sets
// ("en", "ja"). It returns an InvalidConfiguration error when code names
// no bundled language, and an error if the embedded asset itself fails
// to compile, which would indicate a packaging defect.
func Builtin(code string) (*Language, error) {
	builtinOnce.Do(loadBuiltins)
	if builtinErr != nil {
		return nil, builtinErr
	}
	lang, ok := builtinCache[code]
	if !ok {
		return nil, errs.New(errs.InvalidConfiguration, fmt.Sprintf("no builtin language %q", code))
	}
	return lang, nil
}

// BuiltinCodes lists the bundled language codes.
func BuiltinCodes() []string {
	return []string{"en", "ja"}
}
