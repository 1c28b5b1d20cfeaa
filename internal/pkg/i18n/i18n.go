package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	English = "en"
	Arabic  = "ar"

	DefaultLocale = English
)

type Translations map[string]string

//go:embed locales
var embedded embed.FS

var (
	locales = make(map[string]Translations)
	mu      sync.RWMutex
	once    sync.Once
)

// LoadTranslations reads <root>/<locale>/messages.yaml for every locale directory in fsys.
func LoadTranslations(fsys fs.FS, root string) error {
	mu.Lock()
	defer mu.Unlock()

	entries, err := fs.ReadDir(fsys, root)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		locale := entry.Name()
		filePath := path.Join(root, locale, "messages.yaml")

		data, err := fs.ReadFile(fsys, filePath)
		if err != nil {
			continue
		}

		var catalog struct {
			Messages Translations `yaml:"MESSAGES"`
		}
		if err := yaml.Unmarshal(data, &catalog); err != nil {
			return fmt.Errorf("failed to parse %s: %w", filePath, err)
		}

		locales[locale] = catalog.Messages
	}

	return nil
}

func ensureLoaded() {
	once.Do(func() {
		if err := LoadTranslations(embedded, "locales"); err != nil {
			panic(fmt.Sprintf("i18n: embedded catalogs are broken: %v", err))
		}
	})
}

// Normalize maps an Accept-Language style tag ("ar-EG", "en_US") to a supported locale.
func Normalize(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if i := strings.IndexAny(tag, ",;"); i >= 0 {
		tag = tag[:i]
	}
	if i := strings.IndexAny(tag, "-_"); i >= 0 {
		tag = tag[:i]
	}
	switch tag {
	case Arabic:
		return Arabic
	case English:
		return English
	default:
		return ""
	}
}

func Translate(locale, key string) string {
	ensureLoaded()

	mu.RLock()
	defer mu.RUnlock()

	if trans, ok := locales[locale]; ok {
		if val, ok := trans[key]; ok {
			return val
		}
	}

	if locale != DefaultLocale {
		if trans, ok := locales[DefaultLocale]; ok {
			if val, ok := trans[key]; ok {
				return val
			}
		}
	}

	return key
}

// Format translates key and substitutes {name} placeholders from args.
func Format(locale, key string, args map[string]string) string {
	msg := Translate(locale, key)
	if len(args) == 0 {
		return msg
	}
	pairs := make([]string, 0, len(args)*2)
	for k, v := range args {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}
