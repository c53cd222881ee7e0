package transpiler

import (
	"embed"

	"github.com/kaptinlin/go-i18n"
)

//go:embed locales/*.json
var localesFS embed.FS

// GetI18n returns the localization bundle holding translated messages for
// the transpile error kinds and CLI usage errors (the CLI itself prints
// errors untranslated), kept from the teacher validator's embedding
// mechanism (internal/validate's GetI18n) and narrowed to the same two
// locales.
func GetI18n() (*i18n.I18n, error) {
	bundle := i18n.NewBundle(
		i18n.WithDefaultLocale("en"),
		i18n.WithLocales("en", "zh-Hans"),
	)

	err := bundle.LoadFS(localesFS, "locales/*.json")

	return bundle, err
}
