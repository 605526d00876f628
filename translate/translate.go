// Package translate renders operator-facing messages in the user's locale.
package translate

import (
	"sync"

	"github.com/jeandeaual/go-locale"
	"github.com/rs/zerolog/log"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	printerOnce sync.Once
	printer     *message.Printer
)

func defaultPrinter() *message.Printer {
	printerOnce.Do(func() {
		locales, err := locale.GetLocales()
		if err != nil {
			log.Debug().Err(err).Msg("gnt: locale")
		}

		if len(locales) == 0 {
			locales = []string{"en-US"}
		}

		printer = message.NewPrinter(message.MatchLanguage(locales...))
	})
	return printer
}

// Use overrides the detected locale, e.g. from the configuration file.
// An empty or unparsable tag leaves the detected locale in place.
func Use(tag string) {
	lang, err := language.Parse(tag)
	if err != nil {
		return
	}
	defaultPrinter()
	printer = message.NewPrinter(lang)
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return defaultPrinter().Sprintf(key, args...)
}
