// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package translate formats user visible messages for the host locale.
package translate

import (
	"log"
	"sync"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/message"
)

const fallbackLocale = "en-US"

var printer = sync.OnceValue(func() *message.Printer {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("hmmm: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{fallbackLocale}
	}

	return message.NewPrinter(message.MatchLanguage(locales...))
})

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer().Sprintf(key, args...)
}
