// internal/utils/format.go
package utils

import (
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	printersMu sync.Mutex
	printers   = map[string]*message.Printer{}
)

func printer(lang string) *message.Printer {
	printersMu.Lock()
	defer printersMu.Unlock()

	if p, ok := printers[lang]; ok {
		return p
	}
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.Korean
	}
	p := message.NewPrinter(tag)
	printers[lang] = p
	return p
}

// FormatNumber groups digits the way lang writes them, e.g. 1234567 -> "1,234,567".
func FormatNumber(lang string, n int64) string {
	return printer(lang).Sprintf("%d", n)
}
