package notify

import (
	"io"

	"github.com/pterm/pterm"
)

// Printer writes notifications to the terminal with pterm prefixes
type Printer struct {
	success pterm.PrefixPrinter
	info    pterm.PrefixPrinter
	warning pterm.PrefixPrinter
	failure pterm.PrefixPrinter
}

// NewPrinter creates a printer writing to w
func NewPrinter(w io.Writer) *Printer {
	return &Printer{
		success: *pterm.Success.WithWriter(w),
		info:    *pterm.Info.WithWriter(w),
		warning: *pterm.Warning.WithWriter(w),
		failure: *pterm.Error.WithWriter(w),
	}
}

func (p *Printer) Notify(n Notification) {
	printer := p.info
	switch n.Level {
	case LevelSuccess:
		printer = p.success
	case LevelWarning:
		printer = p.warning
	case LevelError:
		printer = p.failure
	}

	if n.Description == "" {
		printer.Println(n.Title)
		return
	}
	printer.Println(n.Title + ": " + n.Description)
}
