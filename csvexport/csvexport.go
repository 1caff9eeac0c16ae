// Package csvexport writes registrations as a CSV document for download.
//
// Every field is double-quoted, so the header is the only unquoted row.
// The optional statistics trailer follows a blank line.
package csvexport

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/oaiiae/hackathon-signup/datastores"
)

type Locale struct {
	Columns    [4]string // name, email, interest, registration time
	DateLayout string
	Missing    string // rendered for an unset timestamp
	StatsTitle string
	TotalLabel string
	DateLabel  string
}

var (
	PtBR = Locale{ //nolint: gochecknoglobals
		Columns:    [4]string{"Nome", "Email", "Interesse", "Data de Inscrição"},
		DateLayout: "02/01/2006, 15:04:05",
		Missing:    "N/A",
		StatsTitle: "ESTATÍSTICAS",
		TotalLabel: "Total de Inscritos",
		DateLabel:  "Data de Exportação",
	}
	EnUS = Locale{ //nolint: gochecknoglobals
		Columns:    [4]string{"Name", "Email", "Interest", "Registered at"},
		DateLayout: "1/2/2006, 3:04:05 PM",
		Missing:    "N/A",
		StatsTitle: "STATISTICS",
		TotalLabel: "Total registrations",
		DateLabel:  "Exported at",
	}
)

// LocaleFor returns the locale for a BCP 47 tag such as "pt-BR".
func LocaleFor(tag string) (Locale, bool) {
	switch strings.ToLower(tag) {
	case "pt-br", "pt":
		return PtBR, true
	case "en-us", "en":
		return EnUS, true
	default:
		return Locale{}, false
	}
}

type Exporter struct {
	Locale   Locale
	Location *time.Location   // defaults to [time.Local]
	Now      func() time.Time // defaults to [time.Now]
}

// Write renders rs, with the statistics trailer when withStats is set.
func (e *Exporter) Write(w io.Writer, rs []*datastores.Registration, withStats bool) error {
	bw := bufio.NewWriter(w)

	bw.WriteString(strings.Join(e.Locale.Columns[:], ","))
	bw.WriteByte('\n')
	for _, r := range rs {
		date := e.Locale.Missing
		if !r.Timestamp.IsZero() {
			date = e.format(r.Timestamp)
		}
		bw.WriteString(quote(r.Name) + "," + quote(r.Email) + "," + quote(r.Interest.Label()) + "," + quote(date))
		bw.WriteByte('\n')
	}

	if withStats {
		bw.WriteByte('\n')
		bw.WriteString(e.Locale.StatsTitle + "\n")
		bw.WriteString(e.Locale.TotalLabel + "," + strconv.Itoa(len(rs)) + "\n")
		bw.WriteString(e.Locale.DateLabel + "," + quote(e.format(e.now())) + "\n")
	}
	return bw.Flush()
}

// Filename names the download after the export date.
func (e *Exporter) Filename() string {
	return "inscritos-maratona-tech-" + e.now().In(e.location()).Format(time.DateOnly) + ".csv"
}

func (e *Exporter) format(t time.Time) string {
	return t.In(e.location()).Format(e.Locale.DateLayout)
}

func (e *Exporter) location() *time.Location {
	if e.Location == nil {
		return time.Local
	}
	return e.Location
}

func (e *Exporter) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
