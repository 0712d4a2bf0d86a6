package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-lending-go/library/shared/shell"
)

const (
	outputText = "text"
	outputJSON = "json"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// printer renders command outcomes and query results either as colored text or as JSON.
type printer struct {
	w      io.Writer
	json   bool
	colors palette
}

func newPrinter(w io.Writer, asJSON bool) printer {
	return printer{w: w, json: asJSON, colors: paletteFor(w)}
}

type commandOutput struct {
	Command    string `json:"command"`
	Outcome    string `json:"outcome"`
	ID         string `json:"id,omitempty"`
	Affected   int    `json:"affected,omitempty"`
	Warning    string `json:"warning,omitempty"`
	Attempts   int    `json:"attempts,omitempty"`
	Idempotent bool   `json:"idempotent"`
}

// result prints the outcome of a successful command.
func (p printer) result(command string, id string, result shell.HandlerResult) error {
	outcome := shell.StatusSuccess
	if result.Idempotent {
		outcome = shell.StatusIdempotent
	}

	if p.json {
		return p.encode(commandOutput{
			Command:    command,
			Outcome:    outcome,
			ID:         id,
			Affected:   result.Affected,
			Warning:    result.Warning,
			Attempts:   result.RetryAttempts,
			Idempotent: result.Idempotent,
		})
	}

	line := p.colors.success(command + " " + outcome)
	if result.Idempotent {
		line = p.colors.muted(command + " " + outcome + " (nothing changed)")
	}
	if id != "" {
		line += " " + id
	}
	if result.Affected > 0 {
		line += fmt.Sprintf(" affected=%d", result.Affected)
	}

	if _, err := fmt.Fprintln(p.w, line); err != nil {
		return err
	}

	if result.HasWarning() {
		_, err := fmt.Fprintln(p.w, p.colors.warning("warning: "+result.Warning))
		return err
	}

	return nil
}

// value prints v as JSON, or calls text for the human readable form.
func (p printer) value(v any, text func(t *table)) error {
	if p.json {
		return p.encode(v)
	}

	t := &table{colors: p.colors}
	text(t)

	return t.flush(p.w)
}

func (p printer) encode(v any) error {
	body, err := jsonAPI.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(p.w, string(body))

	return err
}

// table collects a title, column headers, rows and footer lines for tabwriter.
type table struct {
	colors  palette
	title   string
	headers []string
	rows    [][]string
	footer  []string
}

func (t *table) withTitle(title string) *table {
	t.title = title
	return t
}

func (t *table) withHeaders(headers ...string) *table {
	t.headers = headers
	return t
}

func (t *table) addRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) addFooter(format string, args ...any) {
	t.footer = append(t.footer, fmt.Sprintf(format, args...))
}

func (t *table) flush(w io.Writer) error {
	if t.title != "" {
		if _, err := fmt.Fprintln(w, t.colors.header(t.title)); err != nil {
			return err
		}
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if len(t.headers) > 0 {
		_, _ = fmt.Fprintln(tw, strings.Join(t.headers, "\t"))
	}
	for _, row := range t.rows {
		_, _ = fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, line := range t.footer {
		if _, err := fmt.Fprintln(w, t.colors.muted(line)); err != nil {
			return err
		}
	}

	return nil
}
