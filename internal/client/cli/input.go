package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/dmitrijs2005/mybank/internal/client/views"
	"github.com/dmitrijs2005/mybank/internal/common"
)

// readPassword is a test seam for term.ReadPassword.
// In tests you can replace it with a stub to avoid touching the terminal.
var readPassword = term.ReadPassword

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// clearMarker typed at a prompt empties an optional field.
const clearMarker = "-"

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The trailing newline is trimmed. If EOF occurs after some input was read,
// the partial line is returned.
//
// Example prompt format:
//
//	Prompt text
//	> _
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassword prints prompt to w and reads a secret from the user's
// terminal without echo. A newline is printed after the read to keep the
// UI tidy.
//
// The returned byte slice should be wiped by the caller when no longer needed.
func GetPassword(prompt string, w io.Writer) ([]byte, error) {
	if _, err := fmt.Fprint(w, prompt+": "); err != nil {
		return nil, err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}

// confirm asks a yes/no question; anything but y or yes is a no.
func (a *App) confirm(prompt string) bool {
	ans, err := getSimpleText(a.reader, prompt+" (y/n)", a.out)
	if err != nil {
		return false
	}
	switch strings.ToLower(ans) {
	case "y", "yes":
		return true
	}
	return false
}

// argID takes the record id from the first argument or asks for it.
func (a *App) argID(args []string, what string) (int64, error) {
	raw := ""
	if len(args) > 0 {
		raw = args[0]
	} else {
		var err error
		if raw, err = getSimpleText(a.reader, "Enter "+what+" ID", a.out); err != nil {
			return 0, err
		}
	}
	id, err := strconv.ParseInt(views.SanitizeDigits(raw), 10, 64)
	if err != nil || id <= 0 {
		fmt.Fprintf(a.out, "Invalid %s ID: %q\n", what, raw)
		return 0, &views.ValidationError{Field: "id", Message: "invalid id"}
	}
	return id, nil
}

// fillForm prompts for every field of fields except skip, in order. An
// empty answer keeps the value already in form; the clear marker empties
// it. Amounts and digit fields are sanitized the way they are as typed.
func (a *App) fillForm(fields []views.Field, form views.Form, skip ...string) (views.Form, error) {
	if form == nil {
		form = views.Form{}
	}
	for _, f := range fields {
		if slices.Contains(skip, f.Name) {
			continue
		}
		v, err := a.promptField(f, form[f.Name])
		if err != nil {
			return form, err
		}
		switch v {
		case "":
		case clearMarker:
			delete(form, f.Name)
		default:
			form[f.Name] = v
		}
	}
	return form, nil
}

func (a *App) promptField(f views.Field, current string) (string, error) {
	label := f.Label
	if label == "" {
		label = f.Name
	}
	if f.Required {
		label += " *"
	}

	if f.Kind == views.KindSecret {
		pw, err := getPassword(label, a.out)
		if err != nil {
			return "", err
		}
		defer common.WipeByteArray(pw)
		return string(pw), nil
	}

	if f.Select != nil {
		for _, o := range f.Select.Options() {
			if o.Value == "" {
				fmt.Fprintf(a.out, "  %s\n", o.Label)
				continue
			}
			fmt.Fprintf(a.out, "  %s) %s\n", o.Value, o.Label)
		}
	}
	if current != "" {
		label += " [" + current + "]"
	}

	raw, err := getSimpleText(a.reader, label, a.out)
	if err != nil || raw == "" || raw == clearMarker {
		return raw, err
	}

	var in *views.Input
	switch f.Kind {
	case views.KindAmount:
		in = views.NewInput(views.InputAmount)
	case views.KindInt, views.KindDigits:
		in = views.NewInput(views.InputDigits)
	default:
		return raw, nil
	}
	in.Paste(raw)
	// An answer with nothing usable in it must not fall back to the kept value.
	if in.Value() == "" {
		name := f.Label
		if name == "" {
			name = f.Name
		}
		msg := "Please enter a valid " + strings.ToLower(name)
		fmt.Fprintln(a.out, msg)
		return "", &views.ValidationError{Field: f.Name, Message: msg}
	}
	return in.Value(), nil
}
