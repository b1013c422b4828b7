package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/GuusDeKroon/VRCprintutils/internal/utils"
	"github.com/GuusDeKroon/VRCprintutils/pkg/types"
)

// ErrNoInput is returned when the input stream ends before an answer.
var ErrNoInput = errors.New("no input")

// Prompter asks the interactive questions and hands back typed answers only.
// On a terminal the choices are bubbletea menus; piped input is read line by
// line.
type Prompter struct {
	in    *bufio.Reader
	tty   *os.File
	out   io.Writer
	style *Styler
}

// NewPrompter reads answers from in and writes questions to out.
func NewPrompter(in io.Reader, out io.Writer, style *Styler) *Prompter {
	p := &Prompter{in: bufio.NewReader(in), out: out, style: style}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.tty = f
	}
	return p
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		if err == io.EOF {
			return "", ErrNoInput
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Actions lets the user pick any of the edits. An empty selection is not an
// error and returns nil.
func (p *Prompter) Actions() ([]types.Action, error) {
	all := types.Actions()
	if p.tty == nil {
		return p.lineActions(all)
	}

	labels := make([]string, len(all))
	for i, a := range all {
		labels[i] = a.Label()
	}
	m, err := runMenu(newMenu("Select what you want to do:", labels, true, p.style), p.tty, p.out)
	if err != nil {
		return nil, err
	}
	var actions []types.Action
	for _, i := range m.selected() {
		actions = append(actions, all[i])
	}
	return types.SortActions(actions), nil
}

func (p *Prompter) lineActions(all []types.Action) ([]types.Action, error) {
	fmt.Fprintln(p.out, p.style.Cyan("Select what you want to do:"))
	for i, a := range all {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, a.Label())
	}

	for {
		fmt.Fprint(p.out, "Choose one or more (e.g. 1,2): ")
		line, err := p.readLine()
		if err != nil {
			return nil, err
		}
		actions, err := parseActionList(line, all)
		if err != nil {
			fmt.Fprintln(p.out, p.style.Red(err.Error()))
			continue
		}
		return types.SortActions(actions), nil
	}
}

// parseActionList reads a comma or semicolon separated answer. Each entry is
// space separated list of menu numbers and action names, or one full menu
// label such as "Change orientation".
func parseActionList(line string, all []types.Action) ([]types.Action, error) {
	var out []types.Action
	for _, entry := range strings.FieldsFunc(line, func(r rune) bool { return r == ',' || r == ';' }) {
		words, err := parseActionWords(strings.Fields(entry), all)
		if err != nil {
			a, labelErr := types.ParseAction(entry)
			if labelErr != nil {
				return nil, err
			}
			words = []types.Action{a}
		}
		out = append(out, words...)
	}
	return out, nil
}

func parseActionWords(words []string, all []types.Action) ([]types.Action, error) {
	var out []types.Action
	for _, w := range words {
		a, err := parseActionWord(w, all)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func parseActionWord(s string, all []types.Action) (types.Action, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > len(all) {
			return "", fmt.Errorf("no option %d", n)
		}
		return all[n-1], nil
	}
	return types.ParseAction(s)
}

// Direction asks which way to turn the photo. Clockwise is preselected.
func (p *Prompter) Direction() (types.Direction, error) {
	options := []types.Direction{types.Clockwise, types.CounterClockwise}
	if p.tty == nil {
		return p.lineDirection(options)
	}

	labels := make([]string, len(options))
	for i, d := range options {
		labels[i] = d.Label()
	}
	m, err := runMenu(newMenu("Rotate 90°:", labels, false, p.style), p.tty, p.out)
	if err != nil {
		return "", err
	}
	return options[m.selected()[0]], nil
}

func (p *Prompter) lineDirection(options []types.Direction) (types.Direction, error) {
	fmt.Fprintln(p.out, p.style.Cyan("Rotate 90°:"))
	for i, d := range options {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, d.Label())
	}

	for {
		fmt.Fprint(p.out, "Direction [1]: ")
		line, err := p.readLine()
		if err != nil {
			return "", err
		}
		if line == "" {
			return types.Clockwise, nil
		}
		if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(options) {
			return options[n-1], nil
		}
		d, err := types.ParseDirection(line)
		if err != nil {
			fmt.Fprintln(p.out, p.style.Red(err.Error()))
			continue
		}
		return d, nil
	}
}

// InputPath asks for an existing image file, repeating until one is given.
func (p *Prompter) InputPath() (string, error) {
	for {
		fmt.Fprint(p.out, "Input image path: ")
		line, err := p.readLine()
		if err != nil {
			return "", err
		}
		path := utils.CleanPath(line)
		switch {
		case path == "" || !utils.FileExists(path):
			fmt.Fprintln(p.out, p.style.Red("File not found. Paste a valid path."))
		case !utils.IsImageFile(path):
			fmt.Fprintln(p.out, p.style.Red("Not an image file."))
		default:
			return path, nil
		}
	}
}
