package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	redismodule "github.com/nebulaiq/redismodule-go"
	"github.com/nebulaiq/redismodule-go/hosttest"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#B22222")).
			Padding(0, 1)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	replyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// session holds the live context shared by the interactive and one-shot
// modes.
type session struct {
	ctx   *redismodule.Context
	srv   *hosttest.Server
	resp3 bool
}

func (s *session) invoke(cmd string, args []string) (redismodule.Value, error) {
	b := redismodule.NewCallOptionsBuilder().ErrorsAsReplies()
	if s.resp3 {
		b = b.Resp3()
	}
	raw := make([][]byte, len(args))
	for i, a := range args {
		raw[i] = []byte(a)
	}
	return s.ctx.CallExt(cmd, b.Build(), raw...)
}

// splitCommandLine splits a line into the command name and arguments,
// honoring single and double quotes.
func splitCommandLine(line string) (string, []string, error) {
	var fields []string
	var cur strings.Builder
	var quote byte
	inField := false

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			} else {
				cur.WriteByte(c)
			}
		case c == '\'' || c == '"':
			quote = c
			inField = true
		case c == ' ' || c == '\t':
			if inField {
				fields = append(fields, cur.String())
				cur.Reset()
				inField = false
			}
		default:
			cur.WriteByte(c)
			inField = true
		}
	}
	if quote != 0 {
		return "", nil, fmt.Errorf("unterminated quote")
	}
	if inField {
		fields = append(fields, cur.String())
	}
	if len(fields) == 0 {
		return "", nil, fmt.Errorf("empty command")
	}
	return fields[0], fields[1:], nil
}

// renderValue formats a decoded reply the way a protocol client would,
// with nested containers indented.
func renderValue(v redismodule.Value, depth int) string {
	pad := strings.Repeat("  ", depth)

	switch v.Kind {
	case redismodule.KindNull:
		return pad + "(nil)"
	case redismodule.KindInteger:
		return pad + "(integer) " + strconv.FormatInt(v.Int, 10)
	case redismodule.KindFloat, redismodule.KindDouble:
		return pad + "(double) " + strconv.FormatFloat(v.Float, 'g', -1, 64)
	case redismodule.KindBool:
		return pad + "(bool) " + strconv.FormatBool(v.Bool)
	case redismodule.KindSimpleString, redismodule.KindStaticSimpleString, redismodule.KindBulkString:
		return pad + strconv.Quote(v.Str)
	case redismodule.KindStringBuffer:
		return pad + strconv.Quote(string(v.Bytes))
	case redismodule.KindBigNumber:
		return pad + "(big number) " + v.Str
	case redismodule.KindVerbatimString:
		return pad + "(" + v.Format + ") " + strconv.Quote(string(v.Bytes))
	case redismodule.KindArray:
		if len(v.Array) == 0 {
			return pad + "(empty array)"
		}
		lines := make([]string, 0, len(v.Array))
		for i, elem := range v.Array {
			lines = append(lines, pad+strconv.Itoa(i+1)+")"+strings.TrimPrefix(renderValue(elem, depth+1), pad+"  "))
		}
		return strings.Join(lines, "\n")
	case redismodule.KindMap:
		if len(v.Map) == 0 {
			return pad + "(empty map)"
		}
		keys := make([]string, 0, len(v.Map))
		for k := range v.Map {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		lines := make([]string, 0, len(keys))
		for _, k := range keys {
			lines = append(lines, pad+strconv.Quote(k)+" =>")
			lines = append(lines, renderValue(v.Map[k], depth+1))
		}
		return strings.Join(lines, "\n")
	case redismodule.KindSet:
		if len(v.Set) == 0 {
			return pad + "(empty set)"
		}
		members := make([]string, 0, len(v.Set))
		for m := range v.Set {
			members = append(members, m)
		}
		sort.Strings(members)
		lines := make([]string, 0, len(members))
		for _, m := range members {
			lines = append(lines, pad+"~ "+strconv.Quote(m))
		}
		return strings.Join(lines, "\n")
	default:
		return pad + "(no reply)"
	}
}

// historyEntry is one executed command with its rendered outcome.
type historyEntry struct {
	line   string
	output string
	failed bool
}

type consoleModel struct {
	session *session
	input   textinput.Model
	history []historyEntry
}

type execResultMsg struct {
	entry historyEntry
}

func newConsoleModel(s *session) *consoleModel {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render("embedded> ")
	ti.Placeholder = "set key value"
	ti.Width = 60
	ti.Focus()
	return &consoleModel{session: s, input: ti}
}

func (m *consoleModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *consoleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			line := strings.TrimSpace(m.input.Value())
			if line == "" {
				return m, nil
			}
			if line == "quit" || line == "exit" {
				return m, tea.Quit
			}
			m.input.Reset()
			return m, m.exec(line)
		}

	case execResultMsg:
		m.history = append(m.history, msg.entry)
		if len(m.history) > 20 {
			m.history = m.history[len(m.history)-20:]
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *consoleModel) exec(line string) tea.Cmd {
	return func() tea.Msg {
		name, args, err := splitCommandLine(line)
		if err != nil {
			return execResultMsg{entry: historyEntry{line: line, output: err.Error(), failed: true}}
		}
		value, err := m.session.invoke(name, args)
		if err != nil {
			return execResultMsg{entry: historyEntry{line: line, output: err.Error(), failed: true}}
		}
		return execResultMsg{entry: historyEntry{line: line, output: renderValue(value, 0)}}
	}
}

func (m *consoleModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("embedded host console"))
	b.WriteString(" ")
	b.WriteString(typeStyle.Render(m.modeLabel()))
	b.WriteString("\n\n")

	for _, e := range m.history {
		b.WriteString(promptStyle.Render("> "))
		b.WriteString(e.line)
		b.WriteString("\n")
		if e.failed {
			b.WriteString(errorStyle.Render(e.output))
		} else {
			b.WriteString(replyStyle.Render(e.output))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("enter run • esc quit • handles live: " +
		strconv.Itoa(m.session.srv.Tracker().Live())))

	return b.String()
}

func (m *consoleModel) modeLabel() string {
	if m.session.resp3 {
		return "resp3"
	}
	return "resp2"
}

func (s *session) runInteractive() error {
	p := tea.NewProgram(newConsoleModel(s), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
