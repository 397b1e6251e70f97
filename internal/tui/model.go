package tui

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/redactyl/zerowidth/internal/report"
	"github.com/redactyl/zerowidth/internal/stego"
	"github.com/redactyl/zerowidth/internal/types"
)

var (
	tableBorderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("240"))

	detailPaneBorderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("240"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true).
			Padding(0, 1)

	matchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("7")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	statusStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("7"))

	emptyTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Align(lipgloss.Center)

	popupStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("12")).
			Background(lipgloss.Color("235")).
			Padding(1, 4)

	sevHighStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	sevMedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	sevLowStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

const defaultStatus = "q: quit | ?: help | /: search | s: strip file | b: baseline | r: rescan"

// Options configures the viewer. Every field is optional; actions whose
// dependency is missing report that they are unavailable.
type Options struct {
	// Root is the directory finding paths are relative to.
	Root string
	// Detector is used to strip files in place.
	Detector *stego.Detector
	// Baseline marks accepted findings; BaselinePath is where "b" writes.
	Baseline     report.Baseline
	BaselinePath string
	Rescan       func() ([]types.Finding, error)
	// CachedAt is set when findings come from a saved scan.
	CachedAt time.Time
}

// Model is the bubbletea model for browsing findings.
type Model struct {
	table       table.Model
	viewport    viewport.Model
	spinner     spinner.Model
	searchInput textinput.Model

	opts      Options
	prefs     Prefs
	baselined map[string]bool

	findings         []types.Finding
	filteredFindings []types.Finding
	filteredIndices  []int
	searchQuery      string
	severityFilter   types.Severity
	contextLines     int

	width, height int
	ready         bool
	quitting      bool
	scanning      bool
	searchMode    bool
	showHelp      bool
	viewingCached bool

	statusMessage string
	statusTimeout *time.Time
	lastScanTime  time.Time
}

type (
	findingsMsg []types.Finding
	statusMsg   string
	strippedMsg struct {
		path    string
		changed bool
		err     error
	}
)

func statusCmd(s string) tea.Cmd {
	return func() tea.Msg { return statusMsg(s) }
}

// severityText returns plain text for severity (ANSI codes break table truncation).
func severityText(s types.Severity) string {
	switch s {
	case types.SevHigh:
		return "HIGH"
	case types.SevMed:
		return "MED"
	case types.SevLow:
		return "LOW"
	default:
		return string(s)
	}
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}

// NewModel builds a viewer over findings with payloads hidden.
func NewModel(findings []types.Finding, opts Options) Model {
	columns := []table.Column{
		{Title: "Sev", Width: 10},
		{Title: "Detector", Width: 12},
		{Title: "Location", Width: 40},
		{Title: "Payload", Width: 35},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = lipgloss.NewStyle().
		Background(lipgloss.Color("235")).
		Foreground(lipgloss.Color("15")).
		Bold(true).
		Padding(0, 1).
		Align(lipgloss.Left)
	s.Selected = lipgloss.NewStyle().
		Foreground(lipgloss.Color("232")).
		Background(lipgloss.Color("208")).
		Bold(true).
		Padding(0, 1)
	s.Cell = lipgloss.NewStyle().Padding(0, 1)
	t.SetStyles(s)

	// Line spinner avoids Braille characters that render poorly on some terminals
	sp := spinner.New()
	sp.Spinner = spinner.Line
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	ti := textinput.New()
	ti.Placeholder = "Search path, detector, or payload..."
	ti.CharLimit = 100
	ti.Width = 50
	ti.Prompt = "/ "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))

	baselined := make(map[string]bool, len(opts.Baseline.Items))
	for k, v := range opts.Baseline.Items {
		if v {
			baselined[k] = true
		}
	}

	m := Model{
		table:         t,
		spinner:       sp,
		searchInput:   ti,
		opts:          opts,
		prefs:         DefaultPrefs(),
		baselined:     baselined,
		findings:      findings,
		contextLines:  3,
		statusMessage: defaultStatus,
		lastScanTime:  time.Now(),
	}
	if !opts.CachedAt.IsZero() {
		m.viewingCached = true
		m.lastScanTime = opts.CachedAt
	}
	m.rebuildTableRows()
	return m
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *Model) rescan() tea.Cmd {
	fn := m.opts.Rescan
	return func() tea.Msg {
		newFindings, err := fn()
		if err != nil {
			return statusMsg(fmt.Sprintf("Scan error: %v", err))
		}
		return findingsMsg(newFindings)
	}
}

func (m *Model) applyFilters() {
	if m.searchQuery == "" && m.severityFilter == "" {
		m.filteredFindings = nil
		m.filteredIndices = nil
		m.rebuildTableRows()
		return
	}

	query := strings.ToLower(m.searchQuery)
	filtered := []types.Finding{}
	indices := []int{}
	for i, f := range m.findings {
		if m.severityFilter != "" && f.Severity != m.severityFilter {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(f.Path), query) &&
			!strings.Contains(strings.ToLower(f.Detector), query) &&
			!strings.Contains(strings.ToLower(f.Payload), query) {
			continue
		}
		filtered = append(filtered, f)
		indices = append(indices, i)
	}
	m.filteredFindings = filtered
	m.filteredIndices = indices
	m.rebuildTableRows()
}

func (m *Model) clearFilters() {
	m.searchQuery = ""
	m.severityFilter = ""
	m.searchInput.SetValue("")
	m.applyFilters()
}

func (m *Model) rebuildTableRows() {
	findings := m.getDisplayFindings()
	rows := make([]table.Row, len(findings))
	for i, f := range findings {
		sev := severityText(f.Severity)
		if m.baselined[report.Key(f)] {
			sev = "(b) " + sev
		}
		rows[i] = table.Row{sev, f.Detector, location(f), m.payloadCell(f)}
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(findings) {
		m.table.SetCursor(0)
	}
	m.updateViewportContent()
}

func (m *Model) getDisplayFindings() []types.Finding {
	if m.filteredFindings != nil {
		return m.filteredFindings
	}
	return m.findings
}

func (m *Model) getOriginalIndex(displayIdx int) int {
	if m.filteredIndices != nil {
		if displayIdx >= 0 && displayIdx < len(m.filteredIndices) {
			return m.filteredIndices[displayIdx]
		}
		return -1
	}
	return displayIdx
}

func (m *Model) selectedFinding() *types.Finding {
	idx := m.getOriginalIndex(m.table.Cursor())
	if idx < 0 || idx >= len(m.findings) {
		return nil
	}
	return &m.findings[idx]
}

// dropPath removes every finding in path, after the file was stripped.
func (m *Model) dropPath(path string) {
	kept := m.findings[:0:0]
	for _, f := range m.findings {
		if f.Path != path {
			kept = append(kept, f)
		}
	}
	m.findings = kept
	m.applyFilters()
}

func (m *Model) resolve(path string) string {
	if filepath.IsAbs(path) || m.opts.Root == "" {
		return path
	}
	return filepath.Join(m.opts.Root, filepath.FromSlash(path))
}

func location(f types.Finding) string {
	return fmt.Sprintf("%s:%d:%d", f.Path, f.Line, f.Column)
}

func (m *Model) payloadText(f types.Finding) string {
	if m.prefs.HidePayloads {
		return maskPayload(f.Payload)
	}
	return f.Payload
}

func (m *Model) payloadCell(f types.Finding) string {
	switch {
	case f.Context != "":
		return "undecodable"
	case f.Detector == types.DetectorProvenance && f.Metadata["href"] != "":
		return "copied from " + f.Metadata["href"]
	case f.Payload == "":
		return ""
	}
	return strings.Join(strings.Fields(m.payloadText(f)), " ")
}

func (m *Model) expandContext() {
	m.contextLines += 2
	if m.contextLines > 20 {
		m.contextLines = 20
	}
	m.updateViewportContent()
}

func (m *Model) contractContext() {
	m.contextLines -= 2
	if m.contextLines < 1 {
		m.contextLines = 1
	}
	m.updateViewportContent()
}

func (m *Model) togglePayloads() tea.Cmd {
	m.prefs.HidePayloads = !m.prefs.HidePayloads
	m.rebuildTableRows()
	msg := "Payloads shown"
	if m.prefs.HidePayloads {
		msg = "Payloads hidden"
	}
	if err := SavePrefs(m.prefs); err != nil {
		msg += fmt.Sprintf(" (not saved: %v)", err)
	}
	return statusCmd(msg)
}

func readFileContext(path string, targetLine int, contextLines int) ([]string, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	startLine := targetLine - contextLines
	if startLine < 1 {
		startLine = 1
	}
	endLine := targetLine + contextLines

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4<<20)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		if lineNum >= startLine && lineNum <= endLine {
			lines = append(lines, scanner.Text())
		}
		if lineNum > endLine {
			break
		}
	}
	return lines, startLine, scanner.Err()
}

func highlightLine(line string, filename string) string {
	lexer := lexers.Match(filename)
	if lexer == nil {
		if ext := filepath.Ext(filename); ext != "" {
			lexer = lexers.Match("file" + ext)
		}
	}
	if lexer == nil {
		return line
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		return line
	}

	iterator, err := lexer.Tokenise(nil, line)
	if err != nil {
		return line
	}
	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return line
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// markRun renders line with the invisible run replaced by a visible marker.
func markRun(line string, f types.Finding) string {
	idx := -1
	if f.Match != "" {
		idx = strings.Index(line, f.Match)
	}
	if idx < 0 {
		return highlightLine(line, f.Path)
	}
	marker := matchStyle.Render(fmt.Sprintf("[%d hidden]", f.Symbols))
	return highlightLine(line[:idx], f.Path) + marker + highlightLine(line[idx+len(f.Match):], f.Path)
}

func (m *Model) updateViewportContent() {
	findings := m.getDisplayFindings()
	if len(findings) == 0 || !m.ready {
		m.viewport.SetContent("")
		return
	}
	idx := m.table.Cursor()
	if idx >= 0 && idx < len(findings) {
		m.viewport.SetContent(m.detailFor(findings[idx]))
	}
}

func (m *Model) detailFor(f types.Finding) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Finding") + "\n\n")
	fmt.Fprintf(&b, "%s %s\n", keyStyle.Render("Location:"), location(f))
	fmt.Fprintf(&b, "%s %s (%s)\n", keyStyle.Render("Detector:"), f.Detector, severityText(f.Severity))
	fmt.Fprintf(&b, "%s %d %s symbols\n", keyStyle.Render("Run:"), f.Symbols, f.Alphabet)
	if m.baselined[report.Key(f)] {
		fmt.Fprintf(&b, "%s yes\n", keyStyle.Render("Baselined:"))
	}

	switch {
	case f.Context != "":
		fmt.Fprintf(&b, "%s %s\n", keyStyle.Render("Undecodable:"), f.Context)
	case f.Payload != "":
		hint := ""
		if m.prefs.HidePayloads {
			hint = dimStyle.Render("  (p to show)")
		}
		fmt.Fprintf(&b, "%s %q%s\n", keyStyle.Render("Payload:"), m.payloadText(f), hint)
	}

	if len(f.Metadata) > 0 {
		keys := make([]string, 0, len(f.Metadata))
		for k := range f.Metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "  %s %s\n", keyStyle.Render(k+":"), f.Metadata[k])
		}
	}

	lines, start, err := readFileContext(m.resolve(f.Path), f.Line, m.contextLines)
	if err != nil || len(lines) == 0 {
		return b.String()
	}
	b.WriteString("\n" + titleStyle.Render("Context") + "\n")
	for i, line := range lines {
		n := start + i
		if n == f.Line {
			fmt.Fprintf(&b, "%s %s\n", matchStyle.Render(fmt.Sprintf("> %4d |", n)), markRun(line, f))
			continue
		}
		fmt.Fprintf(&b, "%s %s\n", dimStyle.Render(fmt.Sprintf("  %4d |", n)), highlightLine(line, f.Path))
	}
	return b.String()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		if m.scanning {
			if msg.String() == "ctrl+c" {
				m.quitting = true
				return m, tea.Quit
			}
			return m, nil
		}

		if m.searchMode {
			switch msg.String() {
			case "enter":
				m.searchQuery = m.searchInput.Value()
				m.searchMode = false
				m.searchInput.Blur()
				return m, nil
			case "esc":
				m.searchMode = false
				m.searchInput.Blur()
				m.searchInput.SetValue(m.searchQuery)
				m.applyFilters()
				return m, nil
			default:
				m.searchInput, cmd = m.searchInput.Update(msg)
				m.searchQuery = m.searchInput.Value()
				m.applyFilters()
				return m, cmd
			}
		}

		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "?":
			m.showHelp = true
			return m, nil
		case "/":
			if len(m.findings) > 0 {
				m.searchMode = true
				m.searchInput.SetValue(m.searchQuery)
				return m, m.searchInput.Focus()
			}
		case "1", "2", "3":
			m.severityFilter = map[string]types.Severity{"1": types.SevHigh, "2": types.SevMed, "3": types.SevLow}[msg.String()]
			m.applyFilters()
			return m, statusCmd(fmt.Sprintf("Showing %s severity only (Esc to clear)", severityText(m.severityFilter)))
		case "esc":
			if m.searchQuery != "" || m.severityFilter != "" {
				m.clearFilters()
				return m, statusCmd("Filters cleared")
			}
			return m, nil
		case "r":
			if m.opts.Rescan == nil {
				return m, statusCmd("Rescan not available")
			}
			m.scanning = true
			return m, tea.Batch(m.spinner.Tick, m.rescan())
		case "s":
			return m, m.stripSelected()
		case "b":
			return m, m.addToBaseline()
		case "c":
			return m, m.copyPayload()
		case "y":
			return m, m.copyLocation()
		case "p":
			return m, m.togglePayloads()
		case "+", "=":
			m.expandContext()
			return m, nil
		case "-":
			m.contractContext()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		usableWidth := m.width - 10
		sevWidth := 10
		detectorWidth := 12
		remainingWidth := usableWidth - sevWidth - detectorWidth
		locWidth := int(float64(remainingWidth) * 0.5)
		payloadWidth := remainingWidth - locWidth
		if locWidth < 25 {
			locWidth = 25
		}
		if payloadWidth < 20 {
			payloadWidth = 20
		}
		cols := m.table.Columns()
		cols[0].Width = sevWidth
		cols[1].Width = detectorWidth
		cols[2].Width = locWidth
		cols[3].Width = payloadWidth
		m.table.SetColumns(cols)

		availableHeight := m.height - lipgloss.Height(statusStyle.Render("")) - 1
		tableHeight := int(float64(availableHeight) * 0.45)
		viewportHeight := availableHeight - tableHeight - detailPaneBorderStyle.GetVerticalFrameSize() - 1
		m.table.SetWidth(m.width)
		m.table.SetHeight(tableHeight)
		if m.viewport.Height == 0 {
			m.viewport = viewport.New(m.width, viewportHeight)
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = viewportHeight
		}
		statusStyle = statusStyle.Width(m.width)

	case findingsMsg:
		m.findings = msg
		m.scanning = false
		m.viewingCached = false
		m.lastScanTime = time.Now()
		m.applyFilters()
		m.setStatus(fmt.Sprintf("Rescan complete - %d findings", len(m.findings)))
		return m, nil

	case strippedMsg:
		switch {
		case msg.err != nil:
			m.setStatus(fmt.Sprintf("Strip failed: %v", msg.err))
		case msg.changed:
			m.dropPath(msg.path)
			m.setStatus("Stripped " + msg.path)
		default:
			m.setStatus(msg.path + " has nothing to strip")
		}
		return m, nil

	case statusMsg:
		m.scanning = false
		m.setStatus(string(msg))
		return m, nil

	case spinner.TickMsg:
		var spinCmd tea.Cmd
		m.spinner, spinCmd = m.spinner.Update(msg)
		if m.statusTimeout != nil && time.Now().After(*m.statusTimeout) {
			m.statusTimeout = nil
			m.statusMessage = defaultStatus
		}
		return m, spinCmd
	}

	if !m.quitting && len(m.getDisplayFindings()) > 0 {
		m.table, cmd = m.table.Update(msg)
	}
	m.updateViewportContent()
	return m, cmd
}

func (m *Model) setStatus(s string) {
	timeout := time.Now().Add(4 * time.Second)
	m.statusTimeout = &timeout
	m.statusMessage = s
}

const helpText = `Navigation
  j/k, up/down   move
  g/G            top / bottom

Filters
  /              search path, detector, payload
  1/2/3          high / medium / low only
  esc            clear filters

Actions
  s              strip hidden runs from the selected file
  b              add selected finding to the baseline
  c              copy decoded payload
  y              copy location
  p              show or hide payloads
  +/-            more or less context
  r              rescan
  q              quit`

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Initializing..."
	}

	if m.scanning {
		popup := popupStyle.
			Width(45).
			Align(lipgloss.Center).
			Render(fmt.Sprintf("%s  Rescanning...\n\nPlease wait", m.spinner.View()))
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, popup)
	}
	if m.showHelp {
		popup := popupStyle.Render(titleStyle.Render("Keys") + "\n\n" + helpText)
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, popup)
	}

	displayFindings := m.getDisplayFindings()
	var highCount, medCount, lowCount int
	for _, f := range displayFindings {
		switch f.Severity {
		case types.SevHigh:
			highCount++
		case types.SevMed:
			medCount++
		case types.SevLow:
			lowCount++
		}
	}

	var statsContent string
	if len(m.findings) == 0 {
		statsContent = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render("[OK] No hidden payloads found")
	} else {
		var filterInfo string
		if m.searchQuery != "" || m.severityFilter != "" {
			var parts []string
			if m.searchQuery != "" {
				parts = append(parts, fmt.Sprintf("search:'%s'", m.searchQuery))
			}
			if m.severityFilter != "" {
				parts = append(parts, "sev:"+severityText(m.severityFilter))
			}
			filterInfo = fmt.Sprintf("  [FILTER: %s]", strings.Join(parts, ", "))
		}
		statsContent = fmt.Sprintf(
			"Showing: %d/%d  |  %s %-4d  |  %s %-4d  |  %s %-4d%s",
			len(displayFindings), len(m.findings),
			sevHighStyle.Render("High:"), highCount,
			sevMedStyle.Render("Med:"), medCount,
			sevLowStyle.Render("Low:"), lowCount,
			filterInfo,
		)
	}
	statsHeader := lipgloss.NewStyle().
		Width(m.width).
		Padding(0, 2).
		Foreground(lipgloss.Color("15")).
		Background(lipgloss.Color("237")).
		Render(statsContent)

	tableRender := tableBorderStyle.
		Width(m.width).
		Height(m.table.Height()).
		Render(m.table.View())

	var detailContent string
	if len(displayFindings) == 0 {
		emptyMsg := "Nothing hidden here.\n\nPress 'r' to rescan\nPress '?' for help"
		if len(m.findings) > 0 {
			emptyMsg = "No findings match filter.\n\nPress 'Esc' to clear filter"
		}
		detailContent = lipgloss.Place(m.width, m.viewport.Height, lipgloss.Center, lipgloss.Center, emptyTextStyle.Render(emptyMsg))
	} else {
		detailContent = m.viewport.View()
	}
	detailRender := detailPaneBorderStyle.
		Width(m.width).
		Height(m.viewport.Height).
		Render(detailContent)

	var timeInfo string
	if m.viewingCached {
		timeInfo = "Cached: " + m.lastScanTime.Format("Jan 2, 15:04")
	} else if !m.lastScanTime.IsZero() {
		timeInfo = fmt.Sprintf("Scanned: %s ago", formatDuration(time.Since(m.lastScanTime)))
	}
	spacer := m.width - 4 - lipgloss.Width(m.statusMessage) - lipgloss.Width(timeInfo)
	if spacer < 1 {
		spacer = 1
	}
	statusRender := statusStyle.
		Width(m.width).
		Padding(0, 2).
		Render(m.statusMessage + strings.Repeat(" ", spacer) + timeInfo)

	bottomBar := statusRender
	if m.searchMode {
		bottomBar = lipgloss.NewStyle().
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("15")).
			Width(m.width).
			Padding(0, 1).
			Render(m.searchInput.View() + fmt.Sprintf(" (%d matches)", len(displayFindings)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, statsHeader, tableRender, detailRender, bottomBar)
}
