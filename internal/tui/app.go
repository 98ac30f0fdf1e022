package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/alanpramil7/ytetl/internal/yt"
	"github.com/alanpramil7/ytetl/internal/yt/services"
)

const (
	searchCharLimit = 100
	searchWidth     = 50
	extractTimeout  = 5 * time.Minute
)

// UI color constants
const (
	colorPrimary   = "#00D9FF"
	colorSecondary = "#BD93F9"
	colorText      = "#F8F8F2"
	colorMuted     = "#6272A4"
	colorBorder    = "#3C3C3C"
	colorError     = "#FF5555"
	colorWarning   = "#FFB86C"
	colorSuccess   = "#50FA7B"
	colorHelp      = "#626262"
)

var (
	leftPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colorBorder)).
			Padding(0, 1)

	rightPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colorBorder)).
			Padding(0, 1)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colorPrimary)).
			Padding(1, 3).
			Margin(1, 0)

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorPrimary)).
			Bold(true).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorHelp))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorPrimary)).
			Bold(true).
			MarginBottom(1).
			PaddingLeft(1)

	emptyStateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorHelp)).
			Italic(true).
			Align(lipgloss.Center).
			MarginTop(2)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorError)).
			Bold(true)

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorWarning)).
			Bold(true)

	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorMuted))
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorText))
)

// NewApp creates a results browser that extracts one keyword at a time.
func NewApp(extractor services.Extractor, maxPages int) *AppModel {
	searchInput := textinput.New()
	searchInput.Placeholder = "Enter keyword..."
	searchInput.Focus()
	searchInput.CharLimit = searchCharLimit
	searchInput.Width = searchWidth
	searchInput.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorPrimary))
	searchInput.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorText))

	resultsViewport := viewport.New(0, 0)
	resultsViewport.MouseWheelEnabled = true

	return &AppModel{
		state:       StateNormal,
		extractor:   extractor,
		maxPages:    maxPages,
		searchInput: searchInput,
		results:     resultsViewport,
	}
}

func (m *AppModel) Init() tea.Cmd {
	return nil
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		leftWidth := int(float64(msg.Width)*0.35) - 6
		panelHeight := msg.Height - 6

		m.results = viewport.New(max(leftWidth-4, 0), max(panelHeight-2, 0))
		m.results.MouseWheelEnabled = true
		m.updateResultsViewport()

	case tea.KeyMsg:
		switch m.state {
		case StateNormal:
			return m.handleNormalKeys(msg)
		case StateSearchInput:
			return m.handleSearchInputKeys(msg)
		case StateLoading:
			return m.handleLoadingKeys(msg)
		}

	case extractCompleteMsg:
		m.state = StateNormal
		m.report = msg
		m.selected = 0
		m.updateResultsViewport()

	case extractErrorMsg:
		m.state = StateNormal
		m.err = msg

	default:
		var cmd tea.Cmd
		m.results, cmd = m.results.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *AppModel) records() []yt.VideoRecord {
	if m.report == nil {
		return nil
	}
	return m.report.Records
}

func (m *AppModel) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "/", "s":
		m.state = StateSearchInput
		m.searchInput.SetValue("")
		m.searchInput.Focus()
		return m, textinput.Blink
	case "up", "k":
		if m.selected > 0 {
			m.selected--
			m.updateResultsViewport()
		}
	case "down", "j":
		if m.selected < len(m.records())-1 {
			m.selected++
			m.updateResultsViewport()
		}
	case "g", "home":
		m.selected = 0
		m.updateResultsViewport()
	case "G", "end":
		if n := len(m.records()); n > 0 {
			m.selected = n - 1
			m.updateResultsViewport()
		}
	}
	return m, nil
}

func (m *AppModel) handleSearchInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.state = StateNormal
		m.searchInput.Blur()
		return m, nil
	case "enter":
		keyword := strings.TrimSpace(m.searchInput.Value())
		m.searchInput.Blur()
		if keyword == "" {
			m.state = StateNormal
			return m, nil
		}
		m.state = StateLoading
		return m, m.performExtract(keyword)
	default:
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}
}

func (m *AppModel) handleLoadingKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	return m, nil
}

func (m *AppModel) performExtract(keyword string) tea.Cmd {
	extractor, maxPages := m.extractor, m.maxPages
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), extractTimeout)
		defer cancel()

		report, err := extractor.ExtractKeyword(ctx, keyword, maxPages)
		if err != nil {
			return extractErrorMsg(fmt.Errorf("extract failed: %w", err))
		}
		return extractCompleteMsg(report)
	}
}

func (m *AppModel) updateResultsViewport() {
	var b strings.Builder
	for i, r := range m.records() {
		stats := fmt.Sprintf("%d. ♥ %s  💬 %s", i+1, humanCount(r.LikeCount), humanCount(r.CommentCount))
		if i == m.selected {
			indicator := lipgloss.NewStyle().Foreground(lipgloss.Color(colorPrimary)).Render("▶ ")
			title := lipgloss.NewStyle().Foreground(lipgloss.Color(colorPrimary)).Bold(true).
				Render(truncate(r.Title, 40))
			meta := lipgloss.NewStyle().Foreground(lipgloss.Color(colorSecondary)).Italic(true).
				Render(stats)
			fmt.Fprintf(&b, "%s%s\n  %s\n", indicator, title, meta)
		} else {
			title := lipgloss.NewStyle().Foreground(lipgloss.Color(colorText)).
				Render(truncate(r.Title, 40))
			meta := lipgloss.NewStyle().Foreground(lipgloss.Color(colorMuted)).
				Render(stats)
			fmt.Fprintf(&b, "  %s\n  %s\n", title, meta)
		}
	}
	m.results.SetContent(b.String())

	// keep selected visible
	linesPerItem := 2
	start := m.selected * linesPerItem
	end := start + linesPerItem - 1
	visible := m.results.VisibleLineCount()

	if start < m.results.YOffset {
		m.results.SetYOffset(start)
	} else if end >= m.results.YOffset+visible {
		m.results.SetYOffset(end - visible + 1)
	}
}

func (m *AppModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	leftWidth := int(float64(m.width)*0.35) - 1
	rightWidth := m.width - leftWidth - 4
	panelHeight := m.height - 4

	var leftContent string
	switch {
	case m.report == nil:
		emptyMsg := `
    Press '/' or 's' to extract a keyword
    Press 'q' to quit`
		leftContent = emptyStateStyle.
			Width(leftWidth - 4).
			Height(panelHeight - 4).
			Render(emptyMsg)
	case len(m.report.Records) == 0:
		leftContent = titleStyle.Render(m.report.Keyword) + "\n" +
			emptyStateStyle.Width(leftWidth-4).Render("No videos found")
	default:
		title := titleStyle.Render(fmt.Sprintf("%s (%d)", m.report.Keyword, len(m.report.Records)))
		leftContent = title + "\n" + m.results.View()
	}
	leftPanel := leftPanelStyle.
		Width(leftWidth).
		Height(panelHeight).
		Render(leftContent)

	rightPanel := rightPanelStyle.
		Width(rightWidth).
		Height(panelHeight).
		Render(titleStyle.Render("Details") + "\n" + m.detailView(rightWidth-4))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, leftPanel, rightPanel)

	helpText := ""
	switch m.state {
	case StateNormal:
		if len(m.records()) > 0 {
			helpText = "'/' extract  •  ↑↓ navigate  •  g/G first/last  •  q quit"
		} else {
			helpText = "Press '/' or 's' to extract  •  Press 'q' to quit"
		}
	case StateLoading:
		helpText = loadingStyle.Render("Extracting from YouTube...")
	}

	if m.err != nil {
		helpText = errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
		m.err = nil
	}
	help := helpStyle.Render(helpText)

	if m.state == StateSearchInput {
		title := modalTitleStyle.Render("Extract keyword")
		input := m.searchInput.View()
		helperText := lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorHelp)).
			Italic(true).
			Render(fmt.Sprintf("↵ Enter to extract (up to %d pages)  •  ESC to cancel", m.maxPages))

		modalContent := fmt.Sprintf("%s\n\n%s\n\n%s", title, input, helperText)
		modal := modalStyle.Render(modalContent)
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal,
			lipgloss.WithWhitespaceBackground(lipgloss.NoColor{}))
	}

	return mainView + "\n" + help
}

// detailView renders every field of the selected record.
func (m *AppModel) detailView(width int) string {
	recs := m.records()
	if m.selected < 0 || m.selected >= len(recs) {
		return emptyStateStyle.Render("No video selected")
	}
	r := recs[m.selected]

	status := lipgloss.NewStyle().Foreground(lipgloss.Color(colorSuccess)).Bold(true).
		Render(fmt.Sprintf("#%d of %d  •  %s", m.selected+1, len(recs), m.report.Termination))

	duration := "unknown"
	if r.DurationSeconds != nil {
		duration = (time.Duration(*r.DurationSeconds) * time.Second).String()
	}
	tags := "none"
	if len(r.Tags) > 0 {
		tags = strings.Join(r.Tags, ", ")
	}

	fields := []struct{ label, value string }{
		{"Channel", r.ChannelTitle},
		{"Published", r.PublishedAt},
		{"Views", humanCount(r.ViewCount)},
		{"Likes", humanCount(r.LikeCount)},
		{"Comments", humanCount(r.CommentCount)},
		{"Duration", duration},
		{"Definition", r.Definition},
		{"Captions", strconv.FormatBool(r.CaptionAvailable)},
		{"Category", r.CategoryID},
		{"Language", r.DefaultLanguage},
		{"Privacy", r.PrivacyStatus},
		{"Live", r.LiveBroadcastContent},
		{"Tags", truncate(tags, max(width-12, 10))},
		{"Thumbnail", r.ThumbnailURL},
		{"URL", r.URL},
	}

	var b strings.Builder
	b.WriteString(status + "\n\n")
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorPrimary)).Render(r.Title) + "\n\n")
	for _, f := range fields {
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render(fmt.Sprintf("%-11s", f.label+":")), valueStyle.Render(f.value))
	}
	b.WriteString("\n" + labelStyle.Render(truncate(r.Description, 200)))
	return b.String()
}

// humanCount formats n with k/M suffixes.
func humanCount(n int64) string {
	switch {
	case n >= 1_000_000:
		return strconv.FormatFloat(float64(n)/1_000_000, 'f', 1, 64) + "M"
	case n >= 1_000:
		return strconv.FormatFloat(float64(n)/1_000, 'f', 1, 64) + "k"
	default:
		return strconv.FormatInt(n, 10)
	}
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
