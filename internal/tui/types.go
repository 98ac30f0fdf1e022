package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/alanpramil7/ytetl/internal/yt/services"
)

// AppState represents the current state of the application
type AppState int

const (
	StateNormal AppState = iota
	StateSearchInput
	StateLoading
)

// AppModel represents the app state
type AppModel struct {
	state     AppState
	extractor services.Extractor
	maxPages  int

	searchInput textinput.Model
	results     viewport.Model
	report      *services.KeywordReport
	selected    int

	width, height int
	err           error
}

// Custom messages for async operations
type extractCompleteMsg *services.KeywordReport
type extractErrorMsg error
