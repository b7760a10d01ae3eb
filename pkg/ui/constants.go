package ui

// Table Column Titles
const (
	ColForward = "FORWARD"
)

// Action Lines / Key Hints
const (
	ActionNormal        = "↑/↓: Navigate | a: Add | d: Delete | q: Quit"
	ActionNormalShort   = "↑/↓:Nav | a:Add | d:Del | q:Quit"
	ActionAddingForward = "(Enter to add, Esc to cancel)"
)

// Keyboard shortcuts
const (
	ShortcutQuit      = "ctrl+c"
	ShortcutAdd       = "a"
	ShortcutDelete    = "d"
	ShortcutBackspace = "backspace"
	ShortcutSubmit    = "enter"
	ShortcutCancel    = "esc"
)

// Numeric Constants for Layout/Indexing
const (
	MinTableHeight   = 4  // Minimum height for the forwards table
	ForwardsViewRows = 9  // Non-table lines in the view: title, header, input, message, help
	MinTableWidth    = 30 // Minimum width of the forward column
	NarrowWidth      = 80 // Below this the help text moves under the table
)

// Lipgloss Colors
const (
	ColorBorder     = "240"
	ColorSelectedFg = "229"
	ColorSelectedBg = "57"
	ColorTitle      = "14"  // Cyan for titles
	ColorHelp       = "245" // Grey for help text
	ColorError      = "9"   // Red for errors
	ColorStatus     = "10"  // Green for status messages
	ColorRunning    = "10"
	ColorStopped    = "11" // Yellow
	ColorInput      = "11" // Yellow for the port input label
)
