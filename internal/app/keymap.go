package app

// Key binding constants used in handleKey.
const (
	KeyQuit       = "ctrl+c"
	KeyTab        = "tab"
	KeyEnter      = "enter"
	KeyEsc        = "esc"
	KeyUp         = "up"
	KeyDown       = "down"
	KeyJ          = "j"
	KeyK          = "k"
	KeyDelete     = "x"
	KeyEdit       = "e"
	KeyNew        = "n"
	KeySaveNote   = "ctrl+s"
	KeyExport     = "ctrl+e"
	KeyDeleteSess = "ctrl+x"
	KeyTab1       = "1"
	KeyTab2       = "2"
	KeyTab3       = "3"
)
