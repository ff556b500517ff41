package application

const (
	// Window constants
	AppTitle      = "FileForge"
	WindowWidth   = 960
	WindowHeight  = 680
	MinimumWidth  = 720
	MinimumHeight = 520
)
