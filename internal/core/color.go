package core

// Color is the role a screen cell plays on the board. Front ends map each
// role to a concrete terminal color.
type Color uint8

const (
	ColorDefault  Color = iota // Text and empty cells
	ColorBorder                // Board frame
	ColorFood
	ColorBody
	ColorHead
	ColorDeadHead // Head after a collision
)
