package systems

import (
	"fmt"
	"image/color"
)

// MessageType picks how a log line is colored
type MessageType int

const (
	MessageTypeNormal MessageType = iota
	MessageTypeEnvironment
	MessageTypeCombat
	MessageTypeItem
	MessageTypeAlert
	MessageTypeSystem
	// Experience and level-ups
	MessageTypeProgress
)

var messageColors = map[MessageType]color.RGBA{
	MessageTypeEnvironment: {218, 165, 32, 255},
	MessageTypeCombat:      {255, 100, 100, 255},
	MessageTypeItem:        {100, 149, 237, 255},
	MessageTypeAlert:       {255, 255, 0, 255},
	MessageTypeSystem:      {186, 85, 211, 255},
	MessageTypeProgress:    {120, 230, 140, 255},
}

var normalColor = color.RGBA{200, 200, 200, 255}

// ColoredMessage is one log line. Repeats counts identical lines added in a
// row, which the log folds into one.
type ColoredMessage struct {
	Text    string
	Type    MessageType
	Repeats int
}

// GetColor returns the color for the message's type
func (cm ColoredMessage) GetColor() color.RGBA {
	if c, ok := messageColors[cm.Type]; ok {
		return c
	}
	return normalColor
}

// Display is the text as shown, with the repeat count when there is one
func (cm ColoredMessage) Display() string {
	if cm.Repeats > 1 {
		return fmt.Sprintf("%s (x%d)", cm.Text, cm.Repeats)
	}
	return cm.Text
}
