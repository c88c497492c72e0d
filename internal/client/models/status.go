package models

// MessageStatus is the delivery state of an outbound message.
type MessageStatus string

const (
	StatusQueued    MessageStatus = "Queued"
	StatusSent      MessageStatus = "Sent"
	StatusDelivered MessageStatus = "Delivered"
	StatusRead      MessageStatus = "Read"
	StatusFailed    MessageStatus = "Failed"
)

// Color names an indicator color.
type Color string

const (
	ColorNone      Color = ""
	ColorBlue      Color = "blue"
	ColorOrange    Color = "orange"
	ColorGreen     Color = "green"
	ColorDarkGreen Color = "darkgreen"
	ColorRed       Color = "red"
	ColorGray      Color = "gray"
)

var statusColors = map[MessageStatus]Color{
	StatusQueued:    ColorBlue,
	StatusSent:      ColorOrange,
	StatusDelivered: ColorGreen,
	StatusRead:      ColorDarkGreen,
	StatusFailed:    ColorRed,
}

// StatusColor maps a message status to its indicator color. Unknown
// statuses are gray; an empty status has no indicator.
func StatusColor(s MessageStatus) Color {
	if s == "" {
		return ColorNone
	}
	if c, ok := statusColors[s]; ok {
		return c
	}
	return ColorGray
}
