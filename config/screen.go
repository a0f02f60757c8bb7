package config

// Screen layout configuration
const (
	// Window dimensions in pixels
	WindowWidth  = 960
	WindowHeight = 600

	// Internal render resolution of the 3D view; scaled up to the window
	ViewWidth  = 480
	ViewHeight = 300

	// Field of view of the first-person camera in radians (about 66 degrees)
	FieldOfView = 1.15

	// HUD layout
	HUDMargin    = 12
	HUDBarWidth  = 180
	HUDBarHeight = 12
	HUDBarGap    = 4
	MessageLines = 5

	// Inventory panel
	InventoryColumns = 5
	InventoryRows    = 4
	SlotSize         = 48
	SlotGap          = 6
)

// InventorySize is the number of slots in the player's bag
const InventorySize = InventoryColumns * InventoryRows

// GetScreenDimensions returns the screen dimensions in pixels
func GetScreenDimensions() (width, height int) {
	return WindowWidth, WindowHeight
}
