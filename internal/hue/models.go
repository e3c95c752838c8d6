package hue

import "github.com/amimof/huego"

// Light represents a Hue light (v1 API).
// ID is the key the bridge listed the light under. It is informational only:
// huectl addresses lights by their position in the listing.
type Light struct {
	ID    string
	Name  string
	State huego.State
}

// DiscoveredBridge is one entry of the discovery endpoint's response
type DiscoveredBridge struct {
	ID                string `json:"id"`
	InternalIPAddress string `json:"internalipaddress"`
	Port              int    `json:"port"`
}

// StateUpdate is the body of a light state PUT (v1 API).
// Exactly one field is set per request.
type StateUpdate struct {
	On  *bool  `json:"on,omitempty"`
	Bri *uint8 `json:"bri,omitempty"`
}

type createUserRequest struct {
	DeviceType string `json:"devicetype"`
}

type createUserSuccess struct {
	Username string `json:"username"`
}
