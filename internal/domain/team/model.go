package team

import "fmt"

// Team carries the display identity of an NFL franchise. Player records
// embed it by value so a snapshot stays self-contained.
type Team struct {
	ID           string `json:"id"`
	DisplayName  string `json:"displayName"`
	Abbreviation string `json:"abbreviation,omitempty"`
	Location     string `json:"location,omitempty"`
	Name         string `json:"name,omitempty"`
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.DisplayName == "" {
		return fmt.Errorf("team display name is required")
	}

	return nil
}
