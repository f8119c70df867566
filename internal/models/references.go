package models

// LineReference names one line of the network.
type LineReference struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Circular bool   `json:"circular"`
	Stations int    `json:"stationCount"`
}

// ReferencesModel References model for related data
type ReferencesModel struct {
	Lines []LineReference `json:"lines"`
}

// NewEmptyReferences creates a new empty References model with initialized empty slices
func NewEmptyReferences() ReferencesModel {
	return ReferencesModel{
		Lines: []LineReference{},
	}
}
