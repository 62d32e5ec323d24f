package models

// LearningResource is one recommended link for a technology.
type LearningResource struct {
	Title         string `json:"title"`
	URL           string `json:"url"`
	Description   string `json:"description"`
	Type          string `json:"type,omitempty"`
	EstimatedTime string `json:"estimatedTime,omitempty"`
}

// LearningResourceGroup bundles the resources found for one technology (or
// one synthetic category such as "Architecture & Best Practices").
// Technologies with zero hits still get a group with an empty Resources
// slice so the guide renders every detected technology.
type LearningResourceGroup struct {
	Technology string             `json:"technology"`
	Resources  []LearningResource `json:"resources"`
}
