package model

// SpecialtyRequirement is reference data: the minimum CME credit hours a
// specialty mandates per renewal cycle. Seeded at migration time and
// consulted read-only by the transcript engine.
// swagger:model SpecialtyRequirement
type SpecialtyRequirement struct {
	BaseModel
	Specialty        string                `gorm:"size:100;uniqueIndex;not null" json:"specialty"`
	RequiredHours    float64               `gorm:"type:decimal(5,2);not null" json:"requiredHours"`
	CycleYears       int                   `gorm:"default:2" json:"cycleYears"`
	CategoryMinimums []RequirementCategory `gorm:"foreignKey:RequirementID" json:"categoryMinimums,omitempty"`
}

func (SpecialtyRequirement) TableName() string {
	return "specialty_requirements"
}

// RequirementCategory is a sub-category minimum within a specialty
// requirement, e.g. "ethics: 2 hours".
type RequirementCategory struct {
	BaseModel
	RequirementID uint       `gorm:"index;type:bigint unsigned" json:"requirementId"`
	CreditType    CreditType `gorm:"size:20;not null" json:"creditType"`
	MinimumHours  float64    `gorm:"type:decimal(5,2);not null" json:"minimumHours"`
}

func (RequirementCategory) TableName() string {
	return "specialty_requirement_categories"
}
