package models

// PaperLink modelliert eine gerichtete Kante: Quelle verweist auf Ziel (A -> B).
// (A, B) und (B, A) sind unabhängige Zeilen.
type PaperLink struct {
	FromPaperID uint `json:"from" gorm:"primaryKey;autoIncrement:false"`
	ToPaperID   uint `json:"to" gorm:"primaryKey;autoIncrement:false;index"`
}

func (PaperLink) TableName() string { return "paper_links" }

// Edge ist die JSON-Form einer Kante für das Frontend.
type Edge struct {
	From uint `json:"from"`
	To   uint `json:"to"`
}
