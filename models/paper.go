package models

import "fmt"

// Paper ist ein Knoten im Zitationsgraphen.
type Paper struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	Name      string  `json:"name" gorm:"size:100;not null"`
	GroupName string  `json:"group_name" gorm:"size:50;not null"`
	Citations int     `json:"citations" gorm:"default:0"`
	Author    *string `json:"author" gorm:"size:100"`

	// Ausgehende Kanten: dieses Paper verweist auf andere.
	Links []PaperLink `json:"-" gorm:"foreignKey:FromPaperID;constraint:OnDelete:CASCADE"`
	// Eingehende Kanten, Umkehrsicht auf dieselbe Tabelle. Wird nie direkt geschrieben.
	LinkedBy []PaperLink `json:"-" gorm:"foreignKey:ToPaperID;constraint:OnDelete:CASCADE;->"`
}

// TableName gibt explizit den Tabellennamen an.
func (Paper) TableName() string {
	return "paper"
}

// AuthorName liefert den Autor oder einen leeren String.
func (p Paper) AuthorName() string {
	if p.Author == nil {
		return ""
	}
	return *p.Author
}

// Node ist die JSON-Form eines Papers für das vis.js-Frontend.
type Node struct {
	ID    uint   `json:"id"`
	Label string `json:"label"`
	Group string `json:"group"`
	Value int    `json:"value"`
	Title string `json:"title"`
}

// Node erzeugt die Knotendarstellung. Der Tooltip enthält bewusst ein <br>.
func (p Paper) Node() Node {
	author := "None"
	if p.Author != nil {
		author = *p.Author
	}
	return Node{
		ID:    p.ID,
		Label: p.Name,
		Group: p.GroupName,
		Value: p.Citations,
		Title: fmt.Sprintf("Author: %s <br> Citations: %d", author, p.Citations),
	}
}
