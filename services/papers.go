package services

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"papernet/models"
)

// AddPaperCommand ist ein bereits geparstes Formular für ein neues Paper.
type AddPaperCommand struct {
	Name      string
	Group     string
	Citations int
	Author    *string
	LinkIDs   []int64
}

// Graph ist die Antwort von /data.
type Graph struct {
	Nodes []models.Node `json:"nodes"`
	Edges []models.Edge `json:"edges"`
}

// PaperService kapselt alle Datenbankzugriffe auf Papers und ihre Kanten.
type PaperService struct {
	DB     *gorm.DB
	Logger *zap.Logger
}

// NewPaperService erstellt eine neue Instanz des PaperService.
func NewPaperService(db *gorm.DB, logger *zap.Logger) *PaperService {
	return &PaperService{DB: db, Logger: logger}
}

// ListAll liefert alle Papers inklusive ausgehender Kanten, ohne feste Reihenfolge.
func (s *PaperService) ListAll(ctx context.Context) ([]models.Paper, error) {
	var papers []models.Paper
	if err := s.DB.WithContext(ctx).Preload("Links").Find(&papers).Error; err != nil {
		return nil, err
	}
	return papers, nil
}

// GetByID liefert das Paper oder nil, falls es nicht existiert.
func (s *PaperService) GetByID(ctx context.Context, id uint) (*models.Paper, error) {
	return getByID(s.DB.WithContext(ctx), id)
}

func getByID(db *gorm.DB, id uint) (*models.Paper, error) {
	var paper models.Paper
	if err := db.First(&paper, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &paper, nil
}

// Create legt ein Paper samt Kanten in einer Transaktion an.
// Unbekannte oder doppelte Link-IDs werden stillschweigend verworfen.
func (s *PaperService) Create(ctx context.Context, cmd AddPaperCommand) (*models.Paper, error) {
	paper := models.Paper{
		Name:      cmd.Name,
		GroupName: cmd.Group,
		Citations: cmd.Citations,
		Author:    cmd.Author,
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seen := make(map[uint]bool, len(cmd.LinkIDs))
		for _, raw := range cmd.LinkIDs {
			if raw <= 0 {
				continue
			}
			id := uint(raw)
			if seen[id] {
				continue
			}
			target, err := getByID(tx, id)
			if err != nil {
				return err
			}
			if target == nil {
				s.Logger.Debug("Skipping unknown link target", zap.Uint("target_id", id))
				continue
			}
			seen[id] = true
			paper.Links = append(paper.Links, models.PaperLink{ToPaperID: target.ID})
		}
		return tx.Create(&paper).Error
	})
	if err != nil {
		return nil, err
	}
	return &paper, nil
}

// Outgoing liefert die Papers, auf die id verweist.
func (s *PaperService) Outgoing(ctx context.Context, id uint) ([]models.Paper, error) {
	var papers []models.Paper
	err := s.DB.WithContext(ctx).
		Select("paper.*").
		Joins("JOIN paper_links ON paper_links.to_paper_id = paper.id").
		Where("paper_links.from_paper_id = ?", id).
		Find(&papers).Error
	return papers, err
}

// LinkedBy liefert die Papers, die auf id verweisen.
func (s *PaperService) LinkedBy(ctx context.Context, id uint) ([]models.Paper, error) {
	var papers []models.Paper
	err := s.DB.WithContext(ctx).
		Select("paper.*").
		Joins("JOIN paper_links ON paper_links.from_paper_id = paper.id").
		Where("paper_links.to_paper_id = ?", id).
		Find(&papers).Error
	return papers, err
}

// Graph baut Knoten und gerichtete Kanten für das Frontend.
func (s *PaperService) Graph(ctx context.Context) (Graph, error) {
	papers, err := s.ListAll(ctx)
	if err != nil {
		return Graph{}, err
	}

	g := Graph{
		Nodes: make([]models.Node, 0, len(papers)),
		Edges: []models.Edge{},
	}
	for _, p := range papers {
		g.Nodes = append(g.Nodes, p.Node())
	}
	for _, p := range papers {
		for _, l := range p.Links {
			g.Edges = append(g.Edges, models.Edge{From: p.ID, To: l.ToPaperID})
		}
	}
	return g, nil
}

// Count zählt Papers und Kanten.
func (s *PaperService) Count(ctx context.Context) (papers, links int64, err error) {
	db := s.DB.WithContext(ctx)
	if err = db.Model(&models.Paper{}).Count(&papers).Error; err != nil {
		return 0, 0, err
	}
	if err = db.Model(&models.PaperLink{}).Count(&links).Error; err != nil {
		return 0, 0, err
	}
	return papers, links, nil
}

// Ping prüft, ob die Datenbank erreichbar ist.
func (s *PaperService) Ping(ctx context.Context) error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
