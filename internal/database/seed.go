package database

import (
	"log/slog"

	"github.com/dimitrigaulia/AcheiMinhaPlaca/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type seedLocation struct {
	Name         string
	Address      string
	City         string
	Neighborhood string
}

var defaultSafeLocations = []seedLocation{
	{Name: "1ª Delegacia de Polícia Civil", Address: "Av. Presidente Vargas, 1000", City: "São Paulo", Neighborhood: "Centro"},
	{Name: "Delegacia Eletrônica - Posto Sé", Address: "Praça da Sé, 385", City: "São Paulo", Neighborhood: "Sé"},
	{Name: "Detran-SP Unidade Aricanduva", Address: "Av. Aricanduva, 5555", City: "São Paulo", Neighborhood: "Aricanduva"},
	{Name: "39ª Delegacia de Polícia", Address: "R. Padre Viegas, 123", City: "Rio de Janeiro", Neighborhood: "Méier"},
	{Name: "Detran-RJ Sede", Address: "Av. Presidente Vargas, 817", City: "Rio de Janeiro", Neighborhood: "Centro"},
	{Name: "Central de Flagrantes", Address: "Av. Afonso Pena, 2000", City: "Belo Horizonte", Neighborhood: "Funcionários"},
}

// SeedSafeLocations inserts the vetted handover points once. Existing
// rows are matched by name+city and left untouched.
func SeedSafeLocations(db *gorm.DB) error {
	seeded := 0
	for _, sl := range defaultSafeLocations {
		var existing models.SafeLocation
		err := db.Where("name = ? AND city = ?", sl.Name, sl.City).First(&existing).Error
		if err == nil {
			continue
		}

		neighborhood := sl.Neighborhood
		loc := models.SafeLocation{
			ID:           uuid.New(),
			Name:         sl.Name,
			Address:      sl.Address,
			City:         sl.City,
			Neighborhood: &neighborhood,
			IsActive:     true,
		}
		if err := db.Create(&loc).Error; err != nil {
			return err
		}
		seeded++
	}

	if seeded > 0 {
		slog.Info("seeded safe locations", "new", seeded, "total", len(defaultSafeLocations))
	}
	return nil
}
