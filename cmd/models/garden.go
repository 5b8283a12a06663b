package models

import "time"

type Planta struct {
	PlantID       uint      `gorm:"column:plant_id;primaryKey" json:"plant_id"`
	Especie       string    `gorm:"column:especie;size:50;uniqueIndex;not null" json:"especie"`
	Username      string    `gorm:"column:username;size:50" json:"username"`
	EdadInicial   float64   `gorm:"column:edad_inicial;default:0" json:"edad_inicial"`
	FechaRegistro time.Time `gorm:"column:fecha_registro" json:"fecha_registro"`
	Cantidad      int       `gorm:"column:cantidad;default:1" json:"cantidad"`
}

func (Planta) TableName() string {
	return "plantas"
}

// PublicPlanta is the wire shape for plant responses.
type PublicPlanta struct {
	PlantID     uint    `json:"plant_id"`
	Especie     string  `json:"especie"`
	Username    string  `json:"username"`
	EdadInicial float64 `json:"edad_inicial"`
	Cantidad    int     `json:"cantidad"`
}

func (p *Planta) Public() PublicPlanta {
	return PublicPlanta{
		PlantID:     p.PlantID,
		Especie:     p.Especie,
		Username:    p.Username,
		EdadInicial: p.EdadInicial,
		Cantidad:    p.Cantidad,
	}
}
