package models

import "time"

type Publicacion struct {
	PubID       uint   `gorm:"column:pub_id;primaryKey" json:"pub_id"`
	Descripcion string `gorm:"column:descripcion;type:text;not null" json:"descripcion"`
	Tipo        string `gorm:"column:tipo;size:15;not null" json:"tipo"`
	Asunto      string `gorm:"column:asunto;size:80;not null" json:"asunto"`
	Imagen      string `gorm:"column:imagen;size:255" json:"imagen,omitempty"`
	Username    string `gorm:"column:username;size:50" json:"username"`
}

func (Publicacion) TableName() string {
	return "publicaciones"
}

// PublicPublicacion is the wire shape for post responses.
type PublicPublicacion struct {
	PubID       uint   `json:"pub_id"`
	Descripcion string `json:"descripcion"`
	Tipo        string `json:"tipo"`
	Asunto      string `json:"asunto"`
	Username    string `json:"username"`
}

func (p *Publicacion) Public() PublicPublicacion {
	return PublicPublicacion{
		PubID:       p.PubID,
		Descripcion: p.Descripcion,
		Tipo:        p.Tipo,
		Asunto:      p.Asunto,
		Username:    p.Username,
	}
}

type Comentario struct {
	CommentID uint      `gorm:"column:comment_id;primaryKey" json:"comment_id"`
	PubID     uint      `gorm:"column:pub_id;not null" json:"pub_id"`
	Contenido string    `gorm:"column:contenido;type:text;not null" json:"contenido"`
	Fecha     time.Time `gorm:"column:fecha" json:"fecha"`
	Username  string    `gorm:"column:username;size:50" json:"username"`
}

func (Comentario) TableName() string {
	return "comentarios"
}

// PublicComentario is the wire shape for comment responses.
type PublicComentario struct {
	CommentID uint   `json:"comment_id"`
	PubID     uint   `json:"pub_id"`
	Contenido string `json:"contenido"`
}

func (c *Comentario) Public() PublicComentario {
	return PublicComentario{
		CommentID: c.CommentID,
		PubID:     c.PubID,
		Contenido: c.Contenido,
	}
}

// MeGusta is composite-keyed, so the storage layer enforces at most one
// like per (username, pub_id) pair.
type MeGusta struct {
	Username string `gorm:"column:username;primaryKey;size:64" json:"username"`
	PubID    uint   `gorm:"column:pub_id;primaryKey" json:"pub_id"`
}

func (MeGusta) TableName() string {
	return "megustas"
}

type Logro struct {
	LogroID     uint   `gorm:"column:logro_id;primaryKey" json:"logro_id"`
	Imagen      string `gorm:"column:imagen;size:120;not null" json:"imagen"`
	Descripcion string `gorm:"column:descripcion;size:120" json:"descripcion"`
	Username    string `gorm:"column:username;size:50" json:"username"`
}

func (Logro) TableName() string {
	return "logros"
}
