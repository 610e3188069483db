package model

import (
	"time"

	"github.com/google/uuid"
)

// Item is a billable attraction (brinquedo, cama elástica, estacionamento…).
// When TarifaPropria is true the embedded Tarifa replaces the global one for
// every lançamento referencing this item.
type Item struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome          string    `gorm:"index;not null"`
	Descricao     *string
	TarifaPropria bool   `gorm:"not null;default:false"`
	Tarifa        Tarifa `gorm:"embedded;embeddedPrefix:tarifa_"`
	Ativo         bool   `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TarifaOverride returns the item tarifa when the item defines its own,
// otherwise nil (caller falls back to the global tarifa).
func (i *Item) TarifaOverride() *Tarifa {
	if i == nil || !i.TarifaPropria {
		return nil
	}
	t := i.Tarifa
	return &t
}
