package entity

import "time"

// Shop representa una tienda de la asociación (posee productos).
type Shop struct {
	ID          int64
	Name        string // slug en minúsculas, parte del nombre de sus grupos
	Description string
	Color       string // #rrggbb
	CreatedAt   time.Time
}
