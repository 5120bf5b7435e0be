package workboard

import "github.com/borgia-ae/borgia-api/internal/application/dto"

// CheckupRenderer genera el informe de checkup en PDF (implementado en infraestructura).
type CheckupRenderer interface {
	RenderCheckup(checkup *dto.CheckupResponse) ([]byte, error)
}
