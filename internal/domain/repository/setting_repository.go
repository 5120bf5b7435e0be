package repository

import "github.com/borgia-ae/borgia-api/internal/domain/entity"

// SettingRepository define el puerto para la configuración versionada.
type SettingRepository interface {
	// Current devuelve la última versión o nil si no hay ninguna.
	Current() (*entity.Setting, error)
	// Append inserta una nueva versión y asigna setting.Version.
	Append(setting *entity.Setting) error
}
