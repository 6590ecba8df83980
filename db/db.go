package db

import (
	"fmt"

	gorm_logrus "github.com/onrik/gorm-logrus"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	dbmodels "adl-ops-backend/models/db"
)

var DB *gorm.DB

func Connect(host string, port string, database string, user string, pass string, debugMode bool, migrate bool) (err error) {
	if DB == nil {
		dbConnString := fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=disable password=%s", host, port, user, database, pass)
		db, err := gorm.Open(postgres.Open(dbConnString), &gorm.Config{
			Logger:         gorm_logrus.New(),
			TranslateError: true,
		})
		if debugMode {
			db.Logger = logger.Default.LogMode(logger.Info)
		}
		if err != nil {
			return errors.Wrap(err, "error de conexión a la base de datos")
		}
		DB = db
	}
	if migrate {
		if err = Migrate(); err != nil {
			return err
		}
	}
	return nil
}

func Migrate() error {
	log.Info("ejecutando migraciones")
	err := DB.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error
	if err != nil {
		return errors.Wrap(err, "error creando extensión uuid-ossp")
	}
	err = DB.AutoMigrate(
		&dbmodels.Usuario{},
		&dbmodels.Equipo{},
		&dbmodels.EquipoHistorial{},
		&dbmodels.Solicitud{},
		&dbmodels.SolicitudItem{},
		&dbmodels.Ficha{},
		&dbmodels.FichaAgenda{},
		&dbmodels.Notification{},
		&dbmodels.TimelineEntry{},
		&dbmodels.CatClienteEmpresa{},
		&dbmodels.CatFuenteEmisora{},
		&dbmodels.CatContacto{},
		&dbmodels.CatObjetivoMuestreo{},
		&dbmodels.CatComponente{},
		&dbmodels.CatSubArea{},
		&dbmodels.CatTipoMuestreo{},
		&dbmodels.CatTipoMuestra{},
		&dbmodels.CatActividad{},
		&dbmodels.CatLugarAnalisis{},
		&dbmodels.CatFrecuencia{},
	)
	if err != nil {
		return errors.Wrap(err, "error de migración")
	}
	return nil
}
