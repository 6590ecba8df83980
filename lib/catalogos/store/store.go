package catalogosstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "adl-ops-backend/models/db"
)

type Provider interface {
	ListClientes() (list []dbmodels.CatClienteEmpresa, err error)
	ListFuentesByCliente(clienteID string) (list []dbmodels.CatFuenteEmisora, err error)
	GetFuente(fuenteID string) (rec *dbmodels.CatFuenteEmisora, err error)
	ListContactosByCliente(clienteID string) (list []dbmodels.CatContacto, err error)
	ListObjetivosByCliente(clienteID string) (list []dbmodels.CatObjetivoMuestreo, err error)
	ListComponentes() (list []dbmodels.CatComponente, err error)
	ListSubAreasByComponente(componenteID string) (list []dbmodels.CatSubArea, err error)
	ListTiposMuestreo() (list []dbmodels.CatTipoMuestreo, err error)
	ListTiposMuestraByTipoMuestreo(tipoMuestreoID string) (list []dbmodels.CatTipoMuestra, err error)
	ListActividadesByTipoMuestra(tipoMuestraID string) (list []dbmodels.CatActividad, err error)
	ListLugaresAnalisis() (list []dbmodels.CatLugarAnalisis, err error)
	ListFrecuencias() (list []dbmodels.CatFrecuencia, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func find[T any](db *gorm.DB, query string, args ...interface{}) (list []T, err error) {
	tx := db.Order("nombre")
	if query != "" {
		tx = tx.Where(query, args...)
	}
	err = tx.Find(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) ListClientes() ([]dbmodels.CatClienteEmpresa, error) {
	return find[dbmodels.CatClienteEmpresa](i.db, "activo = true")
}

func (i impl) ListFuentesByCliente(clienteID string) ([]dbmodels.CatFuenteEmisora, error) {
	return find[dbmodels.CatFuenteEmisora](i.db, "cliente_id = ?", clienteID)
}

func (i impl) GetFuente(fuenteID string) (rec *dbmodels.CatFuenteEmisora, err error) {
	err = i.db.Model(dbmodels.CatFuenteEmisora{}).
		Where("id = ?", fuenteID).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

func (i impl) ListContactosByCliente(clienteID string) ([]dbmodels.CatContacto, error) {
	return find[dbmodels.CatContacto](i.db, "cliente_id = ?", clienteID)
}

func (i impl) ListObjetivosByCliente(clienteID string) ([]dbmodels.CatObjetivoMuestreo, error) {
	return find[dbmodels.CatObjetivoMuestreo](i.db, "cliente_id = ?", clienteID)
}

func (i impl) ListComponentes() ([]dbmodels.CatComponente, error) {
	return find[dbmodels.CatComponente](i.db, "")
}

func (i impl) ListSubAreasByComponente(componenteID string) ([]dbmodels.CatSubArea, error) {
	return find[dbmodels.CatSubArea](i.db, "componente_id = ?", componenteID)
}

func (i impl) ListTiposMuestreo() ([]dbmodels.CatTipoMuestreo, error) {
	return find[dbmodels.CatTipoMuestreo](i.db, "")
}

func (i impl) ListTiposMuestraByTipoMuestreo(tipoMuestreoID string) ([]dbmodels.CatTipoMuestra, error) {
	return find[dbmodels.CatTipoMuestra](i.db, "tipo_muestreo_id = ?", tipoMuestreoID)
}

func (i impl) ListActividadesByTipoMuestra(tipoMuestraID string) ([]dbmodels.CatActividad, error) {
	return find[dbmodels.CatActividad](i.db, "tipo_muestra_id = ?", tipoMuestraID)
}

func (i impl) ListLugaresAnalisis() ([]dbmodels.CatLugarAnalisis, error) {
	return find[dbmodels.CatLugarAnalisis](i.db, "")
}

func (i impl) ListFrecuencias() ([]dbmodels.CatFrecuencia, error) {
	return find[dbmodels.CatFrecuencia](i.db, "")
}
