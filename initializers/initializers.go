package initializers

import (
	"context"

	"adl-ops-backend/config"
	"adl-ops-backend/fiberlog"
	authhandler "adl-ops-backend/lib/auth"
	catalogoshandler "adl-ops-backend/lib/catalogos"
	equipohandler "adl-ops-backend/lib/equipo"
	fichahandler "adl-ops-backend/lib/ficha"
	notificationhandler "adl-ops-backend/lib/notification"
	orchestratorhandler "adl-ops-backend/lib/orchestrator"
	"adl-ops-backend/lib/rbac"
	solicitudhandler "adl-ops-backend/lib/solicitud"
	usuariohandler "adl-ops-backend/lib/usuario"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitCache()
	InitSmtp()
	rbac.NewHandler()
	usuariohandler.NewHandler()
	authhandler.NewHandler()
	notificationhandler.NewHandler()
	equipohandler.NewHandler()
	catalogoshandler.NewHandler()
	solicitudhandler.NewHandler()
	fichahandler.NewHandler()
	// el orquestador compone los flujos, va al final
	orchestratorhandler.NewHandler()
}
