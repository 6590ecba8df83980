package initializers

import (
	"adl-ops-backend/config"
	"adl-ops-backend/lib/smtp"
)

func InitSmtp() {
	err := smtp.Connect(config.Conf.Smtp.User, config.Conf.Smtp.Password,
		config.Conf.Smtp.Host, config.Conf.Smtp.Port, *config.Conf.Smtp.TLSEnabled, config.Conf.Smtp.EmailFrom)
	if err != nil {
		panic(err.Error())
	}
}
