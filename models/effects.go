package models

// EffectType identifica los efectos colaterales que una transición exitosa
// pide ejecutar. El orquestador los aplica en orden sólo después de confirmar
// la transición.
type EffectType string

const (
	EffectNotifyUser          EffectType = "NOTIFY_USER"
	EffectDismissNotification EffectType = "DISMISS_NOTIFICATION"
	EffectSendEmail           EffectType = "SEND_EMAIL"
)

type Effect struct {
	Type    EffectType
	UserID  string
	Key     string
	Subject string
	Message string
	Email   string
}

func NotifyEffect(userID, key, message string) Effect {
	return Effect{Type: EffectNotifyUser, UserID: userID, Key: key, Message: message}
}

func DismissEffect(key string) Effect {
	return Effect{Type: EffectDismissNotification, Key: key}
}

func EmailEffect(email, subject, message string) Effect {
	return Effect{Type: EffectSendEmail, Email: email, Subject: subject, Message: message}
}
