package models

// MaxIDs максимальное количество идентификаторов в одном запросе
const MaxIDs = 500

// MarkReadRequest HTTP запрос на пометку уведомлений прочитанными
type MarkReadRequest struct {
	IDs []string `json:"ids"`
}
