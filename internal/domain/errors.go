package domain

import "errors"

var (
	// ErrValidation возвращается при некорректных или отсутствующих входных данных
	// Ошибка вызывающего, повторять запрос без изменений бессмысленно
	ErrValidation = errors.New("notification: validation failed")

	// ErrStorage возвращается при недоступности хранилища или таймауте
	// Временная ошибка, вызывающий может повторить запрос с backoff
	ErrStorage = errors.New("notification: storage unavailable")

	// ErrNotFound обычный результат "не найдено"
	// Возвращается и тогда, когда запись существует, но принадлежит другому пользователю
	ErrNotFound = errors.New("notification: not found")
)
