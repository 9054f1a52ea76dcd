package notifications

import "errors"

var (
	// ErrNotificationNotFound возвращается, когда уведомление не найдено
	ErrNotificationNotFound = errors.New("service.notifications: notification not found")

	// ErrUserNotFound возвращается, когда пользователь не найден в UserService
	ErrUserNotFound = errors.New("service.notifications: user not found in UserService")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("service.notifications: invalid input data")

	// ErrStorageUnavailable возвращается, если хранилище недоступно (можно повторить)
	ErrStorageUnavailable = errors.New("service.notifications: storage unavailable")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service.notifications: internal error")
)
