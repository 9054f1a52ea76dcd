package domain

import (
	"context"
	"iter"
)

// PageFinder постраничная выборка уведомлений пользователя
type PageFinder interface {
	FindForUser(ctx context.Context, userID string, opts FindOptions) (*Page, error)
}

// Iterate возвращает ленивую последовательность всех уведомлений пользователя
// Страницы запрашиваются по мере чтения; каждый новый проход начинает чтение заново.
// opts.Limit задаёт размер страницы, а не общее количество записей
func Iterate(ctx context.Context, finder PageFinder, userID string, opts FindOptions) iter.Seq2[*Notification, error] {
	return func(yield func(*Notification, error) bool) {
		o := opts
		for {
			page, err := finder.FindForUser(ctx, userID, o)
			if err != nil {
				yield(nil, err)
				return
			}

			for _, n := range page.Items {
				if !yield(n, nil) {
					return
				}
			}

			if page.NextCursor == "" {
				return
			}

			// Дальше идём только по курсору
			o.Cursor = page.NextCursor
			o.Offset = 0
		}
	}
}
