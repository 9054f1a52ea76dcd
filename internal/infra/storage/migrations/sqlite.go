package migrations

// created_at хранится текстом в UTC, поэтому лексикографический порядок совпадает с хронологическим
var sqlite = []Migration{
	{
		Version: 1,
		Name:    "create_notifications",
		SQL: []string{
			`CREATE TABLE IF NOT EXISTS notifications (
				id TEXT PRIMARY KEY,
				user_id TEXT NOT NULL,
				payload TEXT NOT NULL,
				is_read BOOLEAN NOT NULL DEFAULT 0,
				created_at DATETIME NOT NULL
			)`,
			`CREATE INDEX IF NOT EXISTS idx_notifications_user_created
				ON notifications (user_id, created_at DESC, id DESC)`,
		},
	},
	{
		Version: 2,
		Name:    "index_unread",
		SQL: []string{
			`CREATE INDEX IF NOT EXISTS idx_notifications_user_unread
				ON notifications (user_id) WHERE is_read = 0`,
			`CREATE INDEX IF NOT EXISTS idx_notifications_read_created
				ON notifications (created_at) WHERE is_read = 1`,
		},
	},
}
