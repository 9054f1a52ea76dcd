package migrations

var postgres = []Migration{
	{
		Version: 1,
		Name:    "create_notifications",
		SQL: []string{
			`CREATE TABLE IF NOT EXISTS notifications (
				id UUID PRIMARY KEY,
				user_id VARCHAR(255) NOT NULL,
				payload JSONB NOT NULL,
				is_read BOOLEAN NOT NULL DEFAULT FALSE,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
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
				ON notifications (user_id) WHERE is_read = FALSE`,
			`CREATE INDEX IF NOT EXISTS idx_notifications_read_created
				ON notifications (created_at) WHERE is_read = TRUE`,
		},
	},
}
