package feed

import "github.com/kbukum/socialfeed/database/migration"

// Migrations returns the schema history of the feed tables.
func Migrations() []migration.Migration {
	return []migration.Migration{
		{
			ID:          "0001_create_feed_tables",
			Description: "users, posts, comments and likes",
			Up:          migration.AutoMigrate(&User{}, &Post{}, &Comment{}, &Like{}),
		},
	}
}
