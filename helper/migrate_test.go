package helper

import (
	"testing"

	"roomslot/config"

	"github.com/stretchr/testify/assert"
)

func TestConnectionString(t *testing.T) {
	cfg := &config.Config{}
	cfg.DB.Postgres.Prefix = "dev_"
	cfg.DB.Postgres.MigrationTable = "schema_migrations"
	cfg.DB.Postgres.Write.Username = "app"
	cfg.DB.Postgres.Write.Password = "p@ss/word"
	cfg.DB.Postgres.Write.Host = "db"
	cfg.DB.Postgres.Write.Port = "5432"
	cfg.DB.Postgres.Write.Name = "roomslot"
	cfg.DB.Postgres.Write.SSLMode = "disable"

	assert.Equal(t,
		"postgres://app:p%40ss%2Fword@db:5432/dev_roomslot?sslmode=disable&x-migrations-table=schema_migrations",
		connectionString(cfg),
	)
}

func TestConnectionStringWithoutMigrationTable(t *testing.T) {
	cfg := &config.Config{}
	cfg.DB.Postgres.Write = config.Postgres{Username: "app", Host: "db", Port: "5432", Name: "roomslot", Timezone: "Asia/Jakarta"}

	assert.Equal(t, "postgres://app:@db:5432/roomslot?timezone=Asia%2FJakarta", connectionString(cfg))
}
