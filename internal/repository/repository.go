package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	Local StateRepository
	Cloud StateRepository
}

// NewRepositories wires the local state store and, when cloud is non-nil, the Postgres-backed
// cloud store.
func NewRepositories(local *sqlx.DB, cloud *sqlx.DB) *Repositories {
	repos := &Repositories{
		Local: NewLocalStateRepository(local),
	}
	if cloud != nil {
		repos.Cloud = NewCloudStateRepository(cloud)
	}
	return repos
}
