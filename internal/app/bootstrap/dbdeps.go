// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds the Mongo handles shared across hooks. The client is kept
// alongside the database so Shutdown can disconnect and the health check
// can ping the primary.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database
}
