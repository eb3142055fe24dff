package connection

import (
	"faceguard.io/infrastructure/database/connection/cache"
	"faceguard.io/infrastructure/database/connection/datastore"
)

func ConnectToDatabase() error {
	if err := datastore.ConnectToDatabase(); err != nil {
		return err
	}
	return cache.ConnectToCache()
}

func Disconnect() {
	cache.DisconnectCache()
	datastore.DisconnectDatabase()
}
