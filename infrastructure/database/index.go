package database

import "faceguard.io/infrastructure/database/connection"

func SetUpDatabase() error {
	return connection.ConnectToDatabase()
}

func CloseDatabase() {
	connection.Disconnect()
}

type BaseModel interface {
	ParseModel() any
}
