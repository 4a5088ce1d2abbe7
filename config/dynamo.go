package config

import (
	"fmt"
	"os"
)

type DynamoConfig struct {
	TableName string
}

func GetDynamoConfig() (*DynamoConfig, error) {
	tableName := os.Getenv("CLIPS_TABLE_NAME")
	if tableName == "" {
		return nil, fmt.Errorf("CLIPS_TABLE_NAME must be set")
	}

	return &DynamoConfig{
		TableName: tableName,
	}, nil
}
