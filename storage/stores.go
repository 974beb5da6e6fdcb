package storage

import (
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"gorm.io/gorm"
)

// Stores bundles one storage per entity for a single backend.
type Stores struct {
	Teams       TeamStorage
	Judges      JudgeStorage
	Admins      AdminStorage
	Evaluations EvaluationStorage
}

type DynamoTables struct {
	Teams       string
	Judges      string
	Admins      string
	Evaluations string
}

func NewDynamoStores(client *dynamodb.Client, tables DynamoTables) *Stores {
	return &Stores{
		Teams:       &DynamoTeamStorage{Client: client, TableName: tables.Teams},
		Judges:      &DynamoJudgeStorage{Client: client, TableName: tables.Judges},
		Admins:      &DynamoAdminStorage{Client: client, TableName: tables.Admins},
		Evaluations: &DynamoEvaluationStorage{Client: client, TableName: tables.Evaluations},
	}
}

func NewGormStores(db *gorm.DB) *Stores {
	return &Stores{
		Teams:       &GormTeamStorage{DB: db},
		Judges:      &GormJudgeStorage{DB: db},
		Admins:      &GormAdminStorage{DB: db},
		Evaluations: &GormEvaluationStorage{DB: db},
	}
}
