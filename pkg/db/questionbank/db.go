package questionbank

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/survey-flow/survey-backend/pkg/db"
)

const (
	COLLECTION_NAME_QUESTION_BANKS = "questionBanks"
)

type QuestionBankDBService struct {
	DBClient     *mongo.Client
	timeout      int
	DBNamePrefix string
	InstanceIDs  []string
}

func NewQuestionBankDBService(configs db.DBConfig) (*QuestionBankDBService, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(configs.Timeout)*time.Second)
	defer cancel()

	dbClient, err := mongo.Connect(ctx,
		options.Client().ApplyURI(configs.URI),
		options.Client().SetMaxConnIdleTime(time.Duration(configs.IdleConnTimeout)*time.Second),
		options.Client().SetMaxPoolSize(configs.MaxPoolSize),
	)

	if err != nil {
		return nil, err
	}

	ctx, conCancel := context.WithTimeout(context.Background(), time.Duration(configs.Timeout)*time.Second)
	err = dbClient.Ping(ctx, nil)
	defer conCancel()

	if err != nil {
		return nil, err
	}

	qbDBSc := &QuestionBankDBService{
		DBClient:     dbClient,
		timeout:      configs.Timeout,
		DBNamePrefix: configs.DBNamePrefix,
		InstanceIDs:  configs.InstanceIDs,
	}

	if configs.RunIndexCreation {
		if err := qbDBSc.ensureIndexes(); err != nil {
			slog.Error("Error ensuring indexes for question bank DB", slog.String("error", err.Error()))
		}
	}

	return qbDBSc, nil
}

func (dbService *QuestionBankDBService) getDBName(instanceID string) string {
	return dbService.DBNamePrefix + instanceID + "_surveyFlowDB"
}

func (dbService *QuestionBankDBService) collectionQuestionBanks(instanceID string) *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName(instanceID)).Collection(COLLECTION_NAME_QUESTION_BANKS)
}

func (dbService *QuestionBankDBService) getContext() (ctx context.Context, cancel context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(dbService.timeout)*time.Second)
}

func (dbService *QuestionBankDBService) ensureIndexes() error {
	for _, instanceID := range dbService.InstanceIDs {
		dbService.CreateDefaultIndexes(instanceID)
	}
	return nil
}
