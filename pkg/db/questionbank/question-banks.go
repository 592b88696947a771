package questionbank

import (
	"errors"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	flowTypes "github.com/survey-flow/survey-backend/pkg/surveyflow/types"
)

// QuestionBank is a cached copy of one survey's question list, keyed by the
// logical survey path.
type QuestionBank struct {
	SurveyKey  string                     `bson:"surveyKey" json:"surveyKey"`
	Questions  []flowTypes.QuestionRecord `bson:"questions" json:"questions"`
	ImportedAt int64                      `bson:"importedAt" json:"importedAt"`
}

var indexesForQuestionBanksCollection = []mongo.IndexModel{
	{
		Keys: bson.D{
			{Key: "surveyKey", Value: 1},
		},
		Options: options.Index().SetName("surveyKey_1").SetUnique(true),
	},
	{
		Keys: bson.D{
			{Key: "importedAt", Value: -1},
		},
		Options: options.Index().SetName("importedAt_-1"),
	},
}

func (dbService *QuestionBankDBService) CreateDefaultIndexes(instanceID string) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	collection := dbService.collectionQuestionBanks(instanceID)
	_, err := collection.Indexes().CreateMany(ctx, indexesForQuestionBanksCollection)
	if err != nil {
		slog.Error("Error creating index for question banks", slog.String("error", err.Error()), slog.String("instanceID", instanceID))
	}
}

// SaveQuestionBank upserts the cached question list for a survey key.
func (dbService *QuestionBankDBService) SaveQuestionBank(instanceID string, surveyKey string, questions []flowTypes.QuestionRecord) error {
	if surveyKey == "" {
		return errors.New("survey key must not be empty")
	}

	ctx, cancel := dbService.getContext()
	defer cancel()

	bank := QuestionBank{
		SurveyKey:  surveyKey,
		Questions:  questions,
		ImportedAt: time.Now().Unix(),
	}

	filter := bson.M{"surveyKey": surveyKey}
	upsert := true
	_, err := dbService.collectionQuestionBanks(instanceID).ReplaceOne(
		ctx,
		filter,
		bank,
		&options.ReplaceOptions{Upsert: &upsert},
	)
	return err
}

// GetQuestionBank returns the cached question list for a survey key.
func (dbService *QuestionBankDBService) GetQuestionBank(instanceID string, surveyKey string) (bank QuestionBank, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"surveyKey": surveyKey}
	err = dbService.collectionQuestionBanks(instanceID).FindOne(ctx, filter).Decode(&bank)
	return bank, err
}

// DeleteQuestionBank removes the cached question list for a survey key.
func (dbService *QuestionBankDBService) DeleteQuestionBank(instanceID string, surveyKey string) (count int64, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"surveyKey": surveyKey}
	res, err := dbService.collectionQuestionBanks(instanceID).DeleteOne(ctx, filter)
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// GetSurveyKeys lists the survey keys with a cached question bank.
func (dbService *QuestionBankDBService) GetSurveyKeys(instanceID string) (keys []string, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	cursor, err := dbService.collectionQuestionBanks(instanceID).Find(
		ctx,
		bson.M{},
		options.Find().SetProjection(bson.M{"surveyKey": 1}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var bank QuestionBank
		if err := cursor.Decode(&bank); err != nil {
			slog.Error("Error decoding question bank", slog.String("error", err.Error()), slog.String("instanceID", instanceID))
			continue
		}
		keys = append(keys, bank.SurveyKey)
	}
	return keys, cursor.Err()
}
