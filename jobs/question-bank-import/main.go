package main

import (
	"context"
	"log/slog"
	"time"
)

func main() {
	slog.Info("Starting question bank import job")
	start := time.Now()

	importQuestionBanks()

	slog.Info("Question bank import finished", slog.Duration("duration", time.Since(start)))
}

func importQuestionBanks() {
	for _, instanceID := range conf.InstanceIDs {
		for _, path := range conf.SurveyPaths {
			slog.Debug("Importing question bank", slog.String("instanceID", instanceID), slog.String("path", path))

			questions, err := questionBankLoader.Load(context.Background(), path)
			if err != nil {
				slog.Error("Error loading question bank", slog.String("instanceID", instanceID), slog.String("path", path), slog.String("error", err.Error()))
				continue
			}

			if len(questions) < 1 {
				slog.Warn("Question bank is empty, skipping", slog.String("instanceID", instanceID), slog.String("path", path))
				continue
			}

			if err := questionBankDBService.SaveQuestionBank(instanceID, path, questions); err != nil {
				slog.Error("Error saving question bank", slog.String("instanceID", instanceID), slog.String("path", path), slog.String("error", err.Error()))
				continue
			}

			slog.Info("Question bank imported", slog.String("instanceID", instanceID), slog.String("path", path), slog.Int("count", len(questions)))
		}
	}
}
