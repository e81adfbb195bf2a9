package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/agentdir/agent-directory/model"
)

// CSV column headers of the agent directory export. Missing columns are read
// as empty strings so older exports stay loadable.
const (
	colName            = "Agent Name"
	colDomains         = "Domains"
	colUseCases        = "Use Cases"
	colShortDesc       = "Short Desc"
	colLongDesc        = "Long Desc"
	colCreator         = "Creator"
	colURL             = "URL"
	colPlatform        = "Platform"
	colPricing         = "Pricing"
	colUnderlyingModel = "Underlying Model"
	colDeployment      = "Deployment"
	colLegitimacy      = "Legitimacy"
	colWhatUsersThink  = "What Users Think"
)

// loadAgentsCSV reads the catalog CSV. Malformed rows are skipped with a
// warning; a partial catalog is valid.
func loadAgentsCSV(path string, logger *zap.Logger) ([]model.Agent, error) {
	file, err := os.Open(path) // #nosec G304 -- path comes from application config
	if err != nil {
		return nil, fmt.Errorf("open catalog csv %s: %w", path, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			logger.Warn("failed to close catalog csv", zap.Error(closeErr))
		}
	}()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Rows may be ragged; column lookup is by header index

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[name] = i
	}

	field := func(row []string, name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return row[idx]
	}

	agents := make([]model.Agent, 0)
	line := 1
	for {
		line++
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			logger.Warn("skipping malformed csv row", zap.Int("line", line), zap.Error(err))
			continue
		}

		agent := model.NewAgent(model.RawAgent{
			Name:            field(row, colName),
			Domains:         field(row, colDomains),
			UseCases:        field(row, colUseCases),
			ShortDesc:       field(row, colShortDesc),
			LongDesc:        field(row, colLongDesc),
			Creator:         field(row, colCreator),
			URL:             field(row, colURL),
			Platform:        field(row, colPlatform),
			Pricing:         field(row, colPricing),
			UnderlyingModel: field(row, colUnderlyingModel),
			Deployment:      field(row, colDeployment),
			Legitimacy:      field(row, colLegitimacy),
			WhatUsersThink:  field(row, colWhatUsersThink),
		})

		// A row whose name produces no slug cannot be addressed; skip it.
		if agent.Slug == "" {
			logger.Warn("skipping row without a usable agent name", zap.Int("line", line))
			continue
		}

		agents = append(agents, agent)
	}

	return agents, nil
}
