package repository

import (
	"encoding/json"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/vibast-solutions/ms-go-directory/app/entity"
)

// DatasetStore holds the static directory datasets, loaded once at startup
// and read-only afterwards. A missing or malformed file degrades to an empty
// collection instead of failing the process; the service then serves valid
// but empty results for that dataset.
type DatasetStore struct {
	workshops         []entity.Workshop
	managementChanges []entity.ManagementChange
}

func LoadDatasetStore(workshopsFile, managementChangesFile string) *DatasetStore {
	return &DatasetStore{
		workshops:         loadDataset[entity.Workshop](workshopsFile, "workshops"),
		managementChanges: loadDataset[entity.ManagementChange](managementChangesFile, "management_changes"),
	}
}

func (s *DatasetStore) Workshops() []entity.Workshop {
	return s.workshops
}

func (s *DatasetStore) ManagementChanges() []entity.ManagementChange {
	return s.managementChanges
}

func loadDataset[T any](path, name string) []T {
	data, err := os.ReadFile(path)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"dataset": name,
			"path":    path,
		}).Error("Failed to read dataset file, serving empty collection")
		return []T{}
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"dataset": name,
			"path":    path,
		}).Error("Failed to parse dataset file, serving empty collection")
		return []T{}
	}

	records := make([]T, 0, len(raw))
	for i, entry := range raw {
		var record T
		if err := json.Unmarshal(entry, &record); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"dataset": name,
				"index":   i,
			}).Warn("Skipping malformed dataset entry")
			continue
		}
		records = append(records, record)
	}

	logrus.WithFields(logrus.Fields{
		"dataset": name,
		"records": len(records),
	}).Info("Dataset loaded")

	return records
}
