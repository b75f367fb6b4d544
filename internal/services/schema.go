package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/AnshRaj112/voice-journal/internal/models"
)

// SchemaVersion is the version written into every stored document.
const SchemaVersion = 1

type entriesDocument struct {
	SchemaVersion int                   `json:"schemaVersion"`
	Entries       []models.JournalEntry `json:"entries"`
}

type profileDocument struct {
	SchemaVersion int                 `json:"schemaVersion"`
	User          *models.UserProfile `json:"user"`
}

// versionOf reports the schema version of raw. Documents written before
// versioning are a bare array or a bare object without schemaVersion; both
// count as version 0.
func versionOf(raw string) (int, error) {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "[") {
		return 0, nil
	}
	var probe struct {
		SchemaVersion *int `json:"schemaVersion"`
	}
	if err := json.Unmarshal([]byte(trimmed), &probe); err != nil {
		return 0, err
	}
	if probe.SchemaVersion == nil {
		return 0, nil
	}
	return *probe.SchemaVersion, nil
}

// entryMigrations[v] upgrades a version-v document to version v+1.
var entryMigrations = []func(raw string) (string, error){
	// 0 -> 1: wrap the bare entry array.
	func(raw string) (string, error) {
		var entries []models.JournalEntry
		if err := json.Unmarshal([]byte(raw), &entries); err != nil {
			return "", err
		}
		return marshalDocument(entriesDocument{SchemaVersion: 1, Entries: entries})
	},
}

// profileMigrations[v] upgrades a version-v profile document to version v+1.
var profileMigrations = []func(raw string) (string, error){
	// 0 -> 1: wrap the bare user object.
	func(raw string) (string, error) {
		var user *models.UserProfile
		if err := json.Unmarshal([]byte(raw), &user); err != nil {
			return "", err
		}
		return marshalDocument(profileDocument{SchemaVersion: 1, User: user})
	},
}

func migrate(raw string, migrations []func(string) (string, error)) (string, error) {
	version, err := versionOf(raw)
	if err != nil {
		return "", err
	}
	if version > SchemaVersion || version < 0 {
		return "", fmt.Errorf("unsupported schema version %d", version)
	}
	for v := version; v < SchemaVersion; v++ {
		if raw, err = migrations[v](raw); err != nil {
			return "", fmt.Errorf("migrating from version %d: %w", v, err)
		}
	}
	return raw, nil
}

func marshalDocument(doc any) (string, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func encodeEntries(entries []models.JournalEntry) (string, error) {
	if entries == nil {
		entries = []models.JournalEntry{}
	}
	return marshalDocument(entriesDocument{SchemaVersion: SchemaVersion, Entries: entries})
}

func decodeEntries(raw string) ([]models.JournalEntry, error) {
	raw, err := migrate(raw, entryMigrations)
	if err != nil {
		return nil, err
	}
	var doc entriesDocument
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, err
	}
	return doc.Entries, nil
}

func encodeProfile(user models.UserProfile) (string, error) {
	return marshalDocument(profileDocument{SchemaVersion: SchemaVersion, User: &user})
}

// decodeProfile returns nil when the document holds no user.
func decodeProfile(raw string) (*models.UserProfile, error) {
	raw, err := migrate(raw, profileMigrations)
	if err != nil {
		return nil, err
	}
	var doc profileDocument
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, err
	}
	return doc.User, nil
}
