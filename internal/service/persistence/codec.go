package persistence

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"nexus-dashboard/internal/domain"
)

var ErrInvalidImport = errors.New("invalid import file")

const backupPrefix = "nexus-backup-"

// DecodeImport accepts either a bare array of projects (legacy exports) or an object carrying any
// subset of projects, users, globalNotifications, chatMessages and goals. A null value counts as
// absent. Anything else is rejected as a whole.
func DecodeImport(data []byte) (*domain.ImportPayload, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ErrInvalidImport
	}

	switch data[0] {
	case '[':
		var projects []domain.Project
		if err := json.Unmarshal(data, &projects); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidImport, err)
		}
		return &domain.ImportPayload{
			Projects:    orEmpty(projects),
			HasProjects: true,
			Legacy:      true,
		}, nil
	case '{':
		return decodeObject(data)
	default:
		return nil, ErrInvalidImport
	}
}

func decodeObject(data []byte) (*domain.ImportPayload, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}

	p := &domain.ImportPayload{}
	decode := func(key string, target any, present *bool) error {
		raw, ok := fields[key]
		if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return nil
		}
		if err := json.Unmarshal(raw, target); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidImport, key, err)
		}
		*present = true
		return nil
	}

	if err := decode("projects", &p.Projects, &p.HasProjects); err != nil {
		return nil, err
	}
	if err := decode("users", &p.Users, &p.HasUsers); err != nil {
		return nil, err
	}
	if err := decode("globalNotifications", &p.GlobalNotifications, &p.HasGlobalNotifications); err != nil {
		return nil, err
	}
	if err := decode("chatMessages", &p.ChatMessages, &p.HasChatMessages); err != nil {
		return nil, err
	}
	if err := decode("goals", &p.Goals, &p.HasGoals); err != nil {
		return nil, err
	}

	if !p.HasProjects && !p.HasUsers && !p.HasGlobalNotifications && !p.HasChatMessages && !p.HasGoals {
		return nil, fmt.Errorf("%w: no known collections", ErrInvalidImport)
	}

	p.Projects = orEmpty(p.Projects)
	p.Users = orEmpty(p.Users)
	p.GlobalNotifications = orEmpty(p.GlobalNotifications)
	p.ChatMessages = orEmpty(p.ChatMessages)
	p.Goals = orEmpty(p.Goals)
	return p, nil
}

// EncodeBackup renders the full export document. Empty collections are written as [] rather
// than null so the file re-imports with every key present.
func EncodeBackup(b domain.Backup) ([]byte, error) {
	projects := make([]domain.Project, len(b.Projects))
	copy(projects, b.Projects)
	for i := range projects {
		projects[i].Clients = orEmpty(projects[i].Clients)
	}
	b.Projects = projects
	b.Users = orEmpty(b.Users)
	b.GlobalNotifications = orEmpty(b.GlobalNotifications)
	b.ChatMessages = orEmpty(b.ChatMessages)
	b.Goals = orEmpty(b.Goals)
	return json.MarshalIndent(b, "", "  ")
}

func BackupFilename(now time.Time) string {
	return backupPrefix + now.Format(domain.DateLayout) + ".json"
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
