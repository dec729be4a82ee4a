package settings

import (
	"context"
	"strings"

	"github.com/tsaci/backend/internal/domain/shared"
)

// ValueType declares how a setting's stored text should be interpreted
type ValueType string

const (
	TypeText    ValueType = "text"
	TypeNumber  ValueType = "number"
	TypeBoolean ValueType = "boolean"
	TypeJSON    ValueType = "json"
)

// ValidValueType reports whether t names a known value type
func ValidValueType(t ValueType) bool {
	switch t {
	case TypeText, TypeNumber, TypeBoolean, TypeJSON:
		return true
	}
	return false
}

// Setting is one admin-managed key-value pair of runtime configuration.
// Values are stored as text; the type tells clients how to parse them.
type Setting struct {
	shared.BaseEntity
	Key         string    `gorm:"column:config_key;size:100;not null;uniqueIndex" json:"key"`
	Value       string    `gorm:"column:config_value;type:text;not null" json:"value"`
	Type        ValueType `gorm:"column:config_type;size:20;not null;default:'text'" json:"type"`
	Description string    `gorm:"size:500" json:"description,omitempty"`
}

// TableName returns the table name for GORM
func (Setting) TableName() string {
	return "system_config"
}

// NewSetting creates a setting; an empty type defaults to text
func NewSetting(key, value string, valueType ValueType, description string) (*Setting, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, shared.NewDomainError("INVALID_KEY", "Setting key is required")
	}
	if valueType == "" {
		valueType = TypeText
	}
	if !ValidValueType(valueType) {
		return nil, shared.NewDomainError("INVALID_TYPE", "Setting type must be text, number, boolean or json")
	}

	return &Setting{
		BaseEntity:  shared.NewBaseEntity(),
		Key:         key,
		Value:       value,
		Type:        valueType,
		Description: description,
	}, nil
}

// SettingRepository defines the persistence interface for settings
type SettingRepository interface {
	FindAll(ctx context.Context) ([]Setting, error)
	FindByKey(ctx context.Context, key string) (*Setting, error)
	Upsert(ctx context.Context, setting *Setting) error
	Delete(ctx context.Context, key string) error
}
