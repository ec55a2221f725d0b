package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type SettingKey string

const (
	KeyUserData           SettingKey = "userData"
	KeyUser               SettingKey = "user"
	KeyUserAvatar         SettingKey = "userAvatar"
	KeyTwoFactorEnabled   SettingKey = "twoFactorEnabled"
	KeyEmailNotifications SettingKey = "emailNotifications"
	KeyIsLoggedIn         SettingKey = "isLoggedIn"

	KeyTransactions SettingKey = "transactions"
	KeyBills        SettingKey = "bills"
	KeyBudgets      SettingKey = "budgets"
	KeyCategories   SettingKey = "categories"
)

// DomainKeyPrefix marks the app-scoped copies of the domain keys.
const DomainKeyPrefix = "wealthease_"

const DefaultAvatar = "🐶"

type KeyClass int

const (
	KeyClassUnknown KeyClass = iota
	KeyClassProfile
	KeyClassPreference
	KeyClassSession
	KeyClassDomain
)

var settingSchema = map[SettingKey]KeyClass{
	KeyUserData:           KeyClassProfile,
	KeyUser:               KeyClassProfile,
	KeyUserAvatar:         KeyClassProfile,
	KeyTwoFactorEnabled:   KeyClassPreference,
	KeyEmailNotifications: KeyClassPreference,
	KeyIsLoggedIn:         KeyClassSession,
	KeyTransactions:       KeyClassDomain,
	KeyBills:              KeyClassDomain,
	KeyBudgets:            KeyClassDomain,
	KeyCategories:         KeyClassDomain,
}

// DomainKeys lists every key a data wipe removes, prefixed variants included.
func DomainKeys() []SettingKey {
	base := []SettingKey{KeyTransactions, KeyBills, KeyBudgets, KeyCategories}
	keys := make([]SettingKey, 0, len(base)*2)
	for _, k := range base {
		keys = append(keys, k, SettingKey(DomainKeyPrefix+string(k)))
	}
	return keys
}

// Classify resolves a key against the schema. Matching is exact: a key
// merely containing "bill" is not a domain key.
func Classify(key SettingKey) KeyClass {
	if class, ok := settingSchema[key]; ok {
		return class
	}
	if rest, ok := strings.CutPrefix(string(key), DomainKeyPrefix); ok {
		if settingSchema[SettingKey(rest)] == KeyClassDomain {
			return KeyClassDomain
		}
	}
	return KeyClassUnknown
}

type Setting struct {
	Namespace uuid.UUID  `db:"namespace"`
	Key       SettingKey `db:"key"`
	Value     string     `db:"value"`
	UpdatedAt time.Time  `db:"updated_at"`
}
