package commands_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-phonebook/internal/config"
)

var translationKeys = []string{
	config.TKeyHello,
	config.TKeyGoodbye,
	config.TKeyHelp,
	config.TKeyContactAdded,
	config.TKeyPhoneAppended,
	config.TKeyPhoneChanged,
	config.TKeyPhoneRemoved,
	config.TKeyPhoneList,
	config.TKeyBookEmpty,
	config.TKeyBirthdayAdded,
	config.TKeyBirthdayShow,
	config.TKeyBirthdayNone,
	config.TKeyNoUpcoming,
	config.TKeyContactDeleted,
	config.TKeyImported,
	config.TKeyExported,
	config.TKeyCalendarWritten,
	config.TKeyLoginStored,
	config.TKeyEvtSummary,
	config.TKeyEvtSummaryAge,
	config.TKeyEvtSummaryBirth,
	config.TKeyErrPrefix,
	config.TKeyErrNotFound,
	config.TKeyErrPhoneMiss,
	config.TKeyErrPhone,
	config.TKeyErrDate,
	config.TKeyErrName,
	config.TKeyErrAlreadySet,
	config.TKeyErrUnknownCmd,
	config.TKeyErrSave,
	config.TKeyErrImport,
	config.TKeyErrExport,
	config.TKeyErrLogin,
	config.TKeyUsageAdd,
	config.TKeyUsageChange,
	config.TKeyUsagePhone,
	config.TKeyUsageAll,
	config.TKeyUsageAddBirthday,
	config.TKeyUsageShowBirthday,
	config.TKeyUsageBirthdays,
	config.TKeyUsageDelete,
	config.TKeyUsageRemovePhone,
	config.TKeyUsageImport,
	config.TKeyUsageExport,
	config.TKeyUsageCalendar,
	config.TKeyUsageLogin,
	config.TKeyUsageHello,
	config.TKeyUsageHelp,
	config.TKeyUsageExit,
	config.TKeyUsageClose,
}

// TestI18nIntegrity ensures that every translation key defined in config.go
// exists in every locale file, and flags orphan keys.
func TestI18nIntegrity(t *testing.T) {
	definedKeys := make(map[string]bool)
	for _, k := range translationKeys {
		definedKeys[k] = true
	}

	for _, lang := range config.SupportedLanguages {
		t.Run(lang, func(t *testing.T) {
			content, err := os.ReadFile(filepath.Join("locales", "active."+lang+".json"))
			require.NoError(t, err, "Must load active.%s.json", lang)

			var jsonMap map[string]interface{}
			require.NoError(t, json.Unmarshal(content, &jsonMap), "JSON must be valid")

			for key := range definedKeys {
				_, exists := jsonMap[key]
				assert.Truef(t, exists, "Key '%s' defined in config.go is missing in active.%s.json", key, lang)
			}

			for jsonKey := range jsonMap {
				if strings.HasPrefix(jsonKey, "_") {
					continue
				}
				assert.Truef(t, definedKeys[jsonKey], "Key '%s' exists in active.%s.json but not in config.go", jsonKey, lang)
			}
		})
	}
}
