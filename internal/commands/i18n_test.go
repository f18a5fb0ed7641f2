package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-phonebook/internal/book"
	"github.com/tartampluch/go-phonebook/internal/commands"
	"github.com/tartampluch/go-phonebook/internal/config"
)

func TestMessages_Languages(t *testing.T) {
	m := commands.NewMessages("en")
	assert.ElementsMatch(t, config.SupportedLanguages, m.SupportedLanguages)

	assert.Equal(t, "Goodbye!", m.Get(config.TKeyGoodbye, nil))
	m.SetLanguage("fr")
	assert.Equal(t, "Au revoir !", m.Get(config.TKeyGoodbye, nil))
}

func TestMessages_Fallbacks(t *testing.T) {
	assert.Equal(t, "Goodbye!", commands.NewMessages("").Get(config.TKeyGoodbye, nil), "Empty tag falls back to English")
	assert.Equal(t, "Goodbye!", commands.NewMessages("de").Get(config.TKeyGoodbye, nil), "Unsupported language falls back to English")
	assert.Equal(t, "no_such_key", commands.NewMessages("en").Get("no_such_key", nil))

	var nilMessages *commands.Messages
	assert.Equal(t, config.TKeyHello, nilMessages.Get(config.TKeyHello, nil))
}

func TestHandler_French(t *testing.T) {
	h := newHandler(t)
	h.Messages = commands.NewMessages("fr")

	res := h.Execute(context.Background(), "phone", []string{"Zoe"})
	assert.ErrorIs(t, res.Err, book.ErrNotFound)
	assert.Equal(t, "Erreur : Contact 'Zoe' introuvable.", res.Text)
}
