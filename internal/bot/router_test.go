package bot

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func handlerPtr(h handlerFunc) uintptr {
	return reflect.ValueOf(h).Pointer()
}

func TestRouterCoversAllCallbacks(t *testing.T) {
	b := newTestBot(t)
	r := b.routes

	callbacks := []string{
		CallbackMarkets,
		CallbackChat,
		CallbackAnalyze,
		CallbackFinancials,
		CallbackStatements,
		CallbackSummary,
		CallbackBackToMenu,
	}

	fallback := handlerPtr(r.fallback)
	for _, data := range callbacks {
		h := r.callback(data)
		require.NotNil(t, h, "callback %q has no handler", data)
		assert.NotEqual(t, fallback, handlerPtr(h), "callback %q routed to fallback", data)
	}
}

func TestRouterCoversAllCommands(t *testing.T) {
	b := newTestBot(t)
	r := b.routes

	fallback := handlerPtr(r.fallback)
	for _, cmd := range []string{"start", "markets", "chat", "analyze"} {
		h := r.command(cmd)
		require.NotNil(t, h, "command %q has no handler", cmd)
		assert.NotEqual(t, fallback, handlerPtr(h), "command %q routed to fallback", cmd)
	}
}

func TestRouterUnknownFallsBack(t *testing.T) {
	b := newTestBot(t)
	r := b.routes

	fallback := handlerPtr(r.fallback)
	assert.Equal(t, fallback, handlerPtr(r.callback("bogus_callback")))
	assert.Equal(t, fallback, handlerPtr(r.command("bogus")))
}

// Each callback id must route to exactly one handler
func TestRouterCallbackIDsDistinct(t *testing.T) {
	b := newTestBot(t)

	seen := map[string]bool{}
	for data := range b.routes.callbacks {
		require.False(t, seen[data], "duplicate callback id %q", data)
		seen[data] = true
	}
	assert.Len(t, seen, 7)
}
