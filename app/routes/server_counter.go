//go:build arbor_server && !wasm
// +build arbor_server,!wasm

package routes

import (
	"fmt"
	"sync"
	"time"

	"github.com/arborfw/arbor/pkg/live"
	"github.com/arborfw/arbor/pkg/server"
	"github.com/arborfw/arbor/pkg/vango/vdom"
	"github.com/arborfw/arbor/pkg/vex/builder"
)

// Global state store for demo purposes
// In production, use proper session state management
var (
	counters = make(map[string]int)
	mu       sync.RWMutex
)

// ServerCounterPage demonstrates a fully server-driven counter component
func ServerCounterPage(ctx server.Ctx) (*vdom.VNode, error) {
	// Get session ID from context
	sessionID := ctx.Request().Header.Get("X-Session-ID")
	if sessionID == "" {
		// Generate a session ID for this demo
		sessionID = fmt.Sprintf("demo_%d", GenerateID())
	}

	// Get or initialize counter value
	mu.RLock()
	count := counters[sessionID]
	mu.RUnlock()

	// Create the page structure with hydration IDs for live updates
	return builder.Div().
		Class("min-h-screen flex items-center justify-center bg-gray-100").
		Children(
			builder.Div().
				Class("bg-white rounded-lg shadow-lg p-8 max-w-md w-full").
				Children(
					// Title
					builder.H1().
						Class("text-3xl font-bold text-center mb-2").
						Text("Server-Driven Counter").
						Build(),

					// Mode indicator
					builder.Div().
						Class("text-center mb-6").
						Children(
							builder.Span().
								Class("inline-block px-3 py-1 bg-red-500 text-white rounded-full text-sm font-semibold").
								Text("🔴 Server Mode").
								Build(),
						).Build(),

					// Counter display
					builder.Div().
						Class("text-center mb-8").
						Children(
							builder.Div().
								ID("counter-display").
								Attr("data-hid", "h1"). // Hydration ID for live updates
								Class("text-6xl font-bold text-blue-600 transition-transform").
								Text(fmt.Sprintf("%d", count)).
								Build(),
						).Build(),

					// Button container
					builder.Div().
						Class("flex gap-4 justify-center mb-6").
						Children(
							// Decrement button
							builder.Button().
								Attr("data-hid", "h2").
								Attr("data-server-event", "decrement").
								Class("px-6 py-3 bg-red-500 text-white rounded-lg hover:bg-red-600 transition-colors font-semibold").
								Text("− Decrement").
								Build(),

							// Reset button
							builder.Button().
								Attr("data-hid", "h3").
								Attr("data-server-event", "reset").
								Class("px-6 py-3 bg-gray-500 text-white rounded-lg hover:bg-gray-600 transition-colors font-semibold").
								Text("↺ Reset").
								Build(),

							// Increment button
							builder.Button().
								Attr("data-hid", "h4").
								Attr("data-server-event", "increment").
								Class("px-6 py-3 bg-green-500 text-white rounded-lg hover:bg-green-600 transition-colors font-semibold").
								Text("+ Increment").
								Build(),
						).Build(),

					// Info box
					builder.Div().
						Class("bg-blue-50 border-l-4 border-blue-500 p-4 rounded").
						Children(
							builder.P().
								Class("text-sm text-blue-800").
								Children(
									builder.Strong().Text("Server-Driven Mode: ").Build(),
								).
								Text("All state is managed on the server. Click events are sent via WebSocket and patches are applied to update the UI.").
								Build(),
						).Build(),

					// Connection status (will be updated via patches)
					builder.Div().
						ID("connection-status").
						Attr("data-hid", "h5").
						Class("text-center mt-4 text-sm text-gray-600").
						Text("⚫ Connecting...").
						Build(),
				).Build(),
		).Build(), nil
}

// RegisterServerHandlers sets up the event handlers for the server-driven counter
func RegisterServerHandlers() {
	// This would be called during server initialization
	// to register handlers for specific node IDs and event types

	bridge := live.GetBridge()
	if bridge == nil {
		return
	}

	// The actual event handling will be done through the scheduler bridge
	// which will update state and generate patches
}

// GenerateID generates a unique ID (simplified for demo)
func GenerateID() uint32 {
	// In production, use a proper ID generator
	return uint32(time.Now().UnixNano() & 0xFFFFFFFF)
}
