// Package mocks provides mock expectation helpers for common testing patterns
package mocks

import (
	"fmt"

	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-fitness/internal/clients/gateway"
	gatewaymock "github.com/KirkDiggler/rpg-fitness/internal/clients/gateway/mock"
	"github.com/KirkDiggler/rpg-fitness/internal/errors"
)

// intentMatcher matches a *gateway.Request by intent
type intentMatcher struct {
	intent gateway.Intent
}

func (m intentMatcher) Matches(x any) bool {
	req, ok := x.(*gateway.Request)
	return ok && req != nil && req.Intent == m.intent
}

func (m intentMatcher) String() string {
	return fmt.Sprintf("is a %s request", m.intent)
}

// RequestWithIntent matches gateway requests carrying intent
func RequestWithIntent(intent gateway.Intent) gomock.Matcher {
	return intentMatcher{intent: intent}
}

// ExpectGatewayDown makes the next gateway call for intent fail as unavailable
func ExpectGatewayDown(mockClient *gatewaymock.MockClient, intent gateway.Intent) *gomock.Call {
	return mockClient.EXPECT().
		Generate(gomock.Any(), RequestWithIntent(intent)).
		Return(nil, errors.Unavailable("gateway down"))
}

// ExpectGatewayText makes the next gateway call for intent answer with text
func ExpectGatewayText(mockClient *gatewaymock.MockClient, intent gateway.Intent, text string) *gomock.Call {
	return mockClient.EXPECT().
		Generate(gomock.Any(), RequestWithIntent(intent)).
		Return(&gateway.Response{Text: text}, nil)
}

// ExpectGatewayToolCalls makes the next chat call answer with function calls
func ExpectGatewayToolCalls(mockClient *gatewaymock.MockClient, calls ...gateway.FunctionCall) *gomock.Call {
	return mockClient.EXPECT().
		Generate(gomock.Any(), RequestWithIntent(gateway.IntentChat)).
		Return(&gateway.Response{FunctionCalls: calls}, nil)
}
