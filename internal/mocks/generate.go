// Package mocks provides mock implementations for testing the check-in flow.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for
// the service-layer interfaces. The mocks are generated using go:generate
// directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	auth := mocks.NewMockAuthenticator(ctrl)
//	auth.EXPECT().Authenticate(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
package mocks

// Generate mocks for the Authenticator and PresenceRegistrar interfaces from
// the internal/service package. These cover the two flows CheckInService
// orchestrates: SSO sign-in and attendance registration.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=checkin_service_mock.go github.com/Safenein/moodle-painkillers/internal/service Authenticator,PresenceRegistrar
