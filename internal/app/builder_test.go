package app_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/flowd/internal/app"
)

func TestNewComponents(t *testing.T) {
	log := &testLogger{}
	a := app.New(&fakeLoader{}, log, &fakeAnalyzer{})

	components := app.NewComponents(a, log)

	require.NotNil(t, components)
	require.Same(t, a, components.App)
	require.NotNil(t, components.Logger)
}
